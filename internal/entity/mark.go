package entity

// Mark is the content of a board cell. MarkX and MarkO double as the
// identity of the two players.
type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

// Opponent returns the other player's mark. MarkEmpty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

func (that Mark) String() string {
	return string(that)
}

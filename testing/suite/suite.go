package suite

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	logs *logBuffer
}

// logBuffer lets tests read records while goroutines still log.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (that *logBuffer) Write(p []byte) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.buf.Write(p)
}

func (that *logBuffer) Bytes() []byte {
	that.mu.Lock()
	defer that.mu.Unlock()

	return bytes.Clone(that.buf.Bytes())
}

// New builds a context bound to the test and a debug logger whose JSON
// records are kept for inspection.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logs := &logBuffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		logs:   logs,
	}
}

// Records returns the decoded log records written so far.
func (that *Suite) Records() []map[string]any {
	that.Helper()

	var records []map[string]any

	scanner := bufio.NewScanner(bytes.NewReader(that.logs.Bytes()))
	for scanner.Scan() {
		record := make(map[string]any)
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			that.Fatalf("could not decode log record: %v", err)
		}

		records = append(records, record)
	}

	return records
}

// Messages returns the msg field of every log record written so far.
func (that *Suite) Messages() []string {
	that.Helper()

	records := that.Records()
	messages := make([]string, 0, len(records))

	for _, record := range records {
		if msg, ok := record["msg"].(string); ok {
			messages = append(messages, msg)
		}
	}

	return messages
}

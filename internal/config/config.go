package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Console  Console `yaml:"console"`
}

type Console struct {
	Prompt     string  `yaml:"prompt" env:"CONSOLE_PROMPT" env-default:">"`
	HideCursor bool    `yaml:"hide-cursor" env:"CONSOLE_HIDE_CURSOR"`
	Symbols    Symbols `yaml:"symbols"`
}

// Symbols are the glyphs drawn for each cell state.
type Symbols struct {
	X     string `yaml:"x" env:"CONSOLE_SYMBOL_X" env-default:"X"`
	O     string `yaml:"o" env:"CONSOLE_SYMBOL_O" env-default:"O"`
	Empty string `yaml:"empty" env:"CONSOLE_SYMBOL_EMPTY" env-default:"."`
}

var ErrInvalidSymbol = errors.New("cell symbol must be a single character")

// MustLoad - load all configurations in config.yml file. A missing file
// falls back to environment variables and defaults.
func MustLoad(path string) *Config {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err = config.Console.Symbols.Validate(); err != nil {
		panic(fmt.Errorf("invalid console config: %w", err))
	}

	return config
}

func (that *Symbols) Validate() error {
	for name, symbol := range map[string]string{"x": that.X, "o": that.O, "empty": that.Empty} {
		if len([]rune(symbol)) != 1 {
			return fmt.Errorf("%w: %s=%q", ErrInvalidSymbol, name, symbol)
		}
	}

	if that.X == that.O || that.X == that.Empty || that.O == that.Empty {
		return fmt.Errorf("%w: symbols must differ", ErrInvalidSymbol)
	}

	return nil
}

package env

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DefaultBufferSize fits the largest message RFC 7252 §4.6 recommends
// sending without fragmentation.
const DefaultBufferSize = 1152

type Config struct {
	// Size of the buffer encode builds messages into
	BufferSize int `env:"MINICOAP_BUFFER_SIZE,default=1152"`

	LogLevel    string `env:"MINICOAP_LOG_LEVEL,default=info"`
	LogEncoding string `env:"MINICOAP_LOG_ENCODING,default=json"`

	// Pretty indents JSON output
	Pretty bool `env:"MINICOAP_PRETTY"`
}

// LoadConfig reads the config from the environment, after loading
// .env.local if there is one.
func LoadConfig(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading .env.local: %w", err)
		}
	}

	return LoadConfigFrom(ctx, envconfig.OsLookuper())
}

// LoadConfigFrom reads the config from lookuper.
func LoadConfigFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	config := Config{}

	if err := envconfig.ProcessWith(ctx, &config, lookuper); err != nil {
		return nil, err
	}

	if config.BufferSize < 4 {
		return nil, fmt.Errorf("MINICOAP_BUFFER_SIZE must be at least 4, got %d", config.BufferSize)
	}

	return &config, nil
}

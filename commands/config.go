package commands

import (
	"log/slog"

	"github.com/afpineda/NuS-NimBLE-Serial/internal/workbuf"
)

// Config holds the settings of a Processor. Build one with NewConfigBuilder.
type Config struct {
	dialer     Dialer
	bufferSize int
	lowerCase  bool
	logger     *slog.Logger
	alloc      workbuf.Allocator
}

func (c *Config) validate() error {
	if c.dialer == nil {
		return ErrNoDialer
	}
	if c.bufferSize < 0 {
		return ErrInvalidBufferSize
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.bufferSize == 0 {
		c.bufferSize = workbuf.DefaultSize
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.alloc == nil {
		c.alloc = workbuf.Make
	}
}

// ConfigBuilder builds a validated Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns a builder with every setting at its default.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithDialer sets the Dialer opening the transport. Required.
func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.dialer = d
	return b
}

// WithBufferSize sets the working buffer size of both grammars.
func (b *ConfigBuilder) WithBufferSize(size int) *ConfigBuilder {
	b.config.bufferSize = size
	return b
}

// WithLowerCasePreamble allows "at" as well as "AT".
func (b *ConfigBuilder) WithLowerCasePreamble(allow bool) *ConfigBuilder {
	b.config.lowerCase = allow
	return b
}

// WithLogger sets the logger. Nothing is logged by default.
func (b *ConfigBuilder) WithLogger(logger *slog.Logger) *ConfigBuilder {
	b.config.logger = logger
	return b
}

// WithAllocator replaces the function reserving working buffers.
func (b *ConfigBuilder) WithAllocator(alloc workbuf.Allocator) *ConfigBuilder {
	b.config.alloc = alloc
	return b
}

// Build validates the settings and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	config := b.config
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	config.setDefaults()
	return config, nil
}

// Package di provides dependency injection container
package di

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/ssargent/lsbmp/pkg/api" //nolint:depguard
	"github.com/ssargent/lsbmp/pkg/archive"
	"github.com/ssargent/lsbmp/pkg/codec"
	"github.com/ssargent/lsbmp/pkg/config"
	"github.com/ssargent/lsbmp/pkg/steg"
)

// Container holds all the dependencies for the application
type Container struct {
	config        *config.Config
	log           zerolog.Logger
	codec         *codec.Codec
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container. A nil cfg
// means config.DefaultConfig.
func NewContainer(cfg *config.Config, log zerolog.Logger) *Container {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Container{
		config:        cfg,
		log:           log,
		codec:         codec.NewCodec(),
		serverFactory: api.NewServerFactory(),
	}
}

// Config returns the configuration the container was built from
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the application logger
func (c *Container) Logger() zerolog.Logger {
	return c.log
}

// Codec returns the shared codec
func (c *Container) Codec() *codec.Codec {
	return c.codec
}

// StegService builds a service configured from the carrier section
func (c *Container) StegService() *steg.Service {
	opts := steg.Options{
		RequireBMPExtension: c.config.Carrier.RequireBMPExtension,
		WarnHeaderMismatch:  c.config.Carrier.WarnHeaderMismatch,
		FileMode:            os.FileMode(c.config.Carrier.FileMode),
	}
	return steg.NewService(c.codec, opts, c.log)
}

// OpenArchive opens the carrier archive. It returns nil, nil when the
// archive is disabled.
func (c *Container) OpenArchive() (*archive.Archive, error) {
	if !c.config.Archive.Enabled {
		return nil, nil
	}
	return archive.Open(c.config.Archive.Dir)
}

// ServerConfig converts the server section for the API
func (c *Container) ServerConfig() api.ServerConfig {
	return api.ServerConfig{
		Port:          c.config.Server.Port,
		Bind:          c.config.Server.Bind,
		APIKey:        c.config.Server.APIKey,
		MaxUploadSize: c.config.Server.MaxUploadSize,
	}
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

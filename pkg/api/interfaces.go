package api

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/lsbmp/pkg/archive"
	"github.com/ssargent/lsbmp/pkg/codec"
)

// Stegger hides and reveals payloads in in-memory carriers
type Stegger interface {
	HideBytes(ctx context.Context, carrier []byte, p codec.Payload) ([]byte, error)
	RevealBytes(ctx context.Context, carrier []byte) (*codec.Payload, error)
	Codec() *codec.Codec
}

// CarrierArchive stores encoded carriers
type CarrierArchive interface {
	Put(carrier []byte) (ksuid.KSUID, error)
	Get(id ksuid.KSUID) ([]byte, error)
	Delete(id ksuid.KSUID) error
	List() ([]archive.Entry, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled
	StartServer(ctx context.Context, svc Stegger, store CarrierArchive, config ServerConfig, log zerolog.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}

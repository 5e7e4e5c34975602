package api

import (
	"time"

	"github.com/segmentio/ksuid"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CarrierResponse describes an archived carrier
type CarrierResponse struct {
	ID          ksuid.KSUID `json:"id"`
	Size        int         `json:"size"`
	CreatedAt   time.Time   `json:"created_at"`
	PayloadSize int         `json:"payload_size,omitempty"`
	Extension   string      `json:"extension,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port          int
	Bind          string
	APIKey        string
	MaxUploadSize int64
}

const (
	// HeaderPayloadExtension carries the recovered extension on decode responses
	HeaderPayloadExtension = "X-Payload-Extension"

	ContentTypeBMP         = "image/bmp"
	ContentTypeOctetStream = "application/octet-stream"
	ContentTypeJSON        = "application/json"

	defaultMaxUploadSize = 64 << 20
)

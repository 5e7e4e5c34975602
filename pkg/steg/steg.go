// Package steg runs hide and reveal operations over files: it performs the
// existence and naming checks around the codec, logs what it does and writes
// results only after the whole in-memory transform succeeded.
package steg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ssargent/lsbmp/pkg/carrier"
	"github.com/ssargent/lsbmp/pkg/codec"
	"github.com/ssargent/lsbmp/pkg/fileio"
)

var (
	ErrPayloadNotFound = errors.New("data file does not exist")
	ErrCarrierNotFound = errors.New("image file does not exist")
	ErrOutputExists    = errors.New("file with the same name as the new file already exists")
	ErrNotBMP          = errors.New("invalid image format - only .bmp allowed")
)

// Options configures a Service.
type Options struct {
	// RequireBMPExtension rejects carriers whose file name does not end in .bmp.
	RequireBMPExtension bool
	// WarnHeaderMismatch logs when a carrier's pixel array does not start
	// where the layout's header skip ends.
	WarnHeaderMismatch bool
	// FileMode is applied to every file the service writes.
	FileMode os.FileMode
}

// DefaultOptions mirrors config.DefaultConfig.
func DefaultOptions() Options {
	return Options{
		RequireBMPExtension: true,
		WarnHeaderMismatch:  true,
		FileMode:            0644,
	}
}

// HideRequest names the files of a hide operation.
type HideRequest struct {
	CarrierPath string
	PayloadPath string
	// OutputPath gets ".bmp" appended when it has no extension.
	OutputPath string
}

// HideResult describes a completed hide operation.
type HideResult struct {
	OutputPath    string
	PayloadSize   int
	Extension     string
	CapacityBytes int
	Duration      time.Duration
}

// RevealRequest names the files of a reveal operation.
type RevealRequest struct {
	CarrierPath string
	// OutputPath is extended with the recovered extension.
	OutputPath string
}

// RevealResult describes a completed reveal operation.
type RevealResult struct {
	OutputPath  string
	PayloadSize int
	Extension   string
	Duration    time.Duration
}

// Service hides and reveals payloads in carrier files.
type Service struct {
	codec *codec.Codec
	opts  Options
	log   zerolog.Logger
}

// NewService creates a service around c.
func NewService(c *codec.Codec, opts Options, log zerolog.Logger) *Service {
	if opts.FileMode == 0 {
		opts.FileMode = 0644
	}
	return &Service{codec: c, opts: opts, log: log}
}

// Codec returns the codec used by the service.
func (s *Service) Codec() *codec.Codec {
	return s.codec
}

// Hide reads the carrier and payload files, hides the payload and writes the
// new carrier to req.OutputPath.
func (s *Service) Hide(ctx context.Context, req HideRequest) (*HideResult, error) {
	start := time.Now()
	outPath := fileio.EncodedOutputPath(req.OutputPath)

	if !fileio.Exists(req.PayloadPath) {
		return nil, fmt.Errorf("%w: %s", ErrPayloadNotFound, req.PayloadPath)
	}
	if !fileio.Exists(req.CarrierPath) {
		return nil, fmt.Errorf("%w: %s", ErrCarrierNotFound, req.CarrierPath)
	}
	if fileio.Exists(outPath) {
		return nil, fmt.Errorf("%w: %s", ErrOutputExists, outPath)
	}
	if s.opts.RequireBMPExtension && !fileio.HasExtension(req.CarrierPath, fileio.DefaultCarrierExtension) {
		return nil, fmt.Errorf("%w: %s", ErrNotBMP, req.CarrierPath)
	}

	carrierData, err := fileio.ReadAll(req.CarrierPath)
	if err != nil {
		return nil, err
	}
	payloadData, err := fileio.ReadAll(req.PayloadPath)
	if err != nil {
		return nil, err
	}

	ext := fileio.Extension(req.PayloadPath)
	encoded, err := s.HideBytes(ctx, carrierData, codec.Payload{Extension: ext, Data: payloadData})
	if err != nil {
		return nil, err
	}

	if err := fileio.WriteNew(outPath, encoded, s.opts.FileMode); err != nil {
		if errors.Is(err, fileio.ErrExists) {
			return nil, fmt.Errorf("%w: %s", ErrOutputExists, outPath)
		}
		return nil, err
	}

	result := &HideResult{
		OutputPath:    outPath,
		PayloadSize:   len(payloadData),
		Extension:     ext,
		CapacityBytes: codec.Capacity(len(carrierData), s.codec.Layout()),
		Duration:      time.Since(start),
	}
	s.log.Info().
		Str("carrier", req.CarrierPath).
		Str("payload", req.PayloadPath).
		Str("output", outPath).
		Int("payload_bytes", result.PayloadSize).
		Int("capacity_bytes", result.CapacityBytes).
		Dur("duration", result.Duration).
		Msg("payload hidden")
	return result, nil
}

// Reveal reads the carrier file and writes the hidden payload next to
// req.OutputPath with the recovered extension appended.
func (s *Service) Reveal(ctx context.Context, req RevealRequest) (*RevealResult, error) {
	start := time.Now()

	if !fileio.Exists(req.CarrierPath) {
		return nil, fmt.Errorf("%w: %s", ErrCarrierNotFound, req.CarrierPath)
	}
	// The final name is only known after decoding; reject an obvious clash early.
	if fileio.Exists(req.OutputPath) {
		return nil, fmt.Errorf("%w: %s", ErrOutputExists, req.OutputPath)
	}
	if s.opts.RequireBMPExtension && !fileio.HasExtension(req.CarrierPath, fileio.DefaultCarrierExtension) {
		return nil, fmt.Errorf("%w: %s", ErrNotBMP, req.CarrierPath)
	}

	carrierData, err := fileio.ReadAll(req.CarrierPath)
	if err != nil {
		return nil, err
	}

	p, err := s.RevealBytes(ctx, carrierData)
	if err != nil {
		return nil, err
	}

	outPath := fileio.DecodedOutputPath(req.OutputPath, p.Extension)
	if err := fileio.WriteNew(outPath, p.Data, s.opts.FileMode); err != nil {
		if errors.Is(err, fileio.ErrExists) {
			return nil, fmt.Errorf("%w: %s", ErrOutputExists, outPath)
		}
		return nil, err
	}

	result := &RevealResult{
		OutputPath:  outPath,
		PayloadSize: len(p.Data),
		Extension:   p.Extension,
		Duration:    time.Since(start),
	}
	s.log.Info().
		Str("carrier", req.CarrierPath).
		Str("output", outPath).
		Int("payload_bytes", result.PayloadSize).
		Str("extension", p.Extension).
		Dur("duration", result.Duration).
		Msg("payload revealed")
	return result, nil
}

// HideBytes hides p in an in-memory carrier and returns the new carrier.
func (s *Service) HideBytes(ctx context.Context, carrierData []byte, p codec.Payload) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.checkHeader(carrierData)

	encoded, err := s.codec.Encode(carrierData, p)
	if err != nil {
		s.log.Debug().Err(err).
			Int("carrier_bytes", len(carrierData)).
			Int("payload_bytes", len(p.Data)).
			Msg("hide failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return encoded, nil
}

// RevealBytes recovers the payload hidden in an in-memory carrier. A stored
// extension that is not safe as a file name suffix fails with
// codec.ErrInvalidExtension.
func (s *Service) RevealBytes(ctx context.Context, carrierData []byte) (*codec.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.checkHeader(carrierData)

	p, err := s.codec.Decode(carrierData)
	if err != nil {
		s.log.Debug().Err(err).Int("carrier_bytes", len(carrierData)).Msg("reveal failed")
		if errors.Is(err, codec.ErrInvalidExtension) {
			return nil, fmt.Errorf("carrier holds an unusable extension: %w", err)
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// checkHeader warns about carriers whose layout does not match the codec's.
// It never rejects a carrier.
func (s *Service) checkHeader(data []byte) {
	if !s.opts.WarnHeaderMismatch {
		return
	}
	offset, err := carrier.PixelOffset(data)
	if err != nil {
		s.log.Warn().Err(err).Msg("carrier is not a bitmap; treating it as raw bytes")
		return
	}
	if int(offset) != s.codec.Layout().HeaderSkip {
		s.log.Warn().
			Uint32("pixel_offset", offset).
			Int("header_skip", s.codec.Layout().HeaderSkip).
			Msg("bitmap header size differs from the layout; header bytes past the skip may be rewritten")
	}
}

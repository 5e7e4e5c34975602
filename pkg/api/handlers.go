package api

import (
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/lsbmp/pkg/archive"
	"github.com/ssargent/lsbmp/pkg/carrier"
	"github.com/ssargent/lsbmp/pkg/codec"
	"github.com/ssargent/lsbmp/pkg/fileio"
)

const (
	opEncode = "encode"
	opDecode = "decode"
)

var (
	errArchiveDisabled = errors.New("carrier archive is disabled")
	errBadRequest      = errors.New("bad request")
)

// Server represents the API server
type Server struct {
	svc     Stegger
	store   CarrierArchive
	config  ServerConfig
	metrics *Metrics
	log     zerolog.Logger
}

// NewServer creates a new API server. store may be nil, in which case the
// carrier routes answer 503.
func NewServer(svc Stegger, store CarrierArchive, config ServerConfig, metrics *Metrics, log zerolog.Logger) *Server {
	if config.MaxUploadSize <= 0 {
		config.MaxUploadSize = defaultMaxUploadSize
	}
	return &Server{
		svc:     svc,
		store:   store,
		config:  config,
		metrics: metrics,
		log:     log,
	}
}

// statusForError maps domain errors onto HTTP status codes.
func statusForError(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, codec.ErrInsufficientCapacity), errors.Is(err, codec.ErrInvalidExtension):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		errors.Is(err, codec.ErrBufferTooShort),
		errors.Is(err, carrier.ErrNotBitmap),
		errors.Is(err, carrier.ErrUnsupportedBitmap):
		return http.StatusBadRequest
	case errors.Is(err, archive.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errArchiveDisabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	sendError(w, err.Error(), status)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	l := s.svc.Codec().Layout()
	sendSuccess(w, map[string]interface{}{
		"status":          "healthy",
		"archive_enabled": s.store != nil,
		"layout": map[string]int{
			"header_skip":          l.HeaderSkip,
			"size_field_bits":      l.SizeFieldBits,
			"extension_field_bits": l.ExtensionFieldBits,
			"prefix_length":        l.PrefixLength(),
		},
	})
}

// readCarrierBody reads a raw carrier from the request body
func (s *Server) readCarrierBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, s.config.MaxUploadSize)
	defer body.Close()
	return io.ReadAll(body)
}

// readFormFile reads one file part of a parsed multipart form
func readFormFile(r *http.Request, field string) ([]byte, string, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", errors.Wrapf(errBadRequest, "missing %q part", field)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", errors.Wrapf(err, "read %q part", field)
	}
	return data, header.Filename, nil
}

// encodeForm runs the multipart encode shared by /encode and /carriers
func (s *Server) encodeForm(w http.ResponseWriter, r *http.Request) ([]byte, codec.Payload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadSize)
	if err := r.ParseMultipartForm(s.config.MaxUploadSize); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, codec.Payload{}, err
		}
		return nil, codec.Payload{}, errors.Wrapf(errBadRequest, "parse multipart form: %v", err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	carrierData, _, err := readFormFile(r, "carrier")
	if err != nil {
		return nil, codec.Payload{}, err
	}
	data, name, err := readFormFile(r, "payload")
	if err != nil {
		return nil, codec.Payload{}, err
	}

	ext := r.FormValue("extension")
	if ext == "" {
		ext = fileio.Extension(name)
	}
	p := codec.Payload{Extension: ext, Data: data}

	start := time.Now()
	encoded, err := s.svc.HideBytes(r.Context(), carrierData, p)
	if s.metrics != nil {
		s.metrics.RecordCodecOperation(opEncode, len(data), err, time.Since(start))
	}
	if err != nil {
		return nil, p, err
	}
	return encoded, p, nil
}

// reveal decodes carrierData and records the operation
func (s *Server) reveal(r *http.Request, carrierData []byte) (*codec.Payload, error) {
	start := time.Now()
	p, err := s.svc.RevealBytes(r.Context(), carrierData)
	if s.metrics != nil {
		n := 0
		if p != nil {
			n = len(p.Data)
		}
		s.metrics.RecordCodecOperation(opDecode, n, err, time.Since(start))
	}
	return p, err
}

func sendPayload(w http.ResponseWriter, p *codec.Payload) {
	w.Header().Set(HeaderPayloadExtension, p.Extension)
	sendBinary(w, ContentTypeOctetStream, "payload."+p.Extension, p.Data)
}

// handleEncode handles POST /encode
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	encoded, _, err := s.encodeForm(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	sendBinary(w, ContentTypeBMP, "encoded.bmp", encoded)
}

// handleDecode handles POST /decode
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	carrierData, err := s.readCarrierBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	p, err := s.reveal(r, carrierData)
	if err != nil {
		s.fail(w, err)
		return
	}
	sendPayload(w, p)
}

// handleInspect handles POST /inspect
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	carrierData, err := s.readCarrierBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	info, err := carrier.Inspect(carrierData, s.svc.Codec().Layout())
	if err != nil {
		s.fail(w, err)
		return
	}
	sendSuccess(w, info)
}

// handleCreateCarrier handles POST /carriers
func (s *Server) handleCreateCarrier(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, errArchiveDisabled)
		return
	}
	encoded, p, err := s.encodeForm(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	id, err := s.store.Put(encoded)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.refreshArchiveGauge()

	sendSuccess(w, CarrierResponse{
		ID:          id,
		Size:        len(encoded),
		CreatedAt:   id.Time().UTC(),
		PayloadSize: len(p.Data),
		Extension:   p.Extension,
	})
}

// handleListCarriers handles GET /carriers
func (s *Server) handleListCarriers(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, errArchiveDisabled)
		return
	}
	entries, err := s.store.List()
	if err != nil {
		s.fail(w, err)
		return
	}

	carriers := make([]CarrierResponse, 0, len(entries))
	for _, e := range entries {
		carriers = append(carriers, CarrierResponse{ID: e.ID, Size: e.Size, CreatedAt: e.CreatedAt})
	}
	sendSuccess(w, map[string]interface{}{
		"carriers": carriers,
		"count":    len(carriers),
	})
}

// archived loads the carrier named by the {id} URL parameter
func (s *Server) archived(r *http.Request) ([]byte, ksuid.KSUID, error) {
	if s.store == nil {
		return nil, ksuid.Nil, errArchiveDisabled
	}
	raw := chi.URLParam(r, "id")
	id, err := ksuid.Parse(raw)
	if err != nil {
		return nil, ksuid.Nil, errors.Wrapf(archive.ErrNotFound, "invalid id %q", raw)
	}
	data, err := s.store.Get(id)
	if err != nil {
		return nil, id, err
	}
	return data, id, nil
}

// handleGetCarrier handles GET /carriers/{id}
func (s *Server) handleGetCarrier(w http.ResponseWriter, r *http.Request) {
	data, id, err := s.archived(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	sendBinary(w, ContentTypeBMP, id.String()+".bmp", data)
}

// handleCarrierPayload handles GET /carriers/{id}/payload
func (s *Server) handleCarrierPayload(w http.ResponseWriter, r *http.Request) {
	data, _, err := s.archived(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	p, err := s.reveal(r, data)
	if err != nil {
		s.fail(w, err)
		return
	}
	sendPayload(w, p)
}

// handleDeleteCarrier handles DELETE /carriers/{id}
func (s *Server) handleDeleteCarrier(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, errArchiveDisabled)
		return
	}
	raw := chi.URLParam(r, "id")
	id, err := ksuid.Parse(raw)
	if err != nil {
		s.fail(w, errors.Wrapf(archive.ErrNotFound, "invalid id %q", raw))
		return
	}
	if err := s.store.Delete(id); err != nil {
		s.fail(w, err)
		return
	}
	s.refreshArchiveGauge()

	sendSuccess(w, map[string]string{
		"id":      id.String(),
		"message": "carrier deleted",
	})
}

func (s *Server) refreshArchiveGauge() {
	if s.metrics == nil || s.store == nil {
		return
	}
	entries, err := s.store.List()
	if err != nil {
		s.log.Warn().Err(err).Msg("list archive for metrics")
		return
	}
	s.metrics.SetArchiveCarriers(len(entries))
}

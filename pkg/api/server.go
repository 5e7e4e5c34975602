// Package api lsbmp REST API
//
// @title           lsbmp REST API
// @version         1.0.0
// @description     Hide files in the low bits of BMP carriers and recover them.
// @host            localhost:9200
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
)

const shutdownTimeout = 10 * time.Second

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>lsbmp API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// NewRouter builds the HTTP handler with all routes configured
func NewRouter(server *Server) http.Handler {
	metrics := server.metrics
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(server.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", HeaderPayloadExtension, "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Stateless codec operations
		r.Post("/encode", metrics.InstrumentHandler("POST", "/api/v1/encode", server.handleEncode))
		r.Post("/decode", metrics.InstrumentHandler("POST", "/api/v1/decode", server.handleDecode))
		r.Post("/inspect", metrics.InstrumentHandler("POST", "/api/v1/inspect", server.handleInspect))

		// Carrier archive
		r.Post("/carriers", metrics.InstrumentHandler("POST", "/api/v1/carriers", server.handleCreateCarrier))
		r.Get("/carriers", metrics.InstrumentHandler("GET", "/api/v1/carriers", server.handleListCarriers))
		r.Get("/carriers/{id}", metrics.InstrumentHandler("GET", "/api/v1/carriers/{id}", server.handleGetCarrier))
		r.Delete("/carriers/{id}",
			metrics.InstrumentHandler("DELETE", "/api/v1/carriers/{id}", server.handleDeleteCarrier))
		r.Get("/carriers/{id}/payload",
			metrics.InstrumentHandler("GET", "/api/v1/carriers/{id}/payload", server.handleCarrierPayload))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", server.handleSwagger)

	return r
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))
	case "/swagger/swagger.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			s.log.Error().Err(err).Msg("generate swagger doc")
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", ContentTypeJSON)
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, svc Stegger, store CarrierArchive, config ServerConfig, log zerolog.Logger) error {
	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)

	server := NewServer(svc, store, config, NewMetrics(), log)
	server.refreshArchiveGauge()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", addr).
			Bool("archive", store != nil).
			Msgf("metrics available at http://%s/metrics", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, "serve")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

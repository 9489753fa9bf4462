// SPDX-License-Identifier: EPL-2.0

package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
	// ArtifactDir, when set, is served read-only under the path of
	// ArtifactPath. ArtifactPath may be a full URL when a proxy or CDN
	// fronts the service; only its path is routed.
	ArtifactDir  string
	ArtifactPath string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
		ArtifactPath:   "/artifacts/",
	}
}

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /trim", h.Trim)

	mux.HandleFunc("POST /sessions", h.CreateSession)
	mux.HandleFunc("GET /sessions/{id}", h.GetSession)
	mux.HandleFunc("DELETE /sessions/{id}", h.DeleteSession)
	mux.HandleFunc("PUT /sessions/{id}/source", h.LoadSource)
	mux.HandleFunc("DELETE /sessions/{id}/source", h.ClearSource)
	mux.HandleFunc("POST /sessions/{id}/trim", h.TrimSession)
	mux.HandleFunc("GET /sessions/{id}/waveform", h.Waveform)

	if cfg.ArtifactDir != "" {
		prefix := artifactPrefix(cfg.ArtifactPath)
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, artifactServer(cfg.ArtifactDir)))
	}

	chain := ChainMiddleware(
		RequestIDMiddleware,
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	return chain(mux)
}

// artifactPrefix is the mux prefix for artifact links built on base,
// falling back to /artifacts/ when base carries no usable path.
func artifactPrefix(base string) string {
	var p string
	if u, err := url.Parse(base); err == nil {
		p = u.Path
	}

	p = path.Clean("/" + strings.Trim(p, "/"))
	if p == "/" {
		p = "/artifacts"
	}
	return p + "/"
}

// artifactServer serves published files but never directory listings.
func artifactServer(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Disposition", "attachment")
		files.ServeHTTP(w, r)
	})
}

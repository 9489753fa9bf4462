// SPDX-License-Identifier: EPL-2.0

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/loader"
	"github.com/ik5/audtrim/trim"
	"github.com/ik5/audtrim/waveform"
)

const (
	defaultMaxUploadBytes = 100 << 20
	defaultDecodeTimeout  = 2 * time.Minute
	defaultBins           = 512
	defaultSessionTTL     = 30 * time.Minute

	// room for multipart boundaries and the small form fields
	multipartOverhead = 1 << 20
	multipartMemory   = 32 << 20
	maxJSONBody       = 1 << 16
)

// errBadUpload marks a request without a usable "file" form field.
var errBadUpload = errors.New("upload must be multipart/form-data with a file field")

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	trimmer        *trim.Trimmer
	publisher      trim.Publisher
	sessions       *sessions
	validator      *validator.Validate
	logger         *slog.Logger
	maxUploadBytes int64
	decodeTimeout  time.Duration
	sessionTTL     time.Duration
	maxSessions    int
}

// HandlerOption is a function that configures a Handlers instance.
type HandlerOption func(*Handlers)

// WithMaxUploadBytes caps the size of an uploaded audio file.
func WithMaxUploadBytes(n int64) HandlerOption {
	return func(h *Handlers) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// WithDecodeTimeout bounds how long one request may spend decoding.
func WithDecodeTimeout(d time.Duration) HandlerOption {
	return func(h *Handlers) {
		if d > 0 {
			h.decodeTimeout = d
		}
	}
}

// WithSessionTTL closes sessions left unused for longer than d.
func WithSessionTTL(d time.Duration) HandlerOption {
	return func(h *Handlers) {
		if d > 0 {
			h.sessionTTL = d
		}
	}
}

// WithMaxSessions caps the number of open sessions; 0 removes the cap.
func WithMaxSessions(n int) HandlerOption {
	return func(h *Handlers) {
		if n >= 0 {
			h.maxSessions = n
		}
	}
}

// NewHandlers creates a new Handlers instance. Sessions publish their
// trims through p.
func NewHandlers(t *trim.Trimmer, p trim.Publisher, logger *slog.Logger, opts ...HandlerOption) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if t == nil {
		t = trim.New(trim.WithLogger(logger))
	}
	if p == nil {
		p = trim.NewMemoryPublisher()
	}

	h := &Handlers{
		trimmer:        t,
		publisher:      p,
		validator:      validator.New(),
		logger:         logger,
		maxUploadBytes: defaultMaxUploadBytes,
		decodeTimeout:  defaultDecodeTimeout,
		sessionTTL:     defaultSessionTTL,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.sessions = newSessions(h.maxSessions)
	return h
}

// ExpireSessions closes sessions idle for longer than the session TTL,
// withdrawing their artifacts, until ctx is done.
func (h *Handlers) ExpireSessions(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval(h.sessionTTL))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.expireIdle(ctx)
		}
	}
}

func (h *Handlers) expireIdle(ctx context.Context) {
	for _, id := range h.sessions.expire(ctx, h.sessionTTL) {
		h.logger.InfoContext(ctx, "session expired",
			slog.String("session_id", id),
			slog.Duration("ttl", h.sessionTTL),
		)
	}
}

// sweepInterval checks four times per TTL, but no more than once a second
// and no less than once a minute.
func sweepInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/4, time.Second), time.Minute)
}

// Close ends every open session, withdrawing their artifacts.
func (h *Handlers) Close(ctx context.Context) {
	h.sessions.closeAll(ctx)
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Types:    loader.AllowedTypes(),
		Sessions: h.sessions.len(),
	})
}

// Trim handles POST /trim: a multipart upload with "file", "start" and
// "end" fields, answered with the trimmed WAV itself.
func (h *Handlers) Trim(w http.ResponseWriter, r *http.Request) {
	src, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer src.Release()

	req, err := parseFormRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.decodeTimeout)
	defer cancel()

	res, err := h.trimmer.Run(ctx, src, audio.Range{Start: *req.Start, End: *req.End})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.WAV)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.WAV); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write wav response",
			slog.String("name", res.Name),
			slog.String("error", err.Error()),
		)
	}
}

// CreateSession handles POST /sessions requests.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessions.add(trim.NewSession(h.trimmer, h.publisher))
	if err != nil {
		w.Header().Set("Retry-After", strconv.Itoa(int(sweepInterval(h.sessionTTL).Seconds())))
		h.fail(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "session created", slog.String("session_id", id))
	writeJSON(w, http.StatusCreated, SessionResponse{ID: id})
}

// GetSession handles GET /sessions/{id} requests.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(id, sess))
}

// DeleteSession handles DELETE /sessions/{id} requests.
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok := h.sessions.remove(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found", "SESSION_NOT_FOUND")
		return
	}

	if err := sess.Close(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "session closed", slog.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// LoadSource handles PUT /sessions/{id}/source: a multipart upload that
// replaces the session's file.
func (h *Handlers) LoadSource(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := h.session(w, r)
	if !ok {
		return
	}

	src, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := sess.Load(r.Context(), src); err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(id, sess))
}

// ClearSource handles DELETE /sessions/{id}/source requests.
func (h *Handlers) ClearSource(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// TrimSession handles POST /sessions/{id}/trim requests.
func (h *Handlers) TrimSession(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := h.session(w, r)
	if !ok {
		return
	}

	var req TrimRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.decodeTimeout)
	defer cancel()

	res, art, err := sess.Trim(ctx, audio.Range{Start: *req.Start, End: *req.End})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "session trimmed",
		slog.String("session_id", id),
		slog.String("key", art.Key),
	)

	writeJSON(w, http.StatusOK, TrimResponse{
		Artifact:   art,
		SampleRate: res.SampleRate,
		Channels:   res.Channels,
		Frames:     res.Frames,
		Start:      res.Range.Start,
		End:        res.Range.End,
		Seconds:    res.Duration().Seconds(),
	})
}

// Waveform handles GET /sessions/{id}/waveform?bins=N requests.
func (h *Handlers) Waveform(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := h.session(w, r)
	if !ok {
		return
	}

	q := WaveformQuery{Bins: defaultBins}
	if raw := r.URL.Query().Get("bins"); raw != "" {
		bins, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bins must be an integer", "VALIDATION_ERROR")
			return
		}
		q.Bins = bins
	}
	if err := h.validator.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.decodeTimeout)
	defer cancel()

	buf, err := sess.Audio(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	peaks, err := waveform.Peaks(ctx, buf, q.Bins)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, WaveformResponse{
		SampleRate: buf.SampleRate(),
		Channels:   buf.Channels(),
		Seconds:    buf.Seconds(),
		Peaks:      peaks,
	})
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*trim.Session, string, bool) {
	id := r.PathValue("id")
	sess, ok := h.sessions.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found", "SESSION_NOT_FOUND")
		return nil, "", false
	}
	return sess, id, true
}

// readUpload loads the "file" part of a multipart request.
func (h *Handlers) readUpload(w http.ResponseWriter, r *http.Request) (*loader.AudioSource, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: %w", loader.ErrSourceTooLarge, err)
		}
		return nil, fmt.Errorf("%w: %w", errBadUpload, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadUpload, err)
	}
	defer file.Close()

	return loader.Load(header.Filename, header.Header.Get("Content-Type"), file,
		loader.WithMaxBytes(h.maxUploadBytes),
	)
}

func parseFormRange(r *http.Request) (TrimRequest, error) {
	var req TrimRequest

	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"start", &req.Start},
		{"end", &req.End},
	} {
		raw := r.FormValue(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("%s must be a number of seconds", f.name)
		}
		*f.dst = &v
	}

	return req, nil
}

// fail maps a pipeline error to a status, a code and a user message.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	msg := trim.Message(err)
	switch {
	case errors.Is(err, errBadUpload):
		msg = "Send the audio file in the \"file\" field of a multipart form."
	case errors.Is(err, errTooManySessions):
		msg = "Too many sessions are open. Close one or try again later."
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("request_id", RequestID(r.Context())),
		slog.String("code", code),
		slog.String("error", err.Error()),
	)

	writeError(w, status, msg, code)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errBadUpload):
		return http.StatusBadRequest, "INVALID_UPLOAD"
	case errors.Is(err, errTooManySessions):
		return http.StatusServiceUnavailable, "TOO_MANY_SESSIONS"
	case errors.Is(err, loader.ErrSourceTooLarge):
		return http.StatusRequestEntityTooLarge, "SOURCE_TOO_LARGE"
	case errors.Is(err, audio.ErrInvalidFormat):
		return http.StatusUnsupportedMediaType, "INVALID_FORMAT"
	case errors.Is(err, loader.ErrEmptySource):
		return http.StatusBadRequest, "EMPTY_SOURCE"
	case errors.Is(err, loader.ErrUnreadableSource):
		return http.StatusBadRequest, "UNREADABLE_SOURCE"
	case errors.Is(err, audio.ErrDecodeFailure):
		return http.StatusUnprocessableEntity, "DECODE_FAILURE"
	case errors.Is(err, audio.ErrInvalidRange):
		return http.StatusBadRequest, "INVALID_RANGE"
	case errors.Is(err, trim.ErrNoSource):
		return http.StatusConflict, "NO_SOURCE"
	case errors.Is(err, trim.ErrSuperseded):
		return http.StatusConflict, "SUPERSEDED"
	case errors.Is(err, trim.ErrClosed):
		return http.StatusGone, "SESSION_CLOSED"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "DECODE_TIMEOUT"
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, "CANCELED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func sessionResponse(id string, sess *trim.Session) SessionResponse {
	resp := SessionResponse{ID: id}

	if src := sess.Source(); src != nil {
		resp.Source = &SourceResponse{
			Name:   src.Name,
			MIME:   src.MIME,
			Format: src.Format,
			Size:   src.Size(),
		}
	}
	if _, art, ok := sess.Latest(); ok {
		resp.Artifact = &art
	}

	return resp
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

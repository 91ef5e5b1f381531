// Package http implements the REST transport for duocast.
//
// Clients create a session, add sources to it (web pages, Bilibili videos,
// uploaded documents), then ask for a podcast. Every action on a session
// runs to completion before the next one starts.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nadzzz/duocast/internal/access"
	"github.com/nadzzz/duocast/internal/extract"
	"github.com/nadzzz/duocast/internal/generator"
	"github.com/nadzzz/duocast/internal/podcast"
	"github.com/nadzzz/duocast/internal/script"
	"github.com/nadzzz/duocast/internal/source"
	"github.com/nadzzz/duocast/internal/transport"
	"github.com/nadzzz/duocast/internal/tts"
	"github.com/nadzzz/duocast/internal/voice"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const defaultMaxUpload = 25 << 20

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port           int
	checker        *access.Checker
	extractTimeout time.Duration
	maxUpload      int64
	server         *http.Server
}

// Option customizes the transport.
type Option func(*Transport)

// WithAccess installs the tenant allow-list in front of every route.
func WithAccess(c *access.Checker) Option {
	return func(t *Transport) { t.checker = c }
}

// WithExtractTimeout bounds each add-source request.
func WithExtractTimeout(d time.Duration) Option {
	return func(t *Transport) { t.extractTimeout = d }
}

// WithMaxUpload limits document uploads.
func WithMaxUpload(n int64) Option {
	return func(t *Transport) {
		if n > 0 {
			t.maxUpload = n
		}
	}
}

// New creates a new HTTP transport on the given port.
func New(port int, opts ...Option) *Transport {
	t := &Transport{
		port:      port,
		checker:   access.NewChecker(nil),
		maxUpload: defaultMaxUpload,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Handler builds the routes for backend.
func (t *Transport) Handler(backend transport.Backend) http.Handler {
	h := &handlers{
		svc:            backend.Service,
		sessions:       backend.Sessions,
		extractTimeout: t.extractTimeout,
		maxUpload:      t.maxUpload,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /voices", h.listVoices)
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions/{id}", h.getSession)
	mux.HandleFunc("DELETE /sessions/{id}", h.deleteSession)
	mux.HandleFunc("POST /sessions/{id}/sources/web", h.addWebSource)
	mux.HandleFunc("POST /sessions/{id}/sources/video", h.addVideoSource)
	mux.HandleFunc("POST /sessions/{id}/sources/document", h.addDocumentSource)
	mux.HandleFunc("DELETE /sessions/{id}/sources/{index}", h.removeSource)
	mux.HandleFunc("POST /sessions/{id}/podcast", h.generate)

	// Swagger UI for the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return t.checker.Middleware(mux)
}

// Listen starts the HTTP server. It blocks until the context is cancelled.
func (t *Transport) Listen(ctx context.Context, backend transport.Backend) error {
	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           t.Handler(backend),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}

type handlers struct {
	svc            *podcast.Service
	sessions       *source.Store
	extractTimeout time.Duration
	maxUpload      int64
}

// listVoices returns the voice catalog.
//
// @Summary     List voices
// @Description Returns the selectable voices in catalog order, with the default picks for voice 1 and voice 2.
// @Tags        voices
// @Produce     json
// @Success     200  {object}  VoicesResponse
// @Router      /voices [get]
func (h *handlers) listVoices(w http.ResponseWriter, r *http.Request) {
	cat := h.svc.Catalog()
	d1, d2 := cat.Defaults()
	resp := VoicesResponse{DefaultVoice1: d1, DefaultVoice2: d2}
	for _, e := range cat.Entries() {
		resp.Voices = append(resp.Voices, Voice{Name: e.Name, ID: e.ID, Locales: e.Locales})
	}
	writeJSON(w, http.StatusOK, resp)
}

// createSession starts an empty session.
//
// @Summary     Create a session
// @Tags        sessions
// @Produce     json
// @Success     201  {object}  SessionResponse
// @Router      /sessions [post]
func (h *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Create()
	slog.Info("session created", "session_id", sess.ID)
	writeJSON(w, http.StatusCreated, sessionResponse(sess))
}

// getSession returns a session and its sources.
//
// @Summary     Get a session
// @Tags        sessions
// @Produce     json
// @Param       id   path      string  true  "Session ID"
// @Success     200  {object}  SessionResponse
// @Failure     404  {object}  ErrorResponse
// @Router      /sessions/{id} [get]
func (h *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	var resp SessionResponse
	err := h.sessions.With(r.PathValue("id"), func(sess *source.Session) error {
		resp = sessionResponse(sess)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// deleteSession discards a session.
//
// @Summary     Delete a session
// @Tags        sessions
// @Param       id   path  string  true  "Session ID"
// @Success     204
// @Failure     404  {object}  ErrorResponse
// @Router      /sessions/{id} [delete]
func (h *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.sessions.With(id, func(*source.Session) error { return nil }); err != nil {
		writeError(w, err)
		return
	}
	h.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// addWebSource scrapes a web page into the session.
//
// @Summary     Add a web page
// @Tags        sources
// @Accept      json
// @Produce     json
// @Param       id       path      string            true  "Session ID"
// @Param       request  body      WebSourceRequest  true  "Page to scrape"
// @Success     201  {object}  SourceResponse
// @Failure     400  {object}  ErrorResponse
// @Failure     404  {object}  ErrorResponse
// @Failure     422  {object}  ErrorResponse  "Extraction failed"
// @Router      /sessions/{id}/sources/web [post]
func (h *handlers) addWebSource(w http.ResponseWriter, r *http.Request) {
	var req WebSourceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeMessage(w, http.StatusBadRequest, "url is required")
		return
	}
	h.addSource(w, r, source.KindWeb, extract.Ref{Origin: req.URL})
}

// addVideoSource transcribes a Bilibili video into the session.
//
// @Summary     Add a Bilibili video
// @Tags        sources
// @Accept      json
// @Produce     json
// @Param       id       path      string              true  "Session ID"
// @Param       request  body      VideoSourceRequest  true  "Video to transcribe"
// @Success     201  {object}  SourceResponse
// @Failure     400  {object}  ErrorResponse
// @Failure     404  {object}  ErrorResponse
// @Failure     422  {object}  ErrorResponse  "Extraction failed"
// @Router      /sessions/{id}/sources/video [post]
func (h *handlers) addVideoSource(w http.ResponseWriter, r *http.Request) {
	var req VideoSourceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.BVID) == "" {
		writeMessage(w, http.StatusBadRequest, "bvid is required")
		return
	}
	h.addSource(w, r, source.KindVideo, extract.Ref{Origin: strings.TrimSpace(req.BVID)})
}

// addDocumentSource extracts an uploaded document into the session.
//
// @Summary     Upload a document
// @Description Accepts TXT, Markdown, PDF and DOCX files.
// @Tags        sources
// @Accept      multipart/form-data
// @Produce     json
// @Param       id    path      string  true  "Session ID"
// @Param       file  formData  file    true  "Document"
// @Success     201  {object}  SourceResponse
// @Failure     400  {object}  ErrorResponse
// @Failure     404  {object}  ErrorResponse
// @Failure     422  {object}  ErrorResponse  "Extraction failed"
// @Router      /sessions/{id}/sources/document [post]
func (h *handlers) addDocumentSource(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "file is required: "+err.Error())
		return
	}
	defer file.Close()

	h.addSource(w, r, source.KindDocument, extract.Ref{Origin: hdr.Filename, Body: file})
}

func (h *handlers) addSource(w http.ResponseWriter, r *http.Request, kind source.Kind, ref extract.Ref) {
	ctx := r.Context()
	if h.extractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.extractTimeout)
		defer cancel()
	}

	var resp SourceResponse
	err := h.sessions.With(r.PathValue("id"), func(sess *source.Session) error {
		item, err := h.svc.AddSource(ctx, sess, kind, ref)
		if err != nil {
			return err
		}
		resp = SourceResponse{
			Source:             sourceView(sess.Len()-1, item),
			Sources:            sess.Len(),
			SuggestedMaxTokens: sess.SuggestedTokenBudget(),
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// removeSource deletes the source at index.
//
// @Summary     Remove a source
// @Tags        sources
// @Produce     json
// @Param       id     path      string   true  "Session ID"
// @Param       index  path      integer  true  "Zero-based source position"
// @Success     200  {object}  SessionResponse
// @Failure     400  {object}  ErrorResponse
// @Failure     404  {object}  ErrorResponse
// @Router      /sessions/{id}/sources/{index} [delete]
func (h *handlers) removeSource(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	var resp SessionResponse
	err = h.sessions.With(r.PathValue("id"), func(sess *source.Session) error {
		if err := h.svc.RemoveSource(sess, index); err != nil {
			return err
		}
		resp = sessionResponse(sess)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// generate produces a podcast from the session's sources.
//
// @Summary     Generate a podcast
// @Description Generates a script, renders it to SSML and synthesizes it in one step.
// @Description Returns WAV audio, or a JSON document with the script, markup and base64 audio
// @Description when the request accepts application/json.
// @Tags        podcast
// @Accept      json
// @Produce     audio/wav
// @Produce     json
// @Param       id       path      string           true   "Session ID"
// @Param       request  body      GenerateRequest  false  "Generation settings"
// @Success     200  {object}  PodcastResponse
// @Failure     400  {object}  ErrorResponse
// @Failure     404  {object}  ErrorResponse
// @Failure     422  {object}  ErrorResponse
// @Failure     502  {object}  ErrorResponse  "Generation or synthesis failed"
// @Router      /sessions/{id}/podcast [post]
func (h *handlers) generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	var res *podcast.Result
	err := h.sessions.With(r.PathValue("id"), func(sess *source.Session) error {
		var err error
		res, err = h.svc.Generate(r.Context(), sess, podcast.Request{
			Mode:      generator.Mode(req.Mode),
			Title:     req.Title,
			Voice1:    req.Voice1,
			Voice2:    req.Voice2,
			MaxTokens: req.MaxTokens,
		})
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, PodcastResponse{
			Script:      res.Script,
			SSML:        res.Markup.String(),
			Audio:       res.AudioBase64(),
			ContentType: res.ContentType,
			SampleRate:  res.SampleRate,
			MaxTokens:   res.MaxTokens,
		})
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="podcast.wav"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Audio)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Audio)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return decode(w, r, v, false)
}

// decodeOptionalJSON accepts an empty body as the zero value.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return decode(w, r, v, true)
}

func decode(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		writeMessage(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	return true
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var (
		extErr      *extract.Error
		genErr      *generator.Error
		canceledErr *tts.CanceledError
		unknownErr  *tts.UnknownReasonError
	)
	switch {
	case errors.Is(err, source.ErrSessionNotFound), errors.Is(err, source.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, voice.ErrUnknownVoice), errors.Is(err, podcast.ErrUnknownMode),
		errors.Is(err, podcast.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.As(err, &extErr), errors.Is(err, source.ErrEmptyContent), errors.Is(err, podcast.ErrNoSources):
		return http.StatusUnprocessableEntity
	case errors.As(err, &genErr), errors.As(err, &canceledErr), errors.As(err, &unknownErr):
		return http.StatusBadGateway
	case errors.Is(err, script.ErrEmptyScript):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		slog.Error("request failed", "status", status, "error", err)
	}
	writeMessage(w, status, podcast.Describe(err))
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

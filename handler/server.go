package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"

	"golang.org/x/exp/slog"
)

type Server struct {
	apis   map[string]http.Handler
	health http.Handler
	logger *slog.Logger
}

// NewServer routes /api/<name> to the apis and /health to the status of the
// store. metadata may be nil when no YouTube API key is configured.
func NewServer(transcripts TranscriptFetcher, clips ClipService, metadata MetadataFetcher, store StatusReporter, logger *slog.Logger) *Server {
	return &Server{
		apis: map[string]http.Handler{
			"fetch":  NewTranscriptAPI(transcripts, logger),
			"clips":  NewClipAPI(clips, logger),
			"videos": NewVideoAPI(metadata, logger),
		},
		health: NewHealthAPI(store),
		logger: logger,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	originalPath := r.URL.Path
	rec := httptest.NewRecorder() // records the response to be able to mix writing headers and content

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "*")

	// route to api
	head, tail := ShiftPath(r.URL.Path)
	switch {
	case r.Method == http.MethodOptions:
		rec.WriteHeader(http.StatusNoContent)
	case head == "":
		Index(rec)
	case head == "health":
		s.health.ServeHTTP(rec, r)
	case head == "api":
		name, rest := ShiftPath(tail)
		api, ok := s.apis[name]
		if !ok {
			Error(rec, http.StatusNotFound, "not found", fmt.Errorf("%s is not a valid path", originalPath))
			break
		}
		r.URL.Path = rest
		api.ServeHTTP(rec, r)
	default:
		Error(rec, http.StatusNotFound, "not found", fmt.Errorf("%s is not a valid path", originalPath))
	}

	returnResponse(w, rec)
	s.logger.Info("request served", slog.String("method", r.Method), slog.String("path", originalPath), slog.Int("status", rec.Code))
}

func returnResponse(w http.ResponseWriter, rec *httptest.ResponseRecorder) {
	for k, v := range rec.Header() {
		w.Header()[k] = v
	}
	w.WriteHeader(rec.Code)
	w.Write(rec.Body.Bytes())
}

// ShiftPath splits off the first component of p, which will be cleaned of
// relative components before processing. head will never contain a slash and
// tail will always be a rooted path without trailing slash.
// See https://blog.merovius.de/posts/2017-06-18-how-not-to-use-an-http-router/
func ShiftPath(p string) (string, string) {
	p = path.Clean("/" + p)

	// restore iri prefixes that might be mangled by path.Clean
	for k, v := range map[string]string{
		"http:/":  "http://",
		"https:/": "https://",
	} {
		p = strings.Replace(p, k, v, -1)
	}

	i := strings.Index(p[1:], "/") + 1
	if i <= 0 {
		return p[1:], "/"
	}
	return p[1:i], p[i:]
}

package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// server owns the process-wide configuration and the extraction client.
// Requests share nothing else.
type server struct {
	cfg       Config
	source    videoSource
	startTime time.Time
}

func newServer(cfg Config, source videoSource) *server {
	return &server{cfg: cfg, source: source, startTime: time.Now()}
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)
	r.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.cfg.StaticDir)))
	return r
}

// requestURL extracts and validates the url query parameter. It never
// triggers a network call.
func requestURL(r *http.Request) (string, error) {
	rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if rawURL == "" {
		return "", errMissingParameter
	}
	if err := validateURL(rawURL); err != nil {
		return "", err
	}
	return rawURL, nil
}

// handleInfo serves GET /info: metadata only, no streaming.
func (s *server) handleInfo(w http.ResponseWriter, r *http.Request) {
	rawURL, err := requestURL(r)
	if err != nil {
		writeError(w, err)
		return
	}

	video, err := s.fetchVideo(r.Context(), rawURL)
	if err != nil {
		log.Printf("Info request failed for %s: %v", rawURL, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, infoFromVideo(video))
}

// handleStream serves GET /stream: one bounded metadata fetch supplies both
// the title and the format list, then the selected format is relayed through
// the transcoder into the response.
func (s *server) handleStream(w http.ResponseWriter, r *http.Request) {
	rawURL, err := requestURL(r)
	if err != nil {
		writeError(w, err)
		return
	}

	video, err := s.fetchVideo(r.Context(), rawURL)
	if err != nil {
		log.Printf("Stream request failed for %s: %v", rawURL, err)
		writeError(w, err)
		return
	}

	format, err := selectAudioFormat(video.Formats)
	if err != nil {
		log.Printf("Stream request failed for %s: %v", rawURL, err)
		writeError(w, err)
		return
	}

	source, _, err := s.source.GetStreamContext(r.Context(), video, format)
	if err != nil {
		streamFailures.WithLabelValues("source").Inc()
		log.Printf("Source stream failed for %s (itag %d): %v", rawURL, format.ItagNo, err)
		writeError(w, wrapUpstream(err))
		return
	}
	defer source.Close()

	sess := newStreamSession(w, s.cfg.FFmpegPath)
	if err := sess.run(r.Context(), source, video.Title); err != nil {
		if sess.started() {
			// Headers are on the wire; nothing left but to drop the
			// connection and keep the diagnosis server-side.
			log.Printf("Stream aborted for %s: %v", rawURL, err)
			return
		}
		log.Printf("Stream request failed for %s: %v", rawURL, err)
		writeError(w, err)
	}
}

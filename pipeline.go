package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"strings"
)

// responseState tracks how far the HTTP response has progressed, so failure
// handling can tell a reportable error (no headers yet) from one that can
// only be logged.
type responseState int

const (
	stateNotStarted responseState = iota
	stateHeadersSent
	stateClosed
)

// streamSession pairs one source stream with one transcoder process and one
// response writer. Sessions are created per request and never reused.
type streamSession struct {
	w     http.ResponseWriter
	state responseState

	// newCmd builds the transcoder process. Overridden in tests.
	newCmd func(ctx context.Context) *exec.Cmd
}

func newStreamSession(w http.ResponseWriter, ffmpegPath string) *streamSession {
	return &streamSession{
		w: w,
		newCmd: func(ctx context.Context) *exec.Cmd {
			return exec.CommandContext(ctx, ffmpegPath, ffmpegArgs()...)
		},
	}
}

// ffmpegArgs configures a stdin-to-stdout MP3 transcode at the fixed bitrate.
func ffmpegArgs() []string {
	return []string{
		"-loglevel", "error",
		"-i", "pipe:0",
		"-vn",
		"-acodec", "libmp3lame",
		"-f", "mp3",
		"-b:a", MP3Bitrate,
		"pipe:1",
	}
}

func (s *streamSession) started() bool {
	return s.state != stateNotStarted
}

// run relays source through the transcoder into the response writer. Bytes
// flow incrementally; the complete audio is never buffered. Headers are
// written only once the transcoder has produced its first output, so any
// failure before that point can still be reported with a status code.
// Cancelling ctx (client disconnect) kills the transcoder via CommandContext.
func (s *streamSession) run(ctx context.Context, source io.Reader, title string) error {
	cmd := s.newCmd(ctx)
	cmd.Stdin = source

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: transcoder pipe: %v", errUpstream, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: starting transcoder: %v", errUpstream, err)
	}
	streamsStarted.Inc()

	// Wait for the first transcoded bytes before committing to a 200.
	buf := make([]byte, 32*1024)
	n, readErr := io.ReadAtLeast(stdout, buf, 1)
	if readErr != nil {
		waitErr := cmd.Wait()
		if readErr == io.EOF && waitErr == nil && ctx.Err() == nil {
			// Transcoder exited cleanly with empty output (zero-length source).
			s.writeHeaders(title)
			s.state = stateClosed
			return nil
		}
		streamFailures.WithLabelValues("transcode").Inc()
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", errUpstream, ctx.Err())
		}
		return fmt.Errorf("%w: transcoder produced no output: %v%s", errUpstream, firstNonNil(waitErr, readErr), stderrDetail(&stderr))
	}

	s.writeHeaders(title)
	relayed := int64(n)
	_, copyErr := s.w.Write(buf[:n])
	if copyErr == nil {
		s.flush()
		var written int64
		written, copyErr = io.Copy(flushWriter{s.w}, stdout)
		relayed += written
	}
	streamBytesRelayed.Add(float64(relayed))

	if copyErr != nil && cmd.Process != nil {
		// Sink is gone; stop the transcoder instead of letting it block.
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()
	s.state = stateClosed

	if copyErr != nil {
		streamFailures.WithLabelValues("relay").Inc()
		return fmt.Errorf("%w: relay interrupted after %d bytes: %v", errUpstream, relayed, copyErr)
	}
	if waitErr != nil {
		streamFailures.WithLabelValues("transcode").Inc()
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", errUpstream, ctx.Err())
		}
		return fmt.Errorf("%w: transcoder: %v%s", errUpstream, waitErr, stderrDetail(&stderr))
	}
	return nil
}

// writeHeaders must precede the first body byte; the content-disposition
// filename comes from the resource title.
func (s *streamSession) writeHeaders(title string) {
	h := s.w.Header()
	h.Set("Content-Type", "audio/mpeg")
	h.Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.mp3"`, url.PathEscape(title)))
	h.Set("Transfer-Encoding", "chunked")
	h.Set("Cache-Control", "no-cache")
	s.w.WriteHeader(http.StatusOK)
	s.state = stateHeadersSent
}

func (s *streamSession) flush() {
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
}

// flushWriter pushes each transcoded chunk to the client as it arrives
// instead of sitting in the response buffer.
type flushWriter struct {
	w http.ResponseWriter
}

func (fw flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if err == nil {
		if f, ok := fw.w.(http.Flusher); ok {
			f.Flush()
		}
	}
	return n, err
}

func firstNonNil(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func stderrDetail(stderr *bytes.Buffer) string {
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return ""
	}
	return " | " + msg
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// videoSource is the slice of the extraction client the server uses. Tests
// substitute a stub; production wires *youtube.Client.
type videoSource interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
	"www.youtu.be":      true,
}

// validateURL rejects anything that is not a plausible YouTube video URL.
// It is purely syntactic; no network call is made.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", errInvalidURL, u.Scheme)
	}
	if !youtubeHosts[strings.ToLower(u.Host)] {
		return fmt.Errorf("%w: host %q is not a YouTube host", errInvalidURL, u.Host)
	}
	if _, err := youtube.ExtractVideoID(rawURL); err != nil {
		return fmt.Errorf("%w: %v", errInvalidURL, err)
	}
	return nil
}

// fetchVideo retrieves metadata for rawURL, bounded by the configured timeout,
// and maps extraction failures onto the request error taxonomy.
func (s *server) fetchVideo(ctx context.Context, rawURL string) (*youtube.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	video, err := s.source.GetVideoContext(ctx, rawURL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: metadata fetch exceeded %s", errFetchTimeout, s.cfg.FetchTimeout)
		}
		var playability *youtube.ErrPlayabiltyStatus
		if errors.As(err, &playability) {
			return nil, fmt.Errorf("%w: %s", errUnavailable, playability.Reason)
		}
		if errors.Is(err, youtube.ErrVideoPrivate) || errors.Is(err, youtube.ErrLoginRequired) {
			return nil, fmt.Errorf("%w: %v", errUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", errInternal, err)
	}
	return video, nil
}

// infoFromVideo maps extraction metadata onto the /info response shape.
// The first thumbnail wins; a missing author becomes "Unknown".
func infoFromVideo(v *youtube.Video) VideoInfo {
	info := VideoInfo{
		Title:       v.Title,
		Duration:    int(v.Duration.Seconds()),
		Author:      v.Author,
		Description: v.Description,
		ViewCount:   v.Views,
	}
	if info.Author == "" {
		info.Author = "Unknown"
	}
	if len(v.Thumbnails) > 0 {
		info.Thumbnail = v.Thumbnails[0].URL
	}
	return info
}

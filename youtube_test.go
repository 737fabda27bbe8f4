package main

import (
	"errors"
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"
)

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://music.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"http://youtu.be/dQw4w9WgXcQ",
	}
	for _, u := range valid {
		if err := validateURL(u); err != nil {
			t.Errorf("validateURL(%q) = %v, want nil", u, err)
		}
	}

	invalid := []string{
		"",
		"not a url",
		"ftp://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://vimeo.com/123456",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://youtube.com.evil.example/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=short",
	}
	for _, u := range invalid {
		err := validateURL(u)
		if err == nil {
			t.Errorf("validateURL(%q) = nil, want error", u)
			continue
		}
		if !errors.Is(err, errInvalidURL) {
			t.Errorf("validateURL(%q) = %v, want errInvalidURL", u, err)
		}
	}
}

func TestInfoFromVideo(t *testing.T) {
	v := &youtube.Video{
		Title:       "Song",
		Author:      "Artist",
		Duration:    180 * time.Second,
		Description: "a description",
		Views:       12345,
		Thumbnails:  youtube.Thumbnails{{URL: "http://t/1.jpg"}, {URL: "http://t/2.jpg"}},
	}

	info := infoFromVideo(v)
	if info.Title != "Song" {
		t.Errorf("Title = %q, want %q", info.Title, "Song")
	}
	if info.Duration != 180 {
		t.Errorf("Duration = %d, want 180", info.Duration)
	}
	if info.Thumbnail != "http://t/1.jpg" {
		t.Errorf("Thumbnail = %q, want first thumbnail", info.Thumbnail)
	}
	if info.Author != "Artist" {
		t.Errorf("Author = %q, want %q", info.Author, "Artist")
	}
	if info.ViewCount != 12345 {
		t.Errorf("ViewCount = %d, want 12345", info.ViewCount)
	}
}

func TestInfoFromVideoDefaults(t *testing.T) {
	info := infoFromVideo(&youtube.Video{Title: "Untitled"})
	if info.Author != "Unknown" {
		t.Errorf("Author = %q, want %q for missing author", info.Author, "Unknown")
	}
	if info.Thumbnail != "" {
		t.Errorf("Thumbnail = %q, want empty for no thumbnails", info.Thumbnail)
	}
}

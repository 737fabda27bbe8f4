package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// selectAudioFormat picks the format to feed the transcoder.
//
// Audio-only formats are preferred, highest bitrate first. When the platform
// exposes none (common for some resources), any format carrying audio is
// accepted, lowest bitrate first to keep transcoding cost down. Stable sorts
// keep ties in platform order, so selection is deterministic.
func selectAudioFormat(formats []youtube.Format) (*youtube.Format, error) {
	audioOnly := make([]youtube.Format, 0, len(formats))
	withAudio := make([]youtube.Format, 0, len(formats))
	for _, f := range formats {
		if !hasAudio(f) {
			continue
		}
		if isAudioOnly(f) {
			audioOnly = append(audioOnly, f)
		} else {
			withAudio = append(withAudio, f)
		}
	}

	if len(audioOnly) > 0 {
		sort.SliceStable(audioOnly, func(i, j int) bool {
			return audioOnly[i].Bitrate > audioOnly[j].Bitrate
		})
		return &audioOnly[0], nil
	}

	if len(withAudio) > 0 {
		sort.SliceStable(withAudio, func(i, j int) bool {
			return withAudio[i].Bitrate < withAudio[j].Bitrate
		})
		return &withAudio[0], nil
	}

	return nil, fmt.Errorf("%w: %d formats, none with audio", errNoSuitableFormat, len(formats))
}

func hasAudio(f youtube.Format) bool {
	return f.AudioChannels > 0 || isAudioOnly(f)
}

func isAudioOnly(f youtube.Format) bool {
	return strings.HasPrefix(f.MimeType, "audio/")
}

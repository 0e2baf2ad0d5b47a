package resolver

import "strings"

// AudioGuesser derives candidate audio-track URLs from a resolved video URL,
// most likely first. The naming of hosted audio tracks changes upstream from
// time to time; this is the only place that knows about it.
type AudioGuesser func(videoURL string) []string

var audioTrackNames = []string{
	"CMAF_AUDIO_128.mp4",
	"CMAF_AUDIO_64.mp4",
	"DASH_AUDIO_128.mp4",
	"DASH_AUDIO_64.mp4",
	"DASH_audio.mp4",
}

// GuessAudioURLs swaps the rendition file name of a hosted video URL for each
// known audio track name.
// Example: https://v.redd.it/abc/DASH_720.mp4?source=fallback ->
// https://v.redd.it/abc/CMAF_AUDIO_128.mp4, ...
func GuessAudioURLs(videoURL string) []string {
	base := videoURL
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}

	slash := strings.LastIndexByte(base, '/')
	if slash <= len("https://") || !strings.HasSuffix(strings.ToLower(base), ".mp4") {
		return nil
	}
	dir := base[:slash]

	urls := make([]string, 0, len(audioTrackNames))
	for _, name := range audioTrackNames {
		urls = append(urls, dir+"/"+name)
	}
	return urls
}

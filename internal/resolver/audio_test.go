package resolver

import "testing"

func TestGuessAudioURLs(t *testing.T) {
	tests := []struct {
		video string
		first string
		last  string
	}{
		{
			video: "https://v.redd.it/8kq2x1y9abcd1/DASH_720.mp4?source=fallback",
			first: "https://v.redd.it/8kq2x1y9abcd1/CMAF_AUDIO_128.mp4",
			last:  "https://v.redd.it/8kq2x1y9abcd1/DASH_audio.mp4",
		},
		{
			video: "https://v.redd.it/zz9/DASH_1080.mp4",
			first: "https://v.redd.it/zz9/CMAF_AUDIO_128.mp4",
			last:  "https://v.redd.it/zz9/DASH_audio.mp4",
		},
		{
			video: "https://v.redd.it/q1/CMAF_480.mp4#t=0",
			first: "https://v.redd.it/q1/CMAF_AUDIO_128.mp4",
			last:  "https://v.redd.it/q1/DASH_audio.mp4",
		},
	}

	for _, tt := range tests {
		got := GuessAudioURLs(tt.video)
		if len(got) != len(audioTrackNames) {
			t.Fatalf("GuessAudioURLs(%s) returned %d urls", tt.video, len(got))
		}
		if got[0] != tt.first {
			t.Errorf("first = %s, want %s", got[0], tt.first)
		}
		if got[len(got)-1] != tt.last {
			t.Errorf("last = %s, want %s", got[len(got)-1], tt.last)
		}
	}
}

func TestGuessAudioURLsIncludesKnownNames(t *testing.T) {
	got := GuessAudioURLs("https://v.redd.it/abc/DASH_720.mp4")
	want := map[string]bool{
		"https://v.redd.it/abc/CMAF_AUDIO_64.mp4": false,
		"https://v.redd.it/abc/DASH_audio.mp4":    false,
	}
	for _, u := range got {
		if _, ok := want[u]; ok {
			want[u] = true
		}
	}
	for u, seen := range want {
		if !seen {
			t.Errorf("missing candidate %s", u)
		}
	}
}

func TestGuessAudioURLsRejectsNonVideo(t *testing.T) {
	for _, in := range []string{
		"",
		"https://v.redd.it/abc",
		"https://v.redd.it/abc/DASHPlaylist.mpd",
		"DASH_720.mp4",
	} {
		if got := GuessAudioURLs(in); got != nil {
			t.Errorf("GuessAudioURLs(%q) = %v, want nil", in, got)
		}
	}
}

func TestNormalizeImageURL(t *testing.T) {
	tests := map[string]string{
		"https://preview.redd.it/abc123.jpg?width=640&s=deadbeef": "https://i.redd.it/abc123.jpg",
		"https://i.redd.it/abc123.png":                            "https://i.redd.it/abc123.png",
		"https://i.imgur.com/x.gif?x=1":                           "https://i.imgur.com/x.gif?x=1",
	}
	for in, want := range tests {
		if got := NormalizeImageURL(in); got != want {
			t.Errorf("NormalizeImageURL(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestDashCandidates(t *testing.T) {
	got := DashCandidates("https://v.redd.it/abc/DASHPlaylist.mpd?a=1")
	want := []string{
		"https://v.redd.it/abc/DASH_1080.mp4?a=1",
		"https://v.redd.it/abc/DASH_720.mp4?a=1",
		"https://v.redd.it/abc/DASH_480.mp4?a=1",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if DashCandidates("https://v.redd.it/abc/DASH_720.mp4") != nil {
		t.Error("non-playlist url should yield no candidates")
	}
}

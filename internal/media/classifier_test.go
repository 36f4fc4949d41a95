package media

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		url  string
		kind Kind
		out  string
	}{
		{
			name: "youtube short link",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			kind: KindYouTube,
			out:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "youtube watch link",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			kind: KindYouTube,
			out:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "youtube embed link",
			url:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			kind: KindYouTube,
			out:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "youtube without scheme",
			url:  "youtu.be/dQw4w9WgXcQ",
			kind: KindYouTube,
			out:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "image with query string",
			url:  "https://example.com/cover.png?v=2",
			kind: KindImage,
			out:  "https://example.com/cover.png?v=2",
		},
		{
			name: "image uppercase extension",
			url:  "https://example.com/photo.JPG",
			kind: KindImage,
			out:  "https://example.com/photo.JPG",
		},
		{
			name: "video",
			url:  "https://example.com/clip.mp4",
			kind: KindVideo,
			out:  "https://example.com/clip.mp4",
		},
		{
			name: "video with query string",
			url:  "https://example.com/clip.webm?token=abc",
			kind: KindVideo,
			out:  "https://example.com/clip.webm?token=abc",
		},
		{
			// Host matching runs before extension matching.
			name: "youtube path ending in media extension",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&file=x.png",
			kind: KindYouTube,
			out:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "plain page",
			url:  "https://example.com/about",
			kind: KindUnsupported,
			out:  "https://example.com/about",
		},
		{
			name: "document",
			url:  "https://example.com/paper.pdf",
			kind: KindUnsupported,
			out:  "https://example.com/paper.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := Classify(tt.url)
			if err != nil {
				t.Fatalf("Classify(%q) returned error: %v", tt.url, err)
			}
			if cls.Kind != tt.kind {
				t.Errorf("Classify(%q) kind.\nExpected: %v\nGot: %v", tt.url, tt.kind, cls.Kind)
			}
			if cls.URL != tt.out {
				t.Errorf("Classify(%q) url.\nExpected: %v\nGot: %v", tt.url, tt.out, cls.URL)
			}
		})
	}
}

func TestClassifyInvalidYouTube(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/",
		"https://www.youtube.com/watch?v=short",
		"https://youtu.be/",
	}
	for _, url := range urls {
		cls, err := Classify(url)
		if !errors.Is(err, ErrInvalidYouTubeURL) {
			t.Errorf("Classify(%q) error.\nExpected: %v\nGot: %v", url, ErrInvalidYouTubeURL, err)
		}
		if cls.Kind != KindUnsupported {
			t.Errorf("Classify(%q) kind.\nExpected: %v\nGot: %v", url, KindUnsupported, cls.Kind)
		}
	}
}

func TestYouTubeEmbedURLIdempotent(t *testing.T) {
	embed, err := YouTubeEmbedURL("https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("first conversion failed: %v", err)
	}
	again, err := YouTubeEmbedURL(embed)
	if err != nil {
		t.Fatalf("second conversion failed: %v", err)
	}
	if embed != again {
		t.Errorf("embed URL not stable.\nExpected: %s\nGot: %s", embed, again)
	}
}

func TestIsImageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/a.jpeg", true},
		{"https://example.com/a.jpg", true},
		{"https://example.com/a.gif", true},
		{"https://example.com/a.png", true},
		{"https://example.com/a.webp", true},
		{"https://example.com/a.bmp", true},
		{"https://example.com/a.svg", true},
		{"https://example.com/a.SVG?x=1", true},
		{"https://example.com/a.mp4", false},
		{"https://example.com/a", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsImageURL(tt.url); got != tt.want {
			t.Errorf("IsImageURL(%q).\nExpected: %v\nGot: %v", tt.url, tt.want, got)
		}
	}
}

func TestIsVideoURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/a.mp4", true},
		{"https://example.com/a.webm", true},
		{"https://example.com/a.ogg", true},
		{"https://example.com/a.mov", true},
		{"https://example.com/a.avi", true},
		{"https://example.com/a.mkv", true},
		{"https://example.com/a.MKV?x=1", true},
		{"https://example.com/a.png", false},
		{"https://example.com/a", false},
	}
	for _, tt := range tests {
		if got := IsVideoURL(tt.url); got != tt.want {
			t.Errorf("IsVideoURL(%q).\nExpected: %v\nGot: %v", tt.url, tt.want, got)
		}
	}
}

// Package media classifies cover URLs and verifies that they serve loadable
// media. Classification is purely syntactic (host and extension matching) and
// deliberately split from load verification, so the same rules can run in
// rendering contexts where no network probe is wanted.
package media

import (
	"errors"
	"regexp"
	"strings"
)

// Kind is the classification of a candidate cover URL.
type Kind string

const (
	KindUnsupported Kind = "unsupported"
	KindYouTube     Kind = "youtube"
	KindImage       Kind = "image"
	KindVideo       Kind = "video"
)

// ErrInvalidYouTubeURL is returned when a URL matches a YouTube host but no
// 11-character video id can be extracted from it.
var ErrInvalidYouTubeURL = errors.New("media: invalid YouTube URL")

const embedPrefix = "https://www.youtube.com/embed/"

var (
	youtubeHostPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/`)
	youtubeIDPattern   = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:embed/|v/|watch\?v=))([\w-]{11})`)
)

var imageExtensions = map[string]bool{
	"jpeg": true, "jpg": true, "gif": true, "png": true,
	"webp": true, "bmp": true, "svg": true,
}

var videoExtensions = map[string]bool{
	"mp4": true, "webm": true, "ogg": true,
	"mov": true, "avi": true, "mkv": true,
}

// Classification is the result of classifying a URL. URL holds the normalized
// reference: the canonical embed URL for YouTube matches, the input URL
// otherwise.
type Classification struct {
	Kind Kind
	URL  string
}

// Classify assigns a URL to exactly one Kind. YouTube host matching takes
// priority over extension matching, so a YouTube URL whose path happens to
// end in a media extension still classifies as youtube.
func Classify(rawURL string) (Classification, error) {
	if IsYouTubeURL(rawURL) {
		embed, err := YouTubeEmbedURL(rawURL)
		if err != nil {
			return Classification{Kind: KindUnsupported}, err
		}
		return Classification{Kind: KindYouTube, URL: embed}, nil
	}
	if IsImageURL(rawURL) {
		return Classification{Kind: KindImage, URL: rawURL}, nil
	}
	if IsVideoURL(rawURL) {
		return Classification{Kind: KindVideo, URL: rawURL}, nil
	}
	return Classification{Kind: KindUnsupported, URL: rawURL}, nil
}

// IsYouTubeURL reports whether the URL points at a recognized YouTube host
// (bare domain or youtu.be short link).
func IsYouTubeURL(rawURL string) bool {
	return youtubeHostPattern.MatchString(rawURL)
}

// YouTubeEmbedURL extracts the 11-character video id and returns the
// canonical embeddable URL. It returns ErrInvalidYouTubeURL when the id
// cannot be extracted.
func YouTubeEmbedURL(rawURL string) (string, error) {
	m := youtubeIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", ErrInvalidYouTubeURL
	}
	return embedPrefix + m[1], nil
}

// IsImageURL reports whether the URL path ends in a recognized image
// extension. The query string is ignored and matching is case-insensitive.
func IsImageURL(rawURL string) bool {
	return imageExtensions[pathExtension(rawURL)]
}

// IsVideoURL reports whether the URL path ends in a recognized video
// extension.
func IsVideoURL(rawURL string) bool {
	return videoExtensions[pathExtension(rawURL)]
}

func pathExtension(rawURL string) string {
	path := rawURL
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(path[i+1:])
}

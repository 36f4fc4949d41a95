package media

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Prober verifies that a classified URL actually serves loadable media.
// Classification only inspects the URL string; a probe is the second phase
// that confirms the resource behind it loads.
type Prober interface {
	Probe(ctx context.Context, kind Kind, url string) error
}

// HTTPProber fetches the resource and checks the advertised content type.
// This is the server-side analogue of letting a browser attempt an image
// decode or a video metadata load. YouTube references are trusted as soon as
// they classify and are never probed.
type HTTPProber struct {
	Client *http.Client
}

func NewHTTPProber() *HTTPProber {
	return &HTTPProber{Client: http.DefaultClient}
}

func (p *HTTPProber) Probe(ctx context.Context, kind Kind, url string) error {
	if kind == KindYouTube {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	switch kind {
	case KindImage:
		if !strings.HasPrefix(contentType, "image/") {
			return fmt.Errorf("%s is not an image (content type %q)", url, contentType)
		}
	case KindVideo:
		// Ogg containers are commonly served as application/ogg.
		if !strings.HasPrefix(contentType, "video/") && !strings.HasPrefix(contentType, "application/ogg") {
			return fmt.Errorf("%s is not a video (content type %q)", url, contentType)
		}
	default:
		return fmt.Errorf("cannot probe unsupported media kind %q", kind)
	}
	return nil
}

package form

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"easyblog/internal/media"
	"easyblog/internal/models"
	"easyblog/internal/utils"
)

// stubProber returns a fixed result, optionally blocking until released so
// tests can observe the pending state.
type stubProber struct {
	err     error
	release chan struct{} // when non-nil, Probe blocks until closed
}

func (p *stubProber) Probe(ctx context.Context, kind media.Kind, url string) error {
	if p.release != nil {
		<-p.release
	}
	return p.err
}

func TestSubmitCoverURLYouTube(t *testing.T) {
	c := NewController(&stubProber{})

	if err := c.SubmitCoverURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ"); err != nil {
		t.Fatalf("SubmitCoverURL returned error: %v", err)
	}

	// YouTube is trusted without a probe, so the state is set immediately.
	if c.CoverState() != CoverSet {
		t.Fatalf("cover state.\nExpected: %v\nGot: %v", CoverSet, c.CoverState())
	}
	cover := c.Cover()
	if cover == nil {
		t.Fatal("expected a cover, got nil")
	}
	if cover.Kind != models.CoverVideo {
		t.Errorf("cover kind.\nExpected: %v\nGot: %v", models.CoverVideo, cover.Kind)
	}
	if !strings.HasSuffix(cover.URL, "/embed/dQw4w9WgXcQ") {
		t.Errorf("cover URL should be the embed form, got %q", cover.URL)
	}
}

func TestSubmitCoverURLInvalidYouTube(t *testing.T) {
	c := NewController(&stubProber{})

	err := c.SubmitCoverURL(context.Background(), "https://www.youtube.com/watch?v=nope")
	if !errors.Is(err, media.ErrInvalidYouTubeURL) {
		t.Fatalf("error.\nExpected: %v\nGot: %v", media.ErrInvalidYouTubeURL, err)
	}
	if c.CoverState() != CoverEmpty {
		t.Errorf("cover state.\nExpected: %v\nGot: %v", CoverEmpty, c.CoverState())
	}
	if c.CoverError() != MsgInvalidYouTube {
		t.Errorf("cover error.\nExpected: %q\nGot: %q", MsgInvalidYouTube, c.CoverError())
	}
}

func TestSubmitCoverURLUnsupported(t *testing.T) {
	c := NewController(&stubProber{})

	err := c.SubmitCoverURL(context.Background(), "https://example.com/paper.pdf")
	if !errors.Is(err, ErrUnsupportedURL) {
		t.Fatalf("error.\nExpected: %v\nGot: %v", ErrUnsupportedURL, err)
	}
	if c.CoverError() != MsgUnsupportedURL {
		t.Errorf("cover error.\nExpected: %q\nGot: %q", MsgUnsupportedURL, c.CoverError())
	}
}

func TestSubmitCoverURLImageVerified(t *testing.T) {
	c := NewController(&stubProber{})

	if err := c.SubmitCoverURL(context.Background(), "https://example.com/cover.png?v=2"); err != nil {
		t.Fatalf("SubmitCoverURL returned error: %v", err)
	}
	c.WaitCover()

	if c.CoverState() != CoverSet {
		t.Fatalf("cover state.\nExpected: %v\nGot: %v", CoverSet, c.CoverState())
	}
	cover := c.Cover()
	if cover.Kind != models.CoverImage {
		t.Errorf("cover kind.\nExpected: %v\nGot: %v", models.CoverImage, cover.Kind)
	}
	if cover.URL != "https://example.com/cover.png?v=2" {
		t.Errorf("cover URL.\nExpected the input URL\nGot: %q", cover.URL)
	}
}

func TestSubmitCoverURLImageProbeFails(t *testing.T) {
	c := NewController(&stubProber{err: errors.New("load failed")})

	if err := c.SubmitCoverURL(context.Background(), "https://example.com/cover.png"); err != nil {
		t.Fatalf("SubmitCoverURL returned error: %v", err)
	}
	c.WaitCover()

	if c.CoverState() != CoverEmpty {
		t.Errorf("cover state.\nExpected: %v\nGot: %v", CoverEmpty, c.CoverState())
	}
	if c.CoverError() != MsgImageLoadFailed {
		t.Errorf("cover error.\nExpected: %q\nGot: %q", MsgImageLoadFailed, c.CoverError())
	}
}

func TestSubmitCoverURLVideoProbeFails(t *testing.T) {
	c := NewController(&stubProber{err: errors.New("load failed")})

	if err := c.SubmitCoverURL(context.Background(), "https://example.com/clip.mp4"); err != nil {
		t.Fatalf("SubmitCoverURL returned error: %v", err)
	}
	c.WaitCover()

	if c.CoverError() != MsgVideoLoadFailed {
		t.Errorf("cover error.\nExpected: %q\nGot: %q", MsgVideoLoadFailed, c.CoverError())
	}
}

func TestCoverPendingWhileProbeInFlight(t *testing.T) {
	release := make(chan struct{})
	c := NewController(&stubProber{release: release})

	if err := c.SubmitCoverURL(context.Background(), "https://example.com/cover.png"); err != nil {
		t.Fatalf("SubmitCoverURL returned error: %v", err)
	}

	if c.CoverState() != CoverPending {
		t.Errorf("cover state while probe in flight.\nExpected: %v\nGot: %v", CoverPending, c.CoverState())
	}
	if c.Cover() != nil {
		t.Error("Cover() should be nil while pending")
	}

	close(release)
	c.WaitCover()

	if c.CoverState() != CoverSet {
		t.Errorf("cover state after probe.\nExpected: %v\nGot: %v", CoverSet, c.CoverState())
	}
}

func TestRemoveCoverDuringProbeDiscardsResult(t *testing.T) {
	release := make(chan struct{})
	c := NewController(&stubProber{release: release})

	if err := c.SubmitCoverURL(context.Background(), "https://example.com/cover.png"); err != nil {
		t.Fatalf("SubmitCoverURL returned error: %v", err)
	}
	c.RemoveCover()
	close(release)
	c.WaitCover()

	// The probe succeeded, but its result belongs to a removed candidate.
	if c.CoverState() != CoverEmpty {
		t.Errorf("cover state.\nExpected: %v\nGot: %v", CoverEmpty, c.CoverState())
	}
	if c.Cover() != nil {
		t.Error("Cover() should stay nil after removal")
	}
}

func TestRemoveCoverClearsError(t *testing.T) {
	c := NewController(&stubProber{})
	c.SubmitCoverURL(context.Background(), "https://example.com/paper.pdf")
	if c.CoverError() == "" {
		t.Fatal("expected a cover error before removal")
	}
	c.RemoveCover()
	if c.CoverError() != "" {
		t.Errorf("cover error after removal.\nExpected: empty\nGot: %q", c.CoverError())
	}
}

func TestSubmitCoverURLEmptyInput(t *testing.T) {
	c := NewController(&stubProber{})
	if err := c.SubmitCoverURL(context.Background(), "   "); err != nil {
		t.Fatalf("empty input should be a no-op, got error: %v", err)
	}
	if c.CoverState() != CoverEmpty {
		t.Errorf("cover state.\nExpected: %v\nGot: %v", CoverEmpty, c.CoverState())
	}
}

func TestFieldNormalizationAndCaps(t *testing.T) {
	c := NewController(&stubProber{})

	c.SetTitle("  my post title")
	if c.Title() != "My post title" {
		t.Errorf("title.\nExpected: %q\nGot: %q", "My post title", c.Title())
	}

	c.SetTitle(strings.Repeat("x", 200))
	if len([]rune(c.Title())) != MaxTitleLength {
		t.Errorf("title length cap.\nExpected: %d\nGot: %d", MaxTitleLength, len([]rune(c.Title())))
	}

	c.SetAuthor(strings.Repeat("a", 50))
	if len([]rune(c.Author())) != MaxAuthorLength {
		t.Errorf("author length cap.\nExpected: %d\nGot: %d", MaxAuthorLength, len([]rune(c.Author())))
	}

	c.SetContent(strings.Repeat("c", 20000))
	if len([]rune(c.Content())) != MaxContentLength {
		t.Errorf("content length cap.\nExpected: %d\nGot: %d", MaxContentLength, len([]rune(c.Content())))
	}
}

func TestExcerptAutoFollowsContent(t *testing.T) {
	c := NewController(&stubProber{})
	c.SetContent("some content here")

	want := utils.DeriveExcerpt("Some content here")
	if c.Excerpt() != want {
		t.Errorf("auto excerpt.\nExpected: %q\nGot: %q", want, c.Excerpt())
	}

	// Editing the excerpt directly has no effect in auto mode.
	c.SetExcerpt("ignored")
	if c.Excerpt() != want {
		t.Errorf("auto excerpt after SetExcerpt.\nExpected: %q\nGot: %q", want, c.Excerpt())
	}
}

func TestExcerptManualToAutoDiscardsText(t *testing.T) {
	c := NewController(&stubProber{})
	c.SetContent("the content")
	c.SetExcerptMode(ExcerptManual)
	c.SetExcerpt("custom text")

	if c.Excerpt() != "Custom text" {
		t.Fatalf("manual excerpt.\nExpected: %q\nGot: %q", "Custom text", c.Excerpt())
	}

	c.SetExcerptMode(ExcerptAuto)
	c.SetExcerptMode(ExcerptManual)

	// Leaving manual mode discarded the text; returning does not restore it.
	if c.Excerpt() != "" {
		t.Errorf("excerpt after mode round-trip.\nExpected: empty\nGot: %q", c.Excerpt())
	}
}

func TestLoadInfersExcerptMode(t *testing.T) {
	content := "Stored content for the post."

	auto := &models.Post{Title: "T", Author: "A", Content: content, Excerpt: utils.DeriveExcerpt(content)}
	c := NewController(&stubProber{})
	c.Load(auto)
	if c.ExcerptMode() != ExcerptAuto {
		t.Errorf("mode for derived excerpt.\nExpected: %v\nGot: %v", ExcerptAuto, c.ExcerptMode())
	}

	manual := &models.Post{Title: "T", Author: "A", Content: content, Excerpt: "A hand-written summary."}
	c = NewController(&stubProber{})
	c.Load(manual)
	if c.ExcerptMode() != ExcerptManual {
		t.Errorf("mode for custom excerpt.\nExpected: %v\nGot: %v", ExcerptManual, c.ExcerptMode())
	}
	if c.Excerpt() != "A hand-written summary." {
		t.Errorf("manual excerpt after load.\nExpected: %q\nGot: %q", "A hand-written summary.", c.Excerpt())
	}
}

func TestLoadRestoresCover(t *testing.T) {
	c := NewController(&stubProber{})
	c.Load(&models.Post{
		Title:   "T",
		Author:  "A",
		Content: "C",
		Cover:   &models.Cover{Kind: models.CoverImage, URL: "https://example.com/a.png"},
	})

	if c.CoverState() != CoverSet {
		t.Fatalf("cover state after load.\nExpected: %v\nGot: %v", CoverSet, c.CoverState())
	}
	if got := c.Cover().URL; got != "https://example.com/a.png" {
		t.Errorf("cover URL.\nExpected: %q\nGot: %q", "https://example.com/a.png", got)
	}
}

func TestRestoreCover(t *testing.T) {
	c := NewController(&stubProber{})

	c.RestoreCover(models.CoverVideo, "https://example.com/clip.mp4")
	if c.CoverState() != CoverSet {
		t.Fatalf("cover state.\nExpected: %v\nGot: %v", CoverSet, c.CoverState())
	}

	// Invalid kinds and empty URLs are ignored.
	c = NewController(&stubProber{})
	c.RestoreCover("banner", "https://example.com/a.png")
	if c.CoverState() != CoverEmpty {
		t.Errorf("cover state for unknown kind.\nExpected: %v\nGot: %v", CoverEmpty, c.CoverState())
	}
	c.RestoreCover(models.CoverImage, "  ")
	if c.CoverState() != CoverEmpty {
		t.Errorf("cover state for empty URL.\nExpected: %v\nGot: %v", CoverEmpty, c.CoverState())
	}
}

func TestValidate(t *testing.T) {
	c := NewController(&stubProber{})
	if err := c.Validate(); err == nil {
		t.Error("empty draft should not validate")
	}

	c.SetTitle("Title")
	c.SetAuthor("Author")
	c.SetContent("Content")
	if err := c.Validate(); err != nil {
		t.Errorf("complete draft failed validation: %v", err)
	}

	// A manual excerpt left blank blocks the save.
	c.SetExcerptMode(ExcerptManual)
	if err := c.Validate(); err == nil {
		t.Error("draft with blank manual excerpt should not validate")
	}
}

func TestPayload(t *testing.T) {
	c := NewController(&stubProber{})
	c.SetTitle("title")
	c.SetAuthor("author")
	c.SetContent("content")
	c.RestoreCover(models.CoverImage, "https://example.com/a.png")

	p := c.Payload()
	if p.Title != "Title" || p.Author != "Author" || p.Content != "Content" {
		t.Errorf("payload fields.\nGot: %+v", p)
	}
	if p.Excerpt != utils.DeriveExcerpt("Content") {
		t.Errorf("payload excerpt.\nExpected: %q\nGot: %q", utils.DeriveExcerpt("Content"), p.Excerpt)
	}
	if p.Cover == nil || p.Cover.Kind != models.CoverImage {
		t.Errorf("payload cover.\nGot: %+v", p.Cover)
	}
	if !p.ID.IsZero() || !p.Date.IsZero() {
		t.Error("payload must leave id and date unset")
	}
}

func TestWaitCoverNoProbe(t *testing.T) {
	c := NewController(&stubProber{})
	done := make(chan struct{})
	go func() {
		c.WaitCover()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitCover blocked with no probe in flight")
	}
}

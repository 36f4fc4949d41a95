// Package form drives the post create/edit flow: draft field state, excerpt
// derivation and the two-phase cover selection (classify, then verify).
package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"easyblog/internal/media"
	"easyblog/internal/models"
	"easyblog/internal/utils"
)

// Field length caps enforced at the form boundary.
const (
	MaxTitleLength   = 80
	MaxAuthorLength  = 30
	MaxContentLength = 10000
	MaxExcerptLength = 250
)

// CoverState is the cover-selection state of a draft.
type CoverState int

const (
	CoverEmpty   CoverState = iota // no cover set
	CoverPending                   // candidate classified, load probe in flight
	CoverSet                       // verified cover active
)

// ExcerptMode selects between a mechanically derived and a hand-written
// excerpt.
type ExcerptMode int

const (
	ExcerptAuto ExcerptMode = iota
	ExcerptManual
)

// ErrUnsupportedURL is returned when a candidate cover URL matches neither a
// YouTube host nor a recognized media extension.
var ErrUnsupportedURL = errors.New("form: unsupported cover URL")

// User-facing messages. Classification failures ("bad format") and probe
// failures ("bad resource") surface as distinct messages.
const (
	MsgInvalidYouTube  = "Invalid YouTube URL."
	MsgUnsupportedURL  = "URL is not a supported image or video format."
	MsgImageLoadFailed = "Could not load the image."
	MsgVideoLoadFailed = "Could not load the video."
)

// Controller holds the draft state for one post being created or edited.
// Cover verification runs asynchronously; all state transitions are
// serialized behind the mutex.
type Controller struct {
	mu     sync.Mutex
	prober media.Prober

	title   string
	author  string
	content string
	excerpt string // manual excerpt text; unused in auto mode
	mode    ExcerptMode

	coverState CoverState
	cover      *models.Cover
	coverErr   string
	probeGen   int           // bumped on removal so stale probe results are discarded
	probeDone  chan struct{} // closed when the in-flight probe settles
}

func NewController(prober media.Prober) *Controller {
	return &Controller{prober: prober}
}

// Load seeds the controller from an existing post. The excerpt mode is
// inferred: auto when the stored excerpt is exactly what auto-derivation
// would produce from the stored content, manual otherwise. An author-written
// excerpt that coincides with the derived text is indistinguishable from an
// auto one; that ambiguity is accepted.
func (c *Controller) Load(p *models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.title = p.Title
	c.author = p.Author
	c.content = p.Content
	if p.Excerpt == "" || p.Excerpt == utils.DeriveExcerpt(p.Content) {
		c.mode = ExcerptAuto
		c.excerpt = ""
	} else {
		c.mode = ExcerptManual
		c.excerpt = p.Excerpt
	}
	if p.Cover != nil {
		cover := *p.Cover
		c.cover = &cover
		c.coverState = CoverSet
	} else {
		c.cover = nil
		c.coverState = CoverEmpty
	}
	c.coverErr = ""
}

func (c *Controller) SetTitle(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title = utils.TruncateRunes(utils.NormalizeEditInput(s), MaxTitleLength)
}

func (c *Controller) SetAuthor(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.author = utils.TruncateRunes(utils.NormalizeEditInput(s), MaxAuthorLength)
}

func (c *Controller) SetContent(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = utils.TruncateRunes(utils.NormalizeEditInput(s), MaxContentLength)
}

// SetExcerpt sets the manual excerpt text. In auto mode the excerpt is not
// independently editable and the call is a no-op.
func (c *Controller) SetExcerpt(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ExcerptManual {
		return
	}
	c.excerpt = utils.TruncateRunes(utils.NormalizeEditInput(s), MaxExcerptLength)
}

// SetExcerptMode switches between auto and manual. Switching away from
// manual discards the manual text irrecoverably.
func (c *Controller) SetExcerptMode(mode ExcerptMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if mode == c.mode {
		return
	}
	if mode == ExcerptAuto {
		c.excerpt = ""
	}
	c.mode = mode
}

func (c *Controller) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

func (c *Controller) Author() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.author
}

func (c *Controller) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

func (c *Controller) ExcerptMode() ExcerptMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Excerpt returns the excerpt the draft would be saved with: derived live
// from the content in auto mode, the manual text otherwise.
func (c *Controller) Excerpt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ExcerptAuto {
		return utils.DeriveExcerpt(strings.TrimSpace(c.content))
	}
	return strings.TrimSpace(c.excerpt)
}

// SubmitCoverURL runs the classification phase on a candidate URL. An
// unsupported or malformed URL surfaces a validation message and leaves the
// state at empty. A YouTube match is trusted immediately and moves straight
// to set. Image and video matches enter pending and are verified by an
// asynchronous load probe; WaitCover blocks until that settles.
func (c *Controller) SubmitCoverURL(ctx context.Context, raw string) error {
	url := strings.TrimSpace(raw)
	if url == "" {
		return nil
	}

	cls, err := media.Classify(url)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.coverErr = MsgInvalidYouTube
		return err
	}

	switch cls.Kind {
	case media.KindYouTube:
		c.cover = &models.Cover{Kind: models.CoverVideo, URL: cls.URL}
		c.coverState = CoverSet
		c.coverErr = ""
	case media.KindImage, media.KindVideo:
		c.coverState = CoverPending
		c.cover = nil
		c.coverErr = ""
		c.probeGen++
		done := make(chan struct{})
		c.probeDone = done
		go c.verify(ctx, c.probeGen, cls, done)
	default:
		c.coverErr = MsgUnsupportedURL
		return ErrUnsupportedURL
	}
	return nil
}

func (c *Controller) verify(ctx context.Context, gen int, cls media.Classification, done chan struct{}) {
	err := c.prober.Probe(ctx, cls.Kind, cls.URL)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(done)

	// The cover was removed (or resubmitted) while the probe was in flight;
	// this result no longer applies.
	if gen != c.probeGen || c.coverState != CoverPending {
		return
	}

	if err != nil {
		c.coverState = CoverEmpty
		c.cover = nil
		if cls.Kind == media.KindImage {
			c.coverErr = MsgImageLoadFailed
		} else {
			c.coverErr = MsgVideoLoadFailed
		}
		return
	}

	kind := models.CoverImage
	if cls.Kind == media.KindVideo {
		kind = models.CoverVideo
	}
	c.cover = &models.Cover{Kind: kind, URL: cls.URL}
	c.coverState = CoverSet
	c.coverErr = ""
}

// WaitCover blocks until any in-flight load probe has settled.
func (c *Controller) WaitCover() {
	c.mu.Lock()
	done := c.probeDone
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// RestoreCover reinstates an already-verified cover, e.g. when draft state
// round-trips through a form submission. No probe is performed.
func (c *Controller) RestoreCover(kind models.CoverKind, url string) {
	url = strings.TrimSpace(url)
	if url == "" || (kind != models.CoverImage && kind != models.CoverVideo) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cover = &models.Cover{Kind: kind, URL: url}
	c.coverState = CoverSet
	c.coverErr = ""
}

// RemoveCover clears the active or pending cover along with any error
// message.
func (c *Controller) RemoveCover() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probeGen++
	c.coverState = CoverEmpty
	c.cover = nil
	c.coverErr = ""
}

func (c *Controller) CoverState() CoverState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coverState
}

// Cover returns the verified cover, or nil when none is set.
func (c *Controller) Cover() *models.Cover {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.coverState != CoverSet || c.cover == nil {
		return nil
	}
	cover := *c.cover
	return &cover
}

func (c *Controller) CoverError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coverErr
}

// Validate enforces the populated-before-persist invariant: a finished post
// always has title, author, content and excerpt.
func (c *Controller) Validate() error {
	if strings.TrimSpace(c.Title()) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(c.Author()) == "" {
		return errors.New("author is required")
	}
	if strings.TrimSpace(c.Content()) == "" {
		return errors.New("content is required")
	}
	if c.Excerpt() == "" {
		return errors.New("excerpt is required")
	}
	return nil
}

// Payload builds the normalized post this draft would submit. ID and date
// are left unset; the server assigns both.
func (c *Controller) Payload() models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()

	content := strings.TrimSpace(c.content)
	excerpt := strings.TrimSpace(c.excerpt)
	if c.mode == ExcerptAuto {
		excerpt = utils.DeriveExcerpt(content)
	}

	p := models.Post{
		Title:   strings.TrimSpace(c.title),
		Author:  strings.TrimSpace(c.author),
		Content: content,
		Excerpt: excerpt,
	}
	if c.coverState == CoverSet && c.cover != nil {
		cover := *c.cover
		p.Cover = &cover
	}
	return p
}

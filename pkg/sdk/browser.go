package labdex

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Messages shown to the user when a fetch fails.
const (
	MsgOrganisationsFailed = "Failed to fetch organisations."
	MsgSamplesFailed       = "Failed to fetch data. Please try again."
)

// Source is the data the Browser reads. *Client implements it.
type Source interface {
	Organisations(ctx context.Context) ([]Organisation, error)
	Samples(ctx context.Context, orgID string, q *Query) (*Document, error)
}

var _ Source = (*Client)(nil)

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithDebounce sets the search quiet period. Defaults to 300ms.
func WithDebounce(d time.Duration) BrowserOption {
	return func(b *Browser) { b.delay = d }
}

// WithOnChange registers a callback invoked with a fresh Snapshot after every state change.
// It may be called from the debounce timer goroutine.
func WithOnChange(fn func(Snapshot)) BrowserOption {
	return func(b *Browser) { b.onChange = fn }
}

// WithBrowserLogger enables debug logging of selection and search changes.
func WithBrowserLogger(l *slog.Logger) BrowserOption {
	return func(b *Browser) { b.logger = l }
}

// Browser holds the state of the sample table: the organisation list, the selected
// organisation's samples, the committed search and the current page.
//
// Every sample fetch is tagged with a token; a response is applied only while its
// token is still the latest, so a slow answer for a previous selection never
// overwrites the current one.
type Browser struct {
	src      Source
	delay    time.Duration
	onChange func(Snapshot)
	logger   *slog.Logger
	search   *Debouncer

	mu       sync.Mutex
	orgs     []Organisation
	selected Organisation
	patients []Patient
	input    string
	query    string
	page     int
	loading  bool
	errMsg   string
	token    uint64
}

// NewBrowser creates a Browser reading from src.
func NewBrowser(src Source, opts ...BrowserOption) *Browser {
	b := &Browser{
		src:   src,
		delay: DefaultDebounce,
		page:  1,
	}
	for _, o := range opts {
		o(b)
	}
	b.search = NewDebouncer(b.delay, b.commitSearch)
	return b
}

// Load fetches the organisation list and selects the first organisation.
func (b *Browser) Load(ctx context.Context) error {
	orgs, err := b.src.Organisations(ctx)
	if err != nil {
		b.mu.Lock()
		b.errMsg = MsgOrganisationsFailed
		b.mu.Unlock()
		b.notify()
		return fmt.Errorf("load organisations: %w", err)
	}

	b.mu.Lock()
	b.orgs = orgs
	b.mu.Unlock()

	if len(orgs) == 0 {
		b.notify()
		return nil
	}
	return b.SelectOrganisation(ctx, orgs[0].ID)
}

// SelectOrganisation switches to org id, resets the page and fetches its samples.
// A response that arrives after a newer selection is discarded and nil is returned.
func (b *Browser) SelectOrganisation(ctx context.Context, id string) error {
	b.mu.Lock()
	i := slices.IndexFunc(b.orgs, func(o Organisation) bool { return o.ID == id })
	if i < 0 {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownOrganisation, id)
	}
	org := b.orgs[i]
	b.token++
	token := b.token
	b.selected = org
	b.patients = nil
	b.page = 1
	b.loading = true
	b.errMsg = ""
	b.mu.Unlock()
	b.notify()

	doc, err := b.src.Samples(ctx, org.ID, nil)

	b.mu.Lock()
	if token != b.token {
		b.mu.Unlock()
		b.debug("stale response dropped", "org", org.ID, "token", token)
		return nil
	}
	b.loading = false
	if err != nil {
		b.errMsg = MsgSamplesFailed
		b.mu.Unlock()
		b.notify()
		return fmt.Errorf("fetch samples of %s: %w", org.ID, err)
	}
	b.patients = Enrich(doc, org)
	b.mu.Unlock()

	b.debug("samples loaded", "org", org.ID, "count", len(doc.Data))
	b.notify()
	return nil
}

// SetSearch records raw search input. Filtering follows once the input has been quiet
// for the debounce period.
func (b *Browser) SetSearch(input string) {
	b.mu.Lock()
	b.input = input
	b.mu.Unlock()

	b.search.Set(input)
	b.notify()
}

// FlushSearch commits pending search input without waiting.
func (b *Browser) FlushSearch() {
	b.search.Flush()
}

func (b *Browser) commitSearch(v string) {
	b.mu.Lock()
	if v == b.query {
		b.mu.Unlock()
		return
	}
	b.query = v
	b.page = 1
	b.mu.Unlock()

	b.debug("search committed", "query", v)
	b.notify()
}

// NextPage advances one page, stopping at the last page.
func (b *Browser) NextPage() {
	b.mu.Lock()
	total := TotalPages(len(b.filteredLocked()))
	moved := b.page < total
	if moved {
		b.page++
	}
	b.mu.Unlock()

	if moved {
		b.notify()
	}
}

// PrevPage goes back one page, stopping at page 1.
func (b *Browser) PrevPage() {
	b.mu.Lock()
	moved := b.page > 1
	if moved {
		b.page--
	}
	b.mu.Unlock()

	if moved {
		b.notify()
	}
}

// Close discards pending search input.
func (b *Browser) Close() {
	b.search.Stop()
}

// Snapshot is a consistent view of the Browser for rendering.
type Snapshot struct {
	Organisations []Organisation
	Selected      Organisation
	Loading       bool
	Error         string

	Search      string
	Placeholder string

	Columns    []Column
	Rows       []Patient
	Page       int
	TotalPages int
	Matched    int
	Loaded     int

	Summary   string
	PageLabel string
}

// Snapshot returns the current state.
func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	filtered := b.filteredLocked()
	rows := Paginate(filtered, b.page)
	total := TotalPages(len(filtered))
	return Snapshot{
		Organisations: slices.Clone(b.orgs),
		Selected:      b.selected,
		Loading:       b.loading,
		Error:         b.errMsg,
		Search:        b.input,
		Placeholder:   Placeholder(b.selected),
		Columns:       Columns(b.selected),
		Rows:          slices.Clone(rows),
		Page:          b.page,
		TotalPages:    total,
		Matched:       len(filtered),
		Loaded:        len(b.patients),
		Summary:       Summary(len(rows), len(filtered)),
		PageLabel:     PageLabel(b.page, total),
	}
}

func (b *Browser) filteredLocked() []Patient {
	return Filter(b.patients, Tokenize(b.query))
}

func (b *Browser) notify() {
	if b.onChange != nil {
		b.onChange(b.Snapshot())
	}
}

func (b *Browser) debug(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}

package labdex

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// --- Mocks ---

type fakeSource struct {
	mu      sync.Mutex
	orgs    []Organisation
	orgsErr error
	docs    map[string]*Document
	errs    map[string]error
	gates   map[string]chan struct{}
	started chan string
	calls   []string
}

func (f *fakeSource) Organisations(_ context.Context) ([]Organisation, error) {
	return f.orgs, f.orgsErr
}

func (f *fakeSource) Samples(ctx context.Context, orgID string, q *Query) (*Document, error) {
	f.mu.Lock()
	f.calls = append(f.calls, orgID)
	gate := f.gates[orgID]
	f.mu.Unlock()

	if q != nil {
		return nil, fmt.Errorf("browser must fetch unpaginated, got %+v", q)
	}
	if f.started != nil {
		f.started <- orgID
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.errs[orgID]; err != nil {
		return nil, err
	}
	return f.docs[orgID], nil
}

func manySamples(n int, profileID, name string) *Document {
	doc := &Document{Included: []Profile{testProfile(profileID, name)}}
	for i := 0; i < n; i++ {
		result := "negative"
		if i%2 == 1 {
			result = "positive"
		}
		doc.Data = append(doc.Data, testSample(
			fmt.Sprintf("%s-r%02d", profileID, i), profileID, fmt.Sprintf("S%03d", i), result, "rtpcr"))
	}
	return doc
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		orgs: []Organisation{circle(), prenetics()},
		docs: map[string]*Document{
			"c1": manySamples(32, "p-peter", "Peter Chan"),
			"p1": manySamples(4, "p-bruce", "Bruce Lee"),
		},
	}
}

func TestBrowser_LoadSelectsFirstOrganisation(t *testing.T) {
	src := newFakeSource()
	b := NewBrowser(src)
	defer b.Close()

	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := b.Snapshot()
	if s.Selected.ID != "c1" {
		t.Errorf("selected = %q, want c1", s.Selected.ID)
	}
	if s.Loading || s.Error != "" {
		t.Errorf("loading=%v error=%q", s.Loading, s.Error)
	}
	if len(s.Organisations) != 2 {
		t.Errorf("organisations = %d, want 2", len(s.Organisations))
	}
	if len(s.Columns) != 7 {
		t.Errorf("columns = %d, want 7 for Circle", len(s.Columns))
	}
	if s.Placeholder != "Patient ID, name, barcode, date, etc." {
		t.Errorf("placeholder = %q", s.Placeholder)
	}
	if len(s.Rows) != 15 || s.TotalPages != 3 || s.Page != 1 {
		t.Errorf("rows=%d pages=%d page=%d, want 15/3/1", len(s.Rows), s.TotalPages, s.Page)
	}
	if s.Summary != "Showing 15 of 32 results" || s.PageLabel != "Page 1 of 3" {
		t.Errorf("summary=%q label=%q", s.Summary, s.PageLabel)
	}
}

func TestBrowser_Paging(t *testing.T) {
	b := NewBrowser(newFakeSource())
	defer b.Close()
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	b.PrevPage()
	if got := b.Snapshot().Page; got != 1 {
		t.Errorf("PrevPage on first page: page = %d, want 1", got)
	}

	b.NextPage()
	b.NextPage()
	b.NextPage()
	s := b.Snapshot()
	if s.Page != 3 {
		t.Errorf("page = %d, want 3 (clamped)", s.Page)
	}
	if len(s.Rows) != 2 || s.Summary != "Showing 2 of 32 results" {
		t.Errorf("rows=%d summary=%q", len(s.Rows), s.Summary)
	}

	b.PrevPage()
	if got := b.Snapshot().Page; got != 2 {
		t.Errorf("page = %d, want 2", got)
	}
}

func TestBrowser_SearchIsDebouncedAndResetsPage(t *testing.T) {
	changes := make(chan Snapshot, 64)
	b := NewBrowser(newFakeSource(),
		WithDebounce(100*time.Millisecond),
		WithOnChange(func(s Snapshot) { changes <- s }),
	)
	defer b.Close()
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	b.NextPage()

	b.SetSearch("chan;POS")
	s := b.Snapshot()
	if s.Search != "chan;POS" {
		t.Errorf("raw input = %q", s.Search)
	}
	if s.Matched != 32 || s.Page != 2 {
		t.Errorf("before commit: matched=%d page=%d, want 32/2", s.Matched, s.Page)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case s = <-changes:
		case <-deadline:
			t.Fatal("search was never committed")
		}
		if s.Matched == 16 {
			break
		}
	}
	if s.Page != 1 || s.TotalPages != 2 {
		t.Errorf("after commit: page=%d pages=%d, want 1/2", s.Page, s.TotalPages)
	}
	for _, row := range s.Rows {
		if row.Result != "positive" {
			t.Errorf("row %s result = %q, want positive", row.SampleID, row.Result)
		}
	}
}

func TestBrowser_FlushSearch(t *testing.T) {
	b := NewBrowser(newFakeSource(), WithDebounce(time.Hour))
	defer b.Close()
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	b.SetSearch("S031")
	b.FlushSearch()

	s := b.Snapshot()
	if s.Matched != 1 || len(s.Rows) != 1 || s.Rows[0].SampleID != "S031" {
		t.Errorf("matched=%d rows=%+v", s.Matched, s.Rows)
	}
	if s.Summary != "Showing 1 of 1 results" {
		t.Errorf("summary = %q", s.Summary)
	}
}

func TestBrowser_SelectResetsPageAndColumns(t *testing.T) {
	b := NewBrowser(newFakeSource())
	defer b.Close()
	ctx := context.Background()
	if err := b.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	b.NextPage()

	if err := b.SelectOrganisation(ctx, "p1"); err != nil {
		t.Fatalf("SelectOrganisation: %v", err)
	}
	s := b.Snapshot()
	if s.Page != 1 || s.Matched != 4 {
		t.Errorf("page=%d matched=%d, want 1/4", s.Page, s.Matched)
	}
	if len(s.Columns) != 5 || s.Placeholder != "name, barcode, date, etc." {
		t.Errorf("columns=%d placeholder=%q", len(s.Columns), s.Placeholder)
	}
	for _, row := range s.Rows {
		if row.Extended || row.ID != "" {
			t.Errorf("row %+v exposes extended fields", row)
		}
	}
}

func TestBrowser_UnknownOrganisation(t *testing.T) {
	b := NewBrowser(newFakeSource())
	defer b.Close()
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	err := b.SelectOrganisation(context.Background(), "nope")
	if !errors.Is(err, ErrUnknownOrganisation) {
		t.Errorf("err = %v, want ErrUnknownOrganisation", err)
	}
	if got := b.Snapshot().Selected.ID; got != "c1" {
		t.Errorf("selection changed to %q", got)
	}
}

func TestBrowser_OrganisationsFailure(t *testing.T) {
	src := newFakeSource()
	src.orgsErr = errors.New("connection refused")
	b := NewBrowser(src)
	defer b.Close()

	if err := b.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	s := b.Snapshot()
	if s.Error != MsgOrganisationsFailed {
		t.Errorf("error = %q, want %q", s.Error, MsgOrganisationsFailed)
	}
	if len(src.calls) != 0 {
		t.Errorf("samples fetched without organisations: %v", src.calls)
	}
}

func TestBrowser_SamplesFailure(t *testing.T) {
	src := newFakeSource()
	src.errs = map[string]error{"c1": errors.New("boom")}
	b := NewBrowser(src)
	defer b.Close()

	if err := b.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	s := b.Snapshot()
	if s.Error != MsgSamplesFailed {
		t.Errorf("error = %q, want %q", s.Error, MsgSamplesFailed)
	}
	if s.Loading {
		t.Error("loading must be cleared after a failure")
	}
	if len(src.calls) != 1 {
		t.Errorf("calls = %v, want a single attempt", src.calls)
	}
}

func TestBrowser_EmptyOrganisationList(t *testing.T) {
	src := newFakeSource()
	src.orgs = nil
	b := NewBrowser(src)
	defer b.Close()

	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := b.Snapshot()
	if s.Selected.ID != "" || len(s.Rows) != 0 || s.Summary != "Showing 0 of 0 results" {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestBrowser_StaleResponseDropped(t *testing.T) {
	src := newFakeSource()
	src.gates = map[string]chan struct{}{"c1": make(chan struct{})}
	src.started = make(chan string, 4)
	b := NewBrowser(src)
	defer b.Close()

	// Populate the organisation list without fetching.
	b.orgs = src.orgs

	ctx := context.Background()
	slow := make(chan error, 1)
	go func() { slow <- b.SelectOrganisation(ctx, "c1") }()

	if got := <-src.started; got != "c1" {
		t.Fatalf("first fetch = %q, want c1", got)
	}
	if !b.Snapshot().Loading {
		t.Error("loading must be set while the fetch is in flight")
	}

	if err := b.SelectOrganisation(ctx, "p1"); err != nil {
		t.Fatalf("SelectOrganisation(p1): %v", err)
	}
	<-src.started

	close(src.gates["c1"])
	if err := <-slow; err != nil {
		t.Fatalf("stale fetch returned error: %v", err)
	}

	s := b.Snapshot()
	if s.Selected.ID != "p1" {
		t.Errorf("selected = %q, want p1", s.Selected.ID)
	}
	if s.Matched != 4 || s.Rows[0].Name != "Bruce Lee" {
		t.Errorf("stale Circle data applied: matched=%d first=%+v", s.Matched, s.Rows[0])
	}
}

package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/domain/organisation"
	"github.com/kailas-cloud/labdex/internal/domain/sample"
	"github.com/kailas-cloud/labdex/internal/domain/search/filter"
	"github.com/kailas-cloud/labdex/internal/domain/search/params"
)

// --- Mocks ---

type mockExecutor struct {
	rows     []sample.Result
	countErr error
	fetchErr error

	calls      []string
	lastExpr   filter.Expression
	lastOffset int
	lastLimit  int
}

func (m *mockExecutor) Count(_ context.Context, expr filter.Expression) (int, error) {
	m.calls = append(m.calls, "count")
	m.lastExpr = expr
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.rows), nil
}

func (m *mockExecutor) FetchPage(
	_ context.Context, expr filter.Expression, offset, limit int,
) ([]sample.Result, error) {
	m.calls = append(m.calls, "page")
	m.lastExpr = expr
	m.lastOffset = offset
	m.lastLimit = limit
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if offset >= len(m.rows) {
		return nil, nil
	}
	return m.rows[offset:min(offset+limit, len(m.rows))], nil
}

func (m *mockExecutor) FetchAll(_ context.Context, expr filter.Expression) ([]sample.Result, error) {
	m.calls = append(m.calls, "all")
	m.lastExpr = expr
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.rows, nil
}

type mockOrgs struct {
	orgs map[string]organisation.Organisation
}

func (m *mockOrgs) Get(_ context.Context, id string) (organisation.Organisation, error) {
	org, ok := m.orgs[id]
	if !ok {
		return organisation.Organisation{}, domain.ErrOrganisationNotFound
	}
	return org, nil
}

func defaultOrgs() *mockOrgs {
	return &mockOrgs{orgs: map[string]organisation.Organisation{
		"1": organisation.New("1", "Circle"),
		"2": organisation.New("2", "Prenetics"),
	}}
}

func makeRows(n int) []sample.Result {
	rows := make([]sample.Result, n)
	for i := range rows {
		p := sample.NewProfile(fmt.Sprintf("p%d", i%3), fmt.Sprintf("Patient %d", i%3))
		rows[i] = sample.Reconstruct(
			fmt.Sprintf("r%02d", i), "negative", fmt.Sprintf("S%02d", i), "PCR",
			"2024-01-01 10:00:00", "2024-01-02 10:00:00", p,
		)
	}
	return rows
}

func mustParse(t *testing.T, raw params.Raw) params.Params {
	t.Helper()
	p, err := params.Parse(raw)
	if err != nil {
		t.Fatalf("parse params: %v", err)
	}
	return p
}

func ptr(s string) *string { return &s }

// --- Tests ---

func TestSearch_Unpaginated(t *testing.T) {
	exec := &mockExecutor{rows: makeRows(20)}
	svc := New(exec, defaultOrgs())

	env, err := svc.Search(context.Background(), "2", params.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(exec.calls, ",") != "all" {
		t.Errorf("calls = %v, want [all]", exec.calls)
	}
	if env.Meta.Total != 20 {
		t.Errorf("total = %d, want 20", env.Meta.Total)
	}
	if env.Meta.CurrentPage != nil || env.Meta.TotalPages != nil || env.Meta.CurrentPageItems != nil {
		t.Errorf("unpaginated meta should carry only total, got %+v", env.Meta)
	}
	if len(env.Data) != 20 {
		t.Errorf("data len = %d, want 20", len(env.Data))
	}
	if len(env.Included) != 3 {
		t.Errorf("included len = %d, want 3", len(env.Included))
	}
}

func TestSearch_PaginatedLastPage(t *testing.T) {
	exec := &mockExecutor{rows: makeRows(25)}
	svc := New(exec, defaultOrgs())

	env, err := svc.Search(context.Background(), "2", mustParse(t, params.Raw{Page: ptr("2")}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(exec.calls, ",") != "count,page" {
		t.Errorf("calls = %v, want [count page]", exec.calls)
	}
	if exec.lastOffset != 15 || exec.lastLimit != 15 {
		t.Errorf("window = (%d, %d), want (15, 15)", exec.lastOffset, exec.lastLimit)
	}
	if *env.Meta.CurrentPage != 2 || *env.Meta.TotalPages != 2 || *env.Meta.CurrentPageItems != 10 {
		t.Errorf("meta = %d/%d items %d, want 2/2 items 10",
			*env.Meta.CurrentPage, *env.Meta.TotalPages, *env.Meta.CurrentPageItems)
	}
	if len(env.Data) != 10 {
		t.Errorf("data len = %d, want 10", len(env.Data))
	}
	if env.Data[0].ID != "r15" {
		t.Errorf("first id = %q, want r15", env.Data[0].ID)
	}
}

func TestSearch_FullPage(t *testing.T) {
	exec := &mockExecutor{rows: makeRows(30)}
	svc := New(exec, defaultOrgs())

	env, err := svc.Search(context.Background(), "2", mustParse(t, params.Raw{Page: ptr("2")}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *env.Meta.CurrentPageItems != 15 {
		t.Errorf("currentPageItems = %d, want 15", *env.Meta.CurrentPageItems)
	}
}

func TestSearch_PageBeyondEnd_SkipsFetch(t *testing.T) {
	exec := &mockExecutor{rows: makeRows(5)}
	svc := New(exec, defaultOrgs())

	env, err := svc.Search(context.Background(), "2", mustParse(t, params.Raw{Page: ptr("3")}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(exec.calls, ",") != "count" {
		t.Errorf("calls = %v, want [count]", exec.calls)
	}
	if env.Data == nil || len(env.Data) != 0 {
		t.Errorf("data = %v, want empty non-nil slice", env.Data)
	}
	if *env.Meta.CurrentPageItems != 0 || *env.Meta.TotalPages != 1 {
		t.Errorf("meta = %+v, want 0 items over 1 page", env.Meta)
	}
}

func TestSearch_ExecutorOverreturn_Truncated(t *testing.T) {
	exec := &overreturn{mockExecutor{rows: makeRows(40)}}
	svc := New(exec, defaultOrgs())

	env, err := svc.Search(context.Background(), "2", mustParse(t, params.Raw{Page: ptr("1")}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Data) != 15 {
		t.Errorf("data len = %d, want 15", len(env.Data))
	}
}

type overreturn struct{ mockExecutor }

func (o *overreturn) FetchPage(
	_ context.Context, _ filter.Expression, _, _ int,
) ([]sample.Result, error) {
	return o.rows, nil
}

func TestSearch_ExtendedFieldsOrganisation(t *testing.T) {
	exec := &mockExecutor{rows: makeRows(1)}
	svc := New(exec, defaultOrgs())

	env, err := svc.Search(context.Background(), "1", params.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attrs := env.Data[0].Attributes
	if attrs.ResultType == nil || *attrs.ResultType != "PCR" {
		t.Errorf("resultType = %v, want PCR", attrs.ResultType)
	}
	if attrs.PatientID == nil || *attrs.PatientID != "p0" {
		t.Errorf("patientId = %v, want p0", attrs.PatientID)
	}
}

func TestSearch_StandardOrganisationHidesExtendedFields(t *testing.T) {
	exec := &mockExecutor{rows: makeRows(1)}
	svc := New(exec, defaultOrgs())

	env, err := svc.Search(context.Background(), "2", params.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attrs := env.Data[0].Attributes
	if attrs.ResultType != nil || attrs.PatientID != nil {
		t.Errorf("expected extended fields absent, got %+v", attrs)
	}
}

func TestSearch_ScopesFilterToOrganisation(t *testing.T) {
	exec := &mockExecutor{}
	svc := New(exec, defaultOrgs())

	p := mustParse(t, params.Raw{PatientName: ptr("lee"), PatientID: ptr("p1")})
	if _, err := svc.Search(context.Background(), "1", p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.lastExpr.OrganisationID() != "1" {
		t.Errorf("organisation scope = %q, want 1", exec.lastExpr.OrganisationID())
	}
	preds := exec.lastExpr.Predicates()
	if len(preds) != 2 {
		t.Fatalf("predicates = %d, want 2", len(preds))
	}
	if preds[0].Field() != filter.ProfileName || preds[1].Field() != filter.ProfileID {
		t.Errorf("predicate order = %s, %s", preds[0].Field(), preds[1].Field())
	}
}

func TestSearch_UnknownOrganisation(t *testing.T) {
	exec := &mockExecutor{rows: makeRows(3)}
	svc := New(exec, defaultOrgs())

	_, err := svc.Search(context.Background(), "99", params.Params{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(exec.calls) != 0 {
		t.Errorf("executor should not be called, got %v", exec.calls)
	}
}

func TestSearch_ExecutorErrorsPropagate(t *testing.T) {
	tests := []struct {
		name string
		exec *mockExecutor
		raw  params.Raw
	}{
		{"count", &mockExecutor{rows: makeRows(3), countErr: domain.ErrQueryFailed}, params.Raw{Page: ptr("1")}},
		{"page", &mockExecutor{rows: makeRows(3), fetchErr: domain.ErrQueryFailed}, params.Raw{Page: ptr("1")}},
		{"all", &mockExecutor{rows: makeRows(3), fetchErr: domain.ErrQueryFailed}, params.Raw{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(tt.exec, defaultOrgs())
			_, err := svc.Search(context.Background(), "2", mustParse(t, tt.raw))
			if !errors.Is(err, domain.ErrQueryFailed) {
				t.Fatalf("expected ErrQueryFailed, got %v", err)
			}
		})
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	labdex "github.com/kailas-cloud/labdex/pkg/sdk"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	orgs := map[string]any{"data": []map[string]any{
		{"id": "c1", "type": "organisation", "attributes": map[string]string{"name": "Circle"}},
		{"id": "p1", "type": "organisation", "attributes": map[string]string{"name": "Prenetics"}},
	}}

	var samples []map[string]any
	for i, r := range []string{"negative", "positive", "negative"} {
		samples = append(samples, map[string]any{
			"id":   "r" + string(rune('1'+i)),
			"type": "sample",
			"attributes": map[string]any{
				"result":       r,
				"sampleId":     "S00" + string(rune('1'+i)),
				"resultType":   "rtpcr",
				"activateTime": "2024-03-01 09:00:00",
				"resultTime":   "2024-03-02 12:30:00",
			},
			"relationships": map[string]any{
				"profile": map[string]any{"data": map[string]string{"type": "profile", "id": "p-peter"}},
			},
		})
	}
	doc := map[string]any{
		"meta": map[string]any{"total": 3, "currentPage": nil, "totalPages": nil},
		"data": samples,
		"included": []map[string]any{
			{"type": "profile", "id": "p-peter", "attributes": map[string]string{"name": "Peter Chan"}},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /test/v1.0/org", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(orgs)
	})
	mux.HandleFunc("GET /test/v1.0/org/{orgId}/sample", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestCtl(t *testing.T, addr string) *ctl {
	t.Helper()
	client, err := labdex.New(addr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &ctl{client: client, logger: slog.New(slog.DiscardHandler)}
}

func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v\n%s", err, out.String())
	}
	return out.String()
}

func TestOrgsCmd(t *testing.T) {
	c := newTestCtl(t, fakeAPI(t).URL)
	out := run(t, newOrgsCmd(c), "")

	for _, want := range []string{"ID", "Circle", "Prenetics", "true", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSamplesCmd_ByName(t *testing.T) {
	c := newTestCtl(t, fakeAPI(t).URL)
	out := run(t, newSamplesCmd(c), "", "Circle")

	for _, want := range []string{"Patient Name", "Patient ID", "Peter Chan", "S003", "3 results"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSamplesCmd_UnknownOrganisation(t *testing.T) {
	c := newTestCtl(t, fakeAPI(t).URL)
	cmd := newSamplesCmd(c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"Nobody"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected error for unknown organisation")
	}
}

func TestBrowseCmd(t *testing.T) {
	c := newTestCtl(t, fakeAPI(t).URL)
	out := run(t, newBrowseCmd(c), "positive\n:o p1\n:q\n")

	if !strings.Contains(out, "Showing 1 of 1 results") {
		t.Errorf("search was not applied:\n%s", out)
	}
	if !strings.Contains(out, "Organisation: Prenetics") {
		t.Errorf("organisation switch not rendered:\n%s", out)
	}
	if !strings.Contains(out, "Patient ID, name, barcode, date, etc.") {
		t.Errorf("Circle placeholder missing:\n%s", out)
	}
}

func TestRenderRows_Alignment(t *testing.T) {
	var buf bytes.Buffer
	cols := []labdex.Column{{Key: labdex.ColumnName, Header: "Patient Name"}, {Key: labdex.ColumnResult, Header: "Result Value"}}
	rows := []labdex.Patient{{Name: "Al", Result: "negative"}}
	if err := renderRows(&buf, cols, rows); err != nil {
		t.Fatalf("renderRows: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if strings.Index(lines[0], "Result Value") != strings.Index(lines[1], "negative") {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

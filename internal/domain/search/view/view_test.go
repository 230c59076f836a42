package view

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/kailas-cloud/labdex/internal/domain/organisation"
	"github.com/kailas-cloud/labdex/internal/domain/sample"
	"github.com/kailas-cloud/labdex/internal/domain/search/page"
)

var (
	circle    = organisation.New("123", "Circle")
	nonCircle = organisation.New("456", "non-Circle")
)

func makeResult(id, profileID string) sample.Result {
	return sample.Reconstruct(
		id, "positive", "sample-123", "PCR",
		"2023-01-01T00:00:00.000Z", "2023-01-02T00:00:00.000Z",
		sample.NewProfile(profileID, "John Doe"),
	)
}

func attributeKeys(t *testing.T, s Sample) map[string]any {
	t.Helper()
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc struct {
		Attributes map[string]any `json:"attributes"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return doc.Attributes
}

func TestProject_BaseFields(t *testing.T) {
	s := Project(makeResult("result-1", "profile-1"), nonCircle)

	if s.ID != "result-1" || s.Type != TypeSample {
		t.Errorf("id/type = %q/%q", s.ID, s.Type)
	}
	if s.Attributes.Result != "positive" || s.Attributes.SampleID != "sample-123" {
		t.Errorf("unexpected attributes %+v", s.Attributes)
	}
	if s.Attributes.ActivateTime != "2023-01-01T00:00:00.000Z" {
		t.Errorf("activateTime must be copied verbatim, got %q", s.Attributes.ActivateTime)
	}
	if s.Attributes.ResultTime != "2023-01-02T00:00:00.000Z" {
		t.Errorf("resultTime must be copied verbatim, got %q", s.Attributes.ResultTime)
	}
	ref := s.Relationships.Profile.Data
	if ref.Type != TypeProfile || ref.ID != "profile-1" {
		t.Errorf("relationship = %+v", ref)
	}
}

func TestProject_CircleExposesExtendedFields(t *testing.T) {
	s := Project(makeResult("result-1", "852"), circle)

	attrs := attributeKeys(t, s)
	if attrs["resultType"] != "PCR" {
		t.Errorf("resultType = %v, want PCR", attrs["resultType"])
	}
	if attrs["patientId"] != "852" {
		t.Errorf("patientId = %v, want 852", attrs["patientId"])
	}
}

func TestProject_NonCircleOmitsExtendedFields(t *testing.T) {
	for _, org := range []organisation.Organisation{
		nonCircle,
		organisation.New("789", "circle"),
		organisation.New("790", "Test Org"),
	} {
		t.Run(org.Name(), func(t *testing.T) {
			attrs := attributeKeys(t, Project(makeResult("result-1", "12345"), org))
			if _, ok := attrs["resultType"]; ok {
				t.Error("resultType must be absent")
			}
			if _, ok := attrs["patientId"]; ok {
				t.Error("patientId must be absent")
			}
		})
	}
}

func TestProject_CircleEmptyTypeStillPresent(t *testing.T) {
	r := sample.Reconstruct("r", "negative", "s", "", "a", "b", sample.NewProfile("p", "n"))
	attrs := attributeKeys(t, Project(r, circle))
	if v, ok := attrs["resultType"]; !ok || v != "" {
		t.Errorf("resultType = %v (present=%v), want empty string present", v, ok)
	}
}

func TestProject_Idempotent(t *testing.T) {
	r := makeResult("result-1", "profile-1")
	before := r

	a := Project(r, circle)
	b := Project(r, circle)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("projections differ:\n%+v\n%+v", a, b)
	}
	if !reflect.DeepEqual(r, before) {
		t.Error("input result was modified")
	}

	*a.Attributes.ResultType = "changed"
	if *b.Attributes.ResultType != "PCR" {
		t.Error("projections share attribute storage")
	}
}

func TestNewMeta_Unpaginated(t *testing.T) {
	raw, err := json.Marshal(NewMeta(page.Unpaginated(1)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"total":1,"currentPage":null,"totalPages":null}`
	if string(raw) != want {
		t.Errorf("meta = %s, want %s", raw, want)
	}
}

func TestNewMeta_Paginated(t *testing.T) {
	raw, err := json.Marshal(NewMeta(page.Compute(25, 2)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"total":25,"currentPage":2,"totalPages":2,"currentPageItems":10}`
	if string(raw) != want {
		t.Errorf("meta = %s, want %s", raw, want)
	}
}

func TestNewEnvelope_IncludedDeduplicated(t *testing.T) {
	results := []sample.Result{
		makeResult("r1", "p1"),
		makeResult("r2", "p2"),
		makeResult("r3", "p1"),
	}
	env := NewEnvelope(page.Unpaginated(len(results)), results, nonCircle)

	if len(env.Data) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(env.Data))
	}
	for i, s := range env.Data {
		if s.Relationships.Profile.Data.ID != results[i].Profile().ID() {
			t.Errorf("sample %d profile = %q", i, s.Relationships.Profile.Data.ID)
		}
	}
	if len(env.Included) != 2 {
		t.Fatalf("expected 2 included profiles, got %d", len(env.Included))
	}
	if env.Included[0].ID != "p1" || env.Included[1].ID != "p2" {
		t.Errorf("included order = %q, %q", env.Included[0].ID, env.Included[1].ID)
	}
	if env.Included[0].Attributes.Name != "John Doe" || env.Included[0].Type != TypeProfile {
		t.Errorf("included = %+v", env.Included[0])
	}
}

func TestNewEnvelope_EmptyIsArray(t *testing.T) {
	raw, err := json.Marshal(NewEnvelope(page.Unpaginated(0), nil, circle))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"meta":{"total":0,"currentPage":null,"totalPages":null},"data":[],"included":[]}`
	if string(raw) != want {
		t.Errorf("envelope = %s, want %s", raw, want)
	}
}

func TestNewOrganisationList(t *testing.T) {
	list := NewOrganisationList([]organisation.Organisation{circle, nonCircle})
	if len(list.Data) != 2 {
		t.Fatalf("expected 2, got %d", len(list.Data))
	}
	if list.Data[0].ID != "123" || list.Data[0].Attributes.Name != "Circle" || list.Data[0].Type != TypeOrganisation {
		t.Errorf("unexpected first entry %+v", list.Data[0])
	}
}

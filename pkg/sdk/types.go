package labdex

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/labdex/internal/domain/organisation"
	"github.com/kailas-cloud/labdex/internal/domain/search/params"
)

// Organisation is a tenant as listed by GET /org.
type Organisation struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Attributes OrganisationAttributes `json:"attributes"`
}

// OrganisationAttributes are the exposed organisation fields.
type OrganisationAttributes struct {
	Name string `json:"name"`
}

// Name returns the display name.
func (o Organisation) Name() string { return o.Attributes.Name }

// Extended reports whether the organisation sees result type and patient id.
func (o Organisation) Extended() bool {
	return o.Attributes.Name == organisation.ExtendedFieldsName
}

type organisationList struct {
	Data []Organisation `json:"data"`
}

// Document is a sample search response.
type Document struct {
	Meta     Meta      `json:"meta"`
	Data     []Sample  `json:"data"`
	Included []Profile `json:"included"`
}

// Meta carries pagination facts. Page fields are nil for unpaginated responses.
type Meta struct {
	Total            int  `json:"total"`
	CurrentPage      *int `json:"currentPage"`
	TotalPages       *int `json:"totalPages"`
	CurrentPageItems *int `json:"currentPageItems,omitempty"`
}

// Sample is one result record.
type Sample struct {
	ID            string           `json:"id"`
	Type          string           `json:"type"`
	Attributes    SampleAttributes `json:"attributes"`
	Relationships Relationships    `json:"relationships"`
}

// SampleAttributes are the exposed result fields. ResultType and PatientID are only
// sent to organisations with extended fields.
type SampleAttributes struct {
	Result       string  `json:"result"`
	SampleID     string  `json:"sampleId"`
	ResultType   *string `json:"resultType,omitempty"`
	ActivateTime string  `json:"activateTime"`
	ResultTime   string  `json:"resultTime"`
	PatientID    *string `json:"patientId,omitempty"`
}

// Relationships links a sample to its profile.
type Relationships struct {
	Profile struct {
		Data Ref `json:"data"`
	} `json:"profile"`
}

// Ref identifies a resource by type and id.
type Ref struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ProfileID returns the id of the profile the sample belongs to.
func (s Sample) ProfileID() string { return s.Relationships.Profile.Data.ID }

// Profile is an included profile resource.
type Profile struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes struct {
		Name string `json:"name"`
	} `json:"attributes"`
}

// Query narrows a sample search. A nil or zero Query fetches every sample unpaginated.
type Query struct {
	// Page is 1-based; 0 disables pagination.
	Page           int
	PatientName    string
	SampleBarcode  string
	ActivationDate string // YYYY-MM-DD
	ResultDate     string // YYYY-MM-DD
	PatientID      string
}

func (q *Query) values() map[string]string {
	out := make(map[string]string)
	if q == nil {
		return out
	}
	if q.Page > 0 {
		out[params.NamePage] = strconv.Itoa(q.Page)
	}
	set := func(name, v string) {
		if v = strings.TrimSpace(v); v != "" {
			out[name] = v
		}
	}
	set(params.NamePatientName, q.PatientName)
	set(params.NameSampleBarcode, q.SampleBarcode)
	set(params.NameActivationDate, q.ActivationDate)
	set(params.NameResultDate, q.ResultDate)
	set(params.NamePatientID, q.PatientID)
	return out
}

// HealthStatus represents the aggregated server health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded", "error"
	Checks map[string]string `json:"checks"` // component → "ok"/"error"/"skipped"
}

// Package view projects sample results into the JSON:API-style response envelope.
package view

import (
	"github.com/kailas-cloud/labdex/internal/domain/organisation"
	"github.com/kailas-cloud/labdex/internal/domain/sample"
	"github.com/kailas-cloud/labdex/internal/domain/search/page"
)

// Resource type names.
const (
	TypeSample       = "sample"
	TypeProfile      = "profile"
	TypeOrganisation = "organisation"
)

// Envelope is the search response document.
type Envelope struct {
	Meta     Meta      `json:"meta"`
	Data     []Sample  `json:"data"`
	Included []Profile `json:"included"`
}

// Meta carries pagination facts. CurrentPage and TotalPages are null for unpaginated
// responses; CurrentPageItems is omitted.
type Meta struct {
	Total            int  `json:"total"`
	CurrentPage      *int `json:"currentPage"`
	TotalPages       *int `json:"totalPages"`
	CurrentPageItems *int `json:"currentPageItems,omitempty"`
}

// Sample is the flattened projection of one result.
type Sample struct {
	ID            string        `json:"id"`
	Type          string        `json:"type"`
	Attributes    Attributes    `json:"attributes"`
	Relationships Relationships `json:"relationships"`
}

// Attributes are the exposed result fields. ResultType and PatientID are nil (and absent
// from JSON) unless the organisation has extended fields.
type Attributes struct {
	Result       string  `json:"result"`
	SampleID     string  `json:"sampleId"`
	ResultType   *string `json:"resultType,omitempty"`
	ActivateTime string  `json:"activateTime"`
	ResultTime   string  `json:"resultTime"`
	PatientID    *string `json:"patientId,omitempty"`
}

// Relationships links a sample to its profile.
type Relationships struct {
	Profile ProfileRelationship `json:"profile"`
}

// ProfileRelationship wraps the profile identifier.
type ProfileRelationship struct {
	Data Ref `json:"data"`
}

// Ref identifies a resource by type and id.
type Ref struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Profile is an included profile resource.
type Profile struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Attributes ProfileAttributes `json:"attributes"`
}

// ProfileAttributes are the exposed profile fields.
type ProfileAttributes struct {
	Name string `json:"name"`
}

// Project maps one result into a Sample. The input is never modified and every call
// allocates its own optional attribute values.
func Project(r sample.Result, org organisation.Organisation) Sample {
	s := Sample{
		ID:   r.ID(),
		Type: TypeSample,
		Attributes: Attributes{
			Result:       r.Value(),
			SampleID:     r.SampleID(),
			ActivateTime: r.ActivateTime(),
			ResultTime:   r.ResultTime(),
		},
		Relationships: Relationships{
			Profile: ProfileRelationship{
				Data: Ref{Type: TypeProfile, ID: r.Profile().ID()},
			},
		},
	}
	if org.ExtendedFields() {
		resultType := r.Type()
		patientID := r.Profile().ID()
		s.Attributes.ResultType = &resultType
		s.Attributes.PatientID = &patientID
	}
	return s
}

// NewMeta converts pagination metadata to its wire form.
func NewMeta(m page.Meta) Meta {
	out := Meta{Total: m.Total}
	if !m.Paginated {
		return out
	}
	current, pages, items := m.CurrentPage, m.TotalPages, m.CurrentPageItems
	out.CurrentPage = &current
	out.TotalPages = &pages
	out.CurrentPageItems = &items
	return out
}

// NewEnvelope projects a batch of results. Included holds each distinct profile once,
// in order of first appearance.
func NewEnvelope(m page.Meta, results []sample.Result, org organisation.Organisation) Envelope {
	env := Envelope{
		Meta:     NewMeta(m),
		Data:     make([]Sample, 0, len(results)),
		Included: make([]Profile, 0),
	}
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		env.Data = append(env.Data, Project(r, org))

		p := r.Profile()
		if _, ok := seen[p.ID()]; ok {
			continue
		}
		seen[p.ID()] = struct{}{}
		env.Included = append(env.Included, Profile{
			Type:       TypeProfile,
			ID:         p.ID(),
			Attributes: ProfileAttributes{Name: p.Name()},
		})
	}
	return env
}

// OrganisationList is the organisation listing document.
type OrganisationList struct {
	Data []Organisation `json:"data"`
}

// Organisation is an organisation resource.
type Organisation struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Attributes OrganisationAttributes `json:"attributes"`
}

// OrganisationAttributes are the exposed organisation fields.
type OrganisationAttributes struct {
	Name string `json:"name"`
}

// NewOrganisationList projects organisations into their listing document.
func NewOrganisationList(orgs []organisation.Organisation) OrganisationList {
	out := OrganisationList{Data: make([]Organisation, 0, len(orgs))}
	for _, o := range orgs {
		out.Data = append(out.Data, Organisation{
			ID:         o.ID(),
			Type:       TypeOrganisation,
			Attributes: OrganisationAttributes{Name: o.Name()},
		})
	}
	return out
}

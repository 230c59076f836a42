package params

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kailas-cloud/labdex/internal/domain"
	"github.com/kailas-cloud/labdex/internal/domain/search/page"
)

// Query parameter names as they appear on the wire.
const (
	NamePage           = "page"
	NamePatientName    = "patientName"
	NameSampleBarcode  = "sampleBarcode"
	NameActivationDate = "activationDate"
	NameResultDate     = "resultDate"
	NamePatientID      = "patientId"
)

// MaxValueLength is the maximum accepted length of a single filter value.
const MaxValueLength = 256

// Raw holds unvalidated parameter values; nil means the parameter was not sent.
type Raw struct {
	Page           *string
	PatientName    *string
	SampleBarcode  *string
	ActivationDate *string
	ResultDate     *string
	PatientID      *string
}

// Params is a validated search request. The zero value means "everything, unpaginated".
type Params struct {
	page           int
	patientName    string
	sampleBarcode  string
	activationDate string
	resultDate     string
	patientID      string
}

// Parse validates raw parameters. Empty values are treated as absent.
// page must be ASCII decimal digits (leading zeros allowed) with a value in
// [1, page.MaxPage]; dates must be YYYY-MM-DD.
func Parse(raw Raw) (Params, error) {
	var p Params

	if v := value(raw.Page); v != "" {
		n, err := pageNumber(v)
		if err != nil {
			return Params{}, err
		}
		p.page = n
	}

	var err error
	if p.patientName, err = text(NamePatientName, raw.PatientName); err != nil {
		return Params{}, err
	}
	if p.sampleBarcode, err = text(NameSampleBarcode, raw.SampleBarcode); err != nil {
		return Params{}, err
	}
	if p.activationDate, err = date(NameActivationDate, raw.ActivationDate); err != nil {
		return Params{}, err
	}
	if p.resultDate, err = date(NameResultDate, raw.ResultDate); err != nil {
		return Params{}, err
	}
	if p.patientID, err = text(NamePatientID, raw.PatientID); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Page returns the requested 1-based page and whether one was supplied.
func (p Params) Page() (int, bool) { return p.page, p.page > 0 }

// PatientName returns the profile name substring filter.
func (p Params) PatientName() string { return p.patientName }

// SampleBarcode returns the sample id substring filter.
func (p Params) SampleBarcode() string { return p.sampleBarcode }

// ActivationDate returns the activation date filter (YYYY-MM-DD).
func (p Params) ActivationDate() string { return p.activationDate }

// ResultDate returns the result date filter (YYYY-MM-DD).
func (p Params) ResultDate() string { return p.resultDate }

// PatientID returns the profile id equality filter.
func (p Params) PatientID() string { return p.patientID }

func value(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func pageNumber(v string) (int, error) {
	invalid := domain.NewParamError(domain.ErrInvalidPage, NamePage, v)
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return 0, invalid
		}
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > page.MaxPage {
		return 0, invalid
	}
	return n, nil
}

func text(name string, raw *string) (string, error) {
	v := value(raw)
	if utf8.RuneCountInString(v) > MaxValueLength {
		return "", domain.NewParamError(domain.ErrInvalidFilter, name, "value too long")
	}
	return v, nil
}

func date(name string, raw *string) (string, error) {
	v := value(raw)
	if v == "" {
		return "", nil
	}
	if _, err := time.Parse(time.DateOnly, v); err != nil {
		return "", domain.NewParamError(domain.ErrInvalidFilter, name, v)
	}
	return v, nil
}

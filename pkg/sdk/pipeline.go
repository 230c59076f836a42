package labdex

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/labdex/internal/domain/search/page"
)

// PageSize is the number of rows shown per page.
const PageSize = page.Size

// UnknownName labels samples whose profile is missing from the included list.
const UnknownName = "Unknown"

// Patient is a sample flattened with its profile name for display.
// ResultType and ID are only populated when Extended is set.
type Patient struct {
	Name         string
	SampleID     string
	ActivateTime string
	ResultTime   string
	Result       string

	Extended   bool
	ResultType string
	ID         string
}

// Enrich resolves every sample's profile against doc.Included. The first included
// profile with a matching id wins.
func Enrich(doc *Document, org Organisation) []Patient {
	if doc == nil {
		return []Patient{}
	}
	names := make(map[string]string, len(doc.Included))
	for _, p := range doc.Included {
		if _, ok := names[p.ID]; !ok {
			names[p.ID] = p.Attributes.Name
		}
	}

	extended := org.Extended()
	out := make([]Patient, 0, len(doc.Data))
	for _, s := range doc.Data {
		name, ok := names[s.ProfileID()]
		if !ok {
			name = UnknownName
		}
		p := Patient{
			Name:         name,
			SampleID:     s.Attributes.SampleID,
			ActivateTime: s.Attributes.ActivateTime,
			ResultTime:   s.Attributes.ResultTime,
			Result:       s.Attributes.Result,
		}
		if extended {
			p.Extended = true
			p.ID = s.ID
			if s.Attributes.ResultType != nil {
				p.ResultType = *s.Attributes.ResultType
			}
		}
		out = append(out, p)
	}
	return out
}

// Tokenize splits free-text search input on ';' into trimmed, lowercased, non-empty tokens.
func Tokenize(input string) []string {
	var tokens []string
	for _, seg := range strings.Split(input, ";") {
		if seg = strings.ToLower(strings.TrimSpace(seg)); seg != "" {
			tokens = append(tokens, seg)
		}
	}
	return tokens
}

// Matches reports whether every token is a substring of at least one searchable field.
func (p Patient) Matches(tokens []string) bool {
	fields := p.searchable()
	for _, tok := range tokens {
		found := false
		for _, f := range fields {
			if strings.Contains(f, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (p Patient) searchable() []string {
	fields := []string{p.Name, p.SampleID, p.ActivateTime, p.ResultTime, p.Result}
	if p.Extended {
		fields = append(fields, p.ID, p.ResultType)
	}
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}

// Filter keeps the patients matching every token. With no tokens the input is returned as is.
func Filter(patients []Patient, tokens []string) []Patient {
	if len(tokens) == 0 {
		return patients
	}
	out := make([]Patient, 0, len(patients))
	for _, p := range patients {
		if p.Matches(tokens) {
			out = append(out, p)
		}
	}
	return out
}

// Paginate returns the rows of a 1-based page.
func Paginate(patients []Patient, current int) []Patient {
	return page.Slice(patients, current)
}

// TotalPages returns ceil(n / PageSize).
func TotalPages(n int) int {
	return page.TotalPages(n)
}

// ColumnKey identifies a Patient field.
type ColumnKey string

// Column keys.
const (
	ColumnName         ColumnKey = "name"
	ColumnSampleID     ColumnKey = "sampleId"
	ColumnActivateTime ColumnKey = "activateTime"
	ColumnResultTime   ColumnKey = "resultTime"
	ColumnResult       ColumnKey = "result"
	ColumnResultType   ColumnKey = "resultType"
	ColumnID           ColumnKey = "id"
)

// Column is a table column with its header label.
type Column struct {
	Key    ColumnKey
	Header string
}

var (
	baseColumns = []Column{
		{Key: ColumnName, Header: "Patient Name"},
		{Key: ColumnSampleID, Header: "Sample Barcode"},
		{Key: ColumnActivateTime, Header: "Activation Date"},
		{Key: ColumnResultTime, Header: "Result Date"},
		{Key: ColumnResult, Header: "Result Value"},
	}
	extendedColumns = []Column{
		{Key: ColumnResultType, Header: "Result Type"},
		{Key: ColumnID, Header: "Patient ID"},
	}
)

// Columns returns the columns visible to org.
func Columns(org Organisation) []Column {
	cols := make([]Column, 0, len(baseColumns)+len(extendedColumns))
	cols = append(cols, baseColumns...)
	if org.Extended() {
		cols = append(cols, extendedColumns...)
	}
	return cols
}

// Value returns the cell for a column.
func (p Patient) Value(key ColumnKey) string {
	switch key {
	case ColumnName:
		return p.Name
	case ColumnSampleID:
		return p.SampleID
	case ColumnActivateTime:
		return p.ActivateTime
	case ColumnResultTime:
		return p.ResultTime
	case ColumnResult:
		return p.Result
	case ColumnResultType:
		return p.ResultType
	case ColumnID:
		return p.ID
	default:
		return ""
	}
}

// Placeholder is the search box hint for org.
func Placeholder(org Organisation) string {
	if org.Extended() {
		return "Patient ID, name, barcode, date, etc."
	}
	return "name, barcode, date, etc."
}

// Summary renders the result counter below the table.
func Summary(shown, matched int) string {
	return fmt.Sprintf("Showing %d of %d results", shown, matched)
}

// PageLabel renders the pager caption.
func PageLabel(current, total int) string {
	return fmt.Sprintf("Page %d of %d", current, total)
}

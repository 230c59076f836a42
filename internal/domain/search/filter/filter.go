package filter

import (
	"strings"

	"github.com/kailas-cloud/labdex/internal/domain/search/params"
)

// Field identifies the column a predicate applies to.
type Field string

// Searchable fields, in the order predicates are emitted.
const (
	ProfileName  Field = "profile_name"
	SampleID     Field = "sample_id"
	ActivateDate Field = "activate_date"
	ResultDate   Field = "result_date"
	ProfileID    Field = "profile_id"
)

// Op is the comparison a predicate performs.
type Op string

const (
	// Contains is a case-insensitive substring match.
	Contains Op = "contains"
	// Equals is an exact match.
	Equals Op = "equals"
)

// Expression is the organisation scope plus an ordered, AND-combined predicate list.
type Expression struct {
	organisationID string
	predicates     []Predicate
}

// Build translates search parameters into an Expression scoped to one organisation.
// Predicate order is fixed: patient name, sample barcode, activation date, result date, patient id.
// Absent parameters add nothing.
func Build(organisationID string, p params.Params) Expression {
	expr := Expression{organisationID: organisationID}
	expr.add(ProfileName, Contains, p.PatientName())
	expr.add(SampleID, Contains, p.SampleBarcode())
	expr.add(ActivateDate, Equals, p.ActivationDate())
	expr.add(ResultDate, Equals, p.ResultDate())
	expr.add(ProfileID, Equals, p.PatientID())
	return expr
}

func (e *Expression) add(f Field, op Op, value string) {
	if value == "" {
		return
	}
	e.predicates = append(e.predicates, Predicate{field: f, op: op, value: value})
}

// OrganisationID returns the organisation every match must belong to.
func (e Expression) OrganisationID() string { return e.organisationID }

// Predicates returns the predicates in application order.
func (e Expression) Predicates() []Predicate { return e.predicates }

// IsEmpty reports whether the expression has no predicates beyond the organisation scope.
func (e Expression) IsEmpty() bool { return len(e.predicates) == 0 }

// Predicate is a single filter clause.
type Predicate struct {
	field Field
	op    Op
	value string
}

// Field returns the target field.
func (p Predicate) Field() Field { return p.field }

// Op returns the comparison.
func (p Predicate) Op() Op { return p.op }

// Value returns the raw user value.
func (p Predicate) Value() string { return p.value }

// Pattern returns the LIKE pattern for Contains predicates (wildcards in the value escaped)
// and the raw value otherwise.
func (p Predicate) Pattern() string {
	if p.op != Contains {
		return p.value
	}
	return "%" + EscapeLike(p.value) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters using backslash as the escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

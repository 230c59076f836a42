package organisation

// ExtendedFieldsName is the organisation name that unlocks the extended sample attributes
// (result type and patient id). The comparison is case-sensitive.
const ExtendedFieldsName = "Circle"

// Organisation is a tenant that owns profiles and, through them, results.
type Organisation struct {
	id             string
	name           string
	extendedFields bool
}

// New creates an Organisation and resolves its capabilities from the name.
func New(id, name string) Organisation {
	return Organisation{
		id:             id,
		name:           name,
		extendedFields: name == ExtendedFieldsName,
	}
}

// ID returns the organisation identifier.
func (o Organisation) ID() string { return o.id }

// Name returns the display name.
func (o Organisation) Name() string { return o.name }

// ExtendedFields reports whether result type and patient id are exposed to this organisation.
func (o Organisation) ExtendedFields() bool { return o.extendedFields }

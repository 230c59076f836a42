// Package sample holds the read-only result and profile records the search reshapes.
package sample

// Profile is the patient a result belongs to.
type Profile struct {
	id   string
	name string
}

// NewProfile creates a Profile.
func NewProfile(id, name string) Profile {
	return Profile{id: id, name: name}
}

// ID returns the profile identifier.
func (p Profile) ID() string { return p.id }

// Name returns the patient name.
func (p Profile) Name() string { return p.name }

// Result is a single test result attached to exactly one profile.
// Timestamps are kept as the strings stored by the persistence layer.
type Result struct {
	id           string
	value        string
	sampleID     string
	resultType   string
	activateTime string
	resultTime   string
	profile      Profile
}

// Reconstruct restores a Result from storage.
func Reconstruct(
	id, value, sampleID, resultType, activateTime, resultTime string,
	profile Profile,
) Result {
	return Result{
		id:           id,
		value:        value,
		sampleID:     sampleID,
		resultType:   resultType,
		activateTime: activateTime,
		resultTime:   resultTime,
		profile:      profile,
	}
}

// ID returns the result identifier.
func (r Result) ID() string { return r.id }

// Value returns the result value (e.g. "negative").
func (r Result) Value() string { return r.value }

// SampleID returns the sample barcode.
func (r Result) SampleID() string { return r.sampleID }

// Type returns the assay type.
func (r Result) Type() string { return r.resultType }

// ActivateTime returns the activation timestamp as stored.
func (r Result) ActivateTime() string { return r.activateTime }

// ResultTime returns the result timestamp as stored.
func (r Result) ResultTime() string { return r.resultTime }

// Profile returns the owning profile.
func (r Result) Profile() Profile { return r.profile }

package sample

import (
	domsample "github.com/kailas-cloud/labdex/internal/domain/sample"
)

// selectColumns is the flat projection of a result joined with its profile.
const selectColumns = "result.result_id, result.result, result.sample_id, result.result_type, " +
	"result.activate_time, result.result_time, profile.profile_id, profile.name AS profile_name"

// orderBy gives a stable order across pages.
const orderBy = "result.activate_time, result.result_id"

// row is the scan target for selectColumns.
type row struct {
	ResultID     string
	Result       string
	SampleID     string
	ResultType   string
	ActivateTime string
	ResultTime   string
	ProfileID    string
	ProfileName  string
}

func (r row) toDomain() domsample.Result {
	return domsample.Reconstruct(
		r.ResultID,
		r.Result,
		r.SampleID,
		r.ResultType,
		r.ActivateTime,
		r.ResultTime,
		domsample.NewProfile(r.ProfileID, r.ProfileName),
	)
}

func toDomain(rows []row) []domsample.Result {
	out := make([]domsample.Result, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

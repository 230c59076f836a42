// Package fixtures holds the demo dataset and seeds it into PostgreSQL.
package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kailas-cloud/labdex/internal/db"
	"github.com/kailas-cloud/labdex/internal/db/postgres"
)

// namespace seeds the deterministic ids of generated rows.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/kailas-cloud/labdex/fixtures"))

// Result types.
const (
	RTPCR    = "rtpcr"
	Antigen  = "antigen"
	Antibody = "antibody"
)

// Organisation ids of the demo dataset.
var (
	CircleID    = id("organisation", "Circle")
	PreneticsID = id("organisation", "Prenetics")
)

// Named profiles of the demo dataset.
const (
	PeterChan    = "b66df241-e780-4c9c-aeb1-0efc4946face"
	AndreaLau    = "0bf3bd3b-75bc-4540-ba04-a19ab5e9382c"
	JohnLocke    = "b50d027e-d8c5-496b-8665-dd2281ab1b32"
	BruceLee     = "97932431-d7de-48ec-9f51-d0d78170ffe9"
	MichaelCaine = "47d67686-b77f-47e8-92e4-76f1b5f1bc92"
)

// GeneratedPerOrganisation is the number of synthetic results added for each organisation.
const GeneratedPerOrganisation = 30

// Dataset is a complete set of rows to seed.
type Dataset struct {
	Organisations []postgres.Organisation
	Profiles      []postgres.Profile
	Results       []postgres.Result
}

// Demo returns the demo dataset. It is identical on every call.
func Demo() Dataset {
	ds := Dataset{
		Organisations: []postgres.Organisation{
			{OrganisationID: CircleID, Name: "Circle"},
			{OrganisationID: PreneticsID, Name: "Prenetics"},
		},
		Profiles: []postgres.Profile{
			{ProfileID: PeterChan, Name: "Peter Chan", OrganisationID: CircleID},
			{ProfileID: AndreaLau, Name: "Andrea Lau", OrganisationID: CircleID},
			{ProfileID: JohnLocke, Name: "John Locke", OrganisationID: CircleID},
			{ProfileID: BruceLee, Name: "Bruce Lee", OrganisationID: PreneticsID},
			{ProfileID: MichaelCaine, Name: "Michael Caine", OrganisationID: PreneticsID},
		},
		Results: []postgres.Result{
			named("1c22dfc1-9c85-4ef9-a9d3-41a1e98a4d41", "1234567890", RTPCR, 12, 15, PeterChan),
			named("98627793-ee13-4eaf-a304-9e628d110f3c", "0987654321", RTPCR, 12, 19, AndreaLau),
			named("ab5b87ef-e44f-4b1f-98cb-992f2104ef8f", "109876543211", Antigen, 13, 15, JohnLocke),
			named("8423dfd3-37b5-4c62-a37c-729e410d19e5", "121212121212", Antibody, 14, 15, BruceLee),
			named("567a8b28-c1ab-467d-85ff-04fbcb24cb9a", "181818188181", Antigen, 15, 15, MichaelCaine),
		},
	}
	ds.Results = append(ds.Results, generated(CircleID, PeterChan)...)
	ds.Results = append(ds.Results, generated(PreneticsID, BruceLee)...)
	return ds
}

// Seed inserts the dataset in one transaction. Existing rows are left untouched.
func Seed(ctx context.Context, conn db.Conn, ds Dataset) error {
	err := conn.DB(ctx).Transaction(func(tx *gorm.DB) error {
		skip := tx.Clauses(clause.OnConflict{DoNothing: true}).Session(&gorm.Session{})
		if err := skip.Create(&ds.Organisations).Error; err != nil {
			return fmt.Errorf("organisations: %w", err)
		}
		if err := skip.Create(&ds.Profiles).Error; err != nil {
			return fmt.Errorf("profiles: %w", err)
		}
		if err := skip.CreateInBatches(&ds.Results, 100).Error; err != nil {
			return fmt.Errorf("results: %w", err)
		}
		return nil
	})
	if err != nil {
		return db.Translate(db.OpInsert, err)
	}
	return nil
}

func id(kind, key string) string {
	return uuid.NewSHA1(namespace, []byte(kind+"/"+key)).String()
}

func named(resultID, sampleID, resultType string, day, hour int, profileID string) postgres.Result {
	activate := time.Date(2021, time.July, day, hour, 0, 0, 0, time.UTC)
	return postgres.Result{
		ResultID:     resultID,
		Result:       "negative",
		SampleID:     sampleID,
		ResultType:   resultType,
		ActivateTime: activate.Format(time.DateTime),
		ResultTime:   activate.Add(time.Hour).Format(time.DateTime),
		ProfileID:    profileID,
	}
}

// generated derives GeneratedPerOrganisation results for one profile. Values that
// the demo randomised are taken from the id bytes so reruns produce the same rows.
func generated(organisationID, profileID string) []postgres.Result {
	start := time.Date(2021, time.July, 12, 15, 0, 0, 0, time.UTC)
	out := make([]postgres.Result, 0, GeneratedPerOrganisation)
	for i := range GeneratedPerOrganisation {
		u := uuid.NewSHA1(namespace, fmt.Appendf(nil, "result/%s/%d", organisationID, i))
		value, resultType := "negative", RTPCR
		if u[0]&1 == 1 {
			value = "positive"
		}
		if u[1]&1 == 1 {
			resultType = Antigen
		}
		sampleNo := 1_000_000_000 + (uint64(u[2])<<24|uint64(u[3])<<16|uint64(u[4])<<8|uint64(u[5]))%9_000_000_000
		activate := start.Add(time.Duration(i) * time.Hour)
		out = append(out, postgres.Result{
			ResultID:     u.String(),
			Result:       value,
			SampleID:     fmt.Sprintf("%010d", sampleNo),
			ResultType:   resultType,
			ActivateTime: activate.Format(time.DateTime),
			ResultTime:   activate.Add(time.Hour).Format(time.DateTime),
			ProfileID:    profileID,
		})
	}
	return out
}

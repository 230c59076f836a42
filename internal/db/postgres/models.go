package postgres

// Organisation is the organisation table row.
type Organisation struct {
	OrganisationID string `gorm:"column:organisation_id;type:varchar(64);primaryKey"`
	Name           string `gorm:"column:name;type:varchar(255);not null"`
}

// TableName pins the table name.
func (*Organisation) TableName() string { return "organisation" }

// Profile is the profile table row.
type Profile struct {
	ProfileID      string `gorm:"column:profile_id;type:varchar(64);primaryKey"`
	Name           string `gorm:"column:name;type:varchar(255);not null;index:idx_profile_org_name,priority:2"`
	OrganisationID string `gorm:"column:organisation_id;type:varchar(64);not null;index:idx_profile_org_name,priority:1"`

	Organisation Organisation `gorm:"foreignKey:OrganisationID;references:OrganisationID;constraint:OnDelete:CASCADE"`
}

// TableName pins the table name.
func (*Profile) TableName() string { return "profile" }

// Result is the result table row. Timestamps are kept as text and returned verbatim.
type Result struct {
	ResultID     string `gorm:"column:result_id;type:varchar(64);primaryKey"`
	Result       string `gorm:"column:result;type:varchar(32);not null"`
	SampleID     string `gorm:"column:sample_id;type:varchar(64);not null;index"`
	ResultType   string `gorm:"column:result_type;type:varchar(32);not null"`
	ActivateTime string `gorm:"column:activate_time;type:varchar(32);not null;index"`
	ResultTime   string `gorm:"column:result_time;type:varchar(32);not null"`
	ProfileID    string `gorm:"column:profile_id;type:varchar(64);not null;index"`

	Profile Profile `gorm:"foreignKey:ProfileID;references:ProfileID;constraint:OnDelete:CASCADE"`
}

// TableName pins the table name.
func (*Result) TableName() string { return "result" }

// Models lists every table in dependency order.
func Models() []any {
	return []any{&Organisation{}, &Profile{}, &Result{}}
}

package domain

import "math"

// TypeField is the reserved change key for a requirement type change.
const TypeField = "type"

// FieldChange is the old and new text of one changed field. A side where
// the field is absent is the empty string.
type FieldChange struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Modification pairs the two versions of a changed requirement.
type Modification struct {
	Before        Requirement            `yaml:"before"`
	After         Requirement            `yaml:"after"`
	ChangedFields map[string]FieldChange `yaml:"changed_fields"`
}

// ComparisonStats holds counts for one comparison.
type ComparisonStats struct {
	TotalBefore      int     `yaml:"total_before"`
	TotalAfter       int     `yaml:"total_after"`
	TotalUnique      int     `yaml:"total_unique"`
	Added            int     `yaml:"added"`
	Deleted          int     `yaml:"deleted"`
	Modified         int     `yaml:"modified"`
	Unchanged        int     `yaml:"unchanged"`
	ChangePercentage float64 `yaml:"change_percentage"`
}

// HasChanges returns true if anything was added, deleted or modified.
func (s ComparisonStats) HasChanges() bool {
	return s.Added+s.Deleted+s.Modified > 0
}

// ComparisonResult partitions two requirement sets by id. Each partition
// is sorted by id.
type ComparisonResult struct {
	Added     []Requirement   `yaml:"added"`
	Deleted   []Requirement   `yaml:"deleted"`
	Modified  []Modification  `yaml:"modified"`
	Unchanged []Requirement   `yaml:"unchanged"`
	Stats     ComparisonStats `yaml:"stats"`

	// DuplicateIDs lists ids that occurred more than once on either side.
	DuplicateIDs []string `yaml:"duplicate_ids,omitempty"`
}

// ChangePercentage returns changed/population*100 rounded to two decimals,
// or 0 when population is 0.
func ChangePercentage(changed, population int) float64 {
	if population <= 0 {
		return 0
	}
	return math.Round(float64(changed)/float64(population)*100*100) / 100
}

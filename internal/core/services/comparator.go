package services

import (
	"slices"

	"github.com/samber/lo"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// CompareRequirements partitions two requirement sets by id into added,
// deleted, modified and unchanged. A duplicated id keeps its last
// occurrence and is listed in DuplicateIDs.
func CompareRequirements(before, after []domain.Requirement) *domain.ComparisonResult {
	beforeByID := indexByID(before)
	afterByID := indexByID(after)

	result := &domain.ComparisonResult{
		Added:     []domain.Requirement{},
		Deleted:   []domain.Requirement{},
		Modified:  []domain.Modification{},
		Unchanged: []domain.Requirement{},
	}

	dups := lo.Union(duplicateIDs(before), duplicateIDs(after))
	if len(dups) > 0 {
		slices.Sort(dups)
		result.DuplicateIDs = dups
	}

	ids := lo.Union(lo.Keys(beforeByID), lo.Keys(afterByID))
	slices.Sort(ids)

	for _, id := range ids {
		b, inBefore := beforeByID[id]
		a, inAfter := afterByID[id]
		switch {
		case !inAfter:
			result.Deleted = append(result.Deleted, b)
		case !inBefore:
			result.Added = append(result.Added, a)
		case b.Equal(a):
			result.Unchanged = append(result.Unchanged, a)
		default:
			result.Modified = append(result.Modified, domain.Modification{
				Before:        b,
				After:         a,
				ChangedFields: changedFields(b, a),
			})
		}
	}

	result.Stats = domain.ComparisonStats{
		TotalBefore: len(beforeByID),
		TotalAfter:  len(afterByID),
		Added:       len(result.Added),
		Deleted:     len(result.Deleted),
		Modified:    len(result.Modified),
		Unchanged:   len(result.Unchanged),
	}
	result.Stats.TotalUnique = result.Stats.TotalBefore + result.Stats.Added
	result.Stats.ChangePercentage = domain.ChangePercentage(
		result.Stats.Added+result.Stats.Deleted+result.Stats.Modified,
		result.Stats.TotalUnique,
	)

	return result
}

func indexByID(reqs []domain.Requirement) map[string]domain.Requirement {
	return lo.KeyBy(reqs, func(r domain.Requirement) string { return r.ID })
}

func duplicateIDs(reqs []domain.Requirement) []string {
	return lo.FindDuplicates(lo.Map(reqs, func(r domain.Requirement, _ int) string { return r.ID }))
}

// changedFields lists every attribute whose text differs between the two
// versions, with an absent side reported as "". A type change is
// reported under domain.TypeField.
func changedFields(before, after domain.Requirement) map[string]domain.FieldChange {
	changes := make(map[string]domain.FieldChange)
	if before.Type != after.Type {
		changes[domain.TypeField] = domain.FieldChange{Old: before.Type, New: after.Type}
	}

	keys := lo.Union(lo.Keys(before.Attributes), lo.Keys(after.Attributes))
	for _, key := range keys {
		oldValue, inBefore := before.Attributes[key]
		newValue, inAfter := after.Attributes[key]
		if inBefore && inAfter && oldValue.Text == newValue.Text {
			continue
		}
		changes[key] = domain.FieldChange{Old: oldValue.Text, New: newValue.Text}
	}
	return changes
}

// Package taskmeta selects and indexes task note metadata.
package taskmeta

import (
	"sort"

	"github.com/alexanderramin/tally/internal/domain"
)

// FilterBySprint returns the records whose sprint list contains tag. A
// record without sprints never matches. Callers must not depend on the
// order of the result.
func FilterBySprint(records []domain.TaskMetadata, tag domain.SprintTag) []domain.TaskMetadata {
	var matched []domain.TaskMetadata
	for _, r := range records {
		if r.InSprint(tag) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Index keys records by task name. When two records share a name the first
// one wins; see Duplicates.
func Index(records []domain.TaskMetadata) map[string]domain.TaskMetadata {
	idx := make(map[string]domain.TaskMetadata, len(records))
	for _, r := range records {
		if _, ok := idx[r.Name]; ok {
			continue
		}
		idx[r.Name] = r
	}
	return idx
}

// Duplicates lists task names held by more than one record, sorted.
func Duplicates(records []domain.TaskMetadata) []string {
	seen := make(map[string]int, len(records))
	for _, r := range records {
		seen[r.Name]++
	}
	var dups []string
	for name, n := range seen {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

// Sprints lists every sprint tag used by records, sorted.
func Sprints(records []domain.TaskMetadata) []domain.SprintTag {
	seen := make(map[domain.SprintTag]bool)
	for _, r := range records {
		for _, s := range r.Sprints {
			seen[s] = true
		}
	}
	tags := make([]domain.SprintTag, 0, len(seen))
	for s := range seen {
		tags = append(tags, s)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

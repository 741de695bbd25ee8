package taskmeta

import (
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/stretchr/testify/assert"
)

func record(name string, sprints ...domain.SprintTag) domain.TaskMetadata {
	return domain.TaskMetadata{Name: name, Sprints: sprints}
}

func names(records []domain.TaskMetadata) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestFilterBySprint(t *testing.T) {
	records := []domain.TaskMetadata{
		record("Write report", "Y24W07", "Y24W08"),
		record("Refactor", "Y24W06"),
		record("No sprints"),
		record("Lowercase", "y24w07"),
		record("Prefix", "Y24W0"),
		record("Review", "Y24W07"),
	}

	got := FilterBySprint(records, "Y24W07")
	assert.ElementsMatch(t, []string{"Write report", "Review"}, names(got))
}

func TestFilterBySprint_NoMatches(t *testing.T) {
	assert.Empty(t, FilterBySprint([]domain.TaskMetadata{record("A", "Y24W01")}, "Y24W02"))
	assert.Empty(t, FilterBySprint(nil, "Y24W02"))
}

func TestIndex_FirstRecordWins(t *testing.T) {
	first := record("Dup", "Y24W07")
	first.Path = "a/Dup.md"
	second := record("Dup", "Y24W08")
	second.Path = "b/Dup.md"

	idx := Index([]domain.TaskMetadata{first, second, record("Other")})
	assert.Len(t, idx, 2)
	assert.Equal(t, "a/Dup.md", idx["Dup"].Path)
	assert.Equal(t, []string{"Dup"}, Duplicates([]domain.TaskMetadata{first, second, record("Other")}))
}

func TestSprints(t *testing.T) {
	records := []domain.TaskMetadata{
		record("A", "Y24W08", "Y24W07"),
		record("B", "Y24W07"),
		record("C"),
	}
	assert.Equal(t, []domain.SprintTag{"Y24W07", "Y24W08"}, Sprints(records))
}

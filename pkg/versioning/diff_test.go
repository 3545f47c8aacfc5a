package versioning

import (
	"testing"

	"github.com/courseloom/courseloom/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_Identical(t *testing.T) {
	version := &models.CourseVersion{
		Title:              "Go for Backend Engineers",
		ShortDescription:   "A practical course.",
		Price:              49.99,
		CurriculumSnapshot: []byte(`[]`),
	}

	diffs := Compare(version, version)
	require.Len(t, diffs, 9)

	for _, diff := range diffs {
		assert.Falsef(t, diff.Changed, "field %s unexpectedly changed", diff.Field)
	}
}

func TestCompare_ReportsChangedFields(t *testing.T) {
	a := &models.CourseVersion{
		Title:              "Go for Backend Engineers",
		ShortDescription:   "First edition.",
		Price:              49.99,
		CurriculumSnapshot: []byte(`[]`),
	}
	b := &models.CourseVersion{
		Title:              "Go for Backend Engineers",
		ShortDescription:   "Second edition, fully reworked.",
		Price:              59.99,
		CurriculumSnapshot: []byte(`[]`),
	}

	diffs := Compare(a, b)

	byField := make(map[string]FieldDiff, len(diffs))
	for _, diff := range diffs {
		byField[diff.Field] = diff
	}

	assert.False(t, byField["title"].Changed)

	assert.True(t, byField["short_description"].Changed)
	assert.Equal(t, "First edition.", byField["short_description"].ValueA)
	assert.Equal(t, "Second edition, fully reworked.", byField["short_description"].ValueB)

	assert.True(t, byField["price"].Changed)
	assert.Equal(t, "49.99", byField["price"].ValueA)
	assert.Equal(t, "59.99", byField["price"].ValueB)
}

package versioning

import (
	"strconv"

	"github.com/courseloom/courseloom/pkg/models"
)

// FieldDiff reports one tracked content field of two snapshots.
type FieldDiff struct {
	Field   string `json:"field"`
	Changed bool   `json:"changed"`
	ValueA  string `json:"value_a"`
	ValueB  string `json:"value_b"`
}

// Compare reports, for each tracked content field, whether the two snapshots
// differ and the two values. Pure function, no persistence.
func Compare(a, b *models.CourseVersion) []FieldDiff {
	fields := []struct {
		name   string
		valueA string
		valueB string
	}{
		{"title", a.Title, b.Title},
		{"short_description", a.ShortDescription, b.ShortDescription},
		{"requirements", a.Requirements, b.Requirements},
		{"learning_outcomes", a.LearningOutcomes, b.LearningOutcomes},
		{"target_audience", a.TargetAudience, b.TargetAudience},
		{"price", formatPrice(a.Price), formatPrice(b.Price)},
		{"thumbnail_url", a.ThumbnailURL, b.ThumbnailURL},
		{"video_url", a.VideoURL, b.VideoURL},
		{"curriculum", string(a.CurriculumSnapshot), string(b.CurriculumSnapshot)},
	}

	diffs := make([]FieldDiff, 0, len(fields))
	for _, field := range fields {
		diffs = append(diffs, FieldDiff{
			Field:   field.name,
			Changed: field.valueA != field.valueB,
			ValueA:  field.valueA,
			ValueB:  field.valueB,
		})
	}

	return diffs
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

package models

// LessonType distinguishes how a lesson's content is delivered.
type LessonType string

const (
	LessonTypeVideo    LessonType = "video"
	LessonTypeArticle  LessonType = "article"
	LessonTypeQuiz     LessonType = "quiz"
	LessonTypeDownload LessonType = "download"
)

// Chapter is an ordered group of lessons within a course curriculum.
type Chapter struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"    validate:"required"`
	Position int       `json:"position"`
	Lessons  []*Lesson `json:"lessons"`
}

// Lesson is a single unit of content inside a chapter.
type Lesson struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"            validate:"required"`
	Position        int        `json:"position"`
	DurationMinutes int        `json:"duration_minutes"`
	Type            LessonType `json:"type"`
	IsPreview       bool       `json:"is_preview"` // Viewable without enrollment
}

package analytics

// Grouping dimensions accepted by the average grade report.
const (
	DimensionStudents = "students"
	DimensionYears    = "years"
	DimensionGroups   = "groups"
	DimensionTeachers = "teachers"
	DimensionSubjects = "subjects"
)

// AverageGradeRequest bounds the report by created_at date (inclusive on both
// ends, YYYY-MM-DD) and selects the grouping dimension.
type AverageGradeRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	FilterBy  string `json:"filter_by" validate:"required"`
}

// AverageGrade is one report row: the grouped entity's display label and its
// average mark value (0 when the entity has no qualifying marks).
type AverageGrade struct {
	Entity       string  `json:"entity"`
	AverageGrade float64 `json:"average_grade"`
}

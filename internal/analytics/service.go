package analytics

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/mark"
)

var (
	// ErrUnknownDimension marks a bad filter_by value; it must map to a 400,
	// never to a generic server error.
	ErrUnknownDimension = errors.New("invalid filter type")
	ErrInvalidDate      = errors.New("dates must be in YYYY-MM-DD format")
)

const dateLayout = "2006-01-02"

type Service interface {
	ComputeAverages(ctx context.Context, req AverageGradeRequest) ([]AverageGrade, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

// bucket accumulates mark values for one grouping key.
type bucket struct {
	sum   int
	count int
}

func (b *bucket) add(value int) {
	b.sum += value
	b.count++
}

func (b *bucket) average() float64 {
	if b == nil || b.count == 0 {
		return 0
	}
	return float64(b.sum) / float64(b.count)
}

// ComputeAverages returns one row per grouping key, ordered by the key's
// ascending id (ascending year for the years dimension). The students,
// teachers, groups and subjects dimensions include entities with no
// qualifying marks at average 0; years only lists years that have marks.
func (s *service) ComputeAverages(ctx context.Context, req AverageGradeRequest) ([]AverageGrade, error) {
	// Reject bad input before the first query.
	switch req.FilterBy {
	case DimensionStudents, DimensionTeachers, DimensionGroups, DimensionSubjects, DimensionYears:
	default:
		return nil, ErrUnknownDimension
	}

	from, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	// end_date is inclusive of its whole day
	toExclusive := to.AddDate(0, 0, 1)

	marks, err := s.repo.MarksBetween(ctx, from, toExclusive)
	if err != nil {
		return nil, err
	}

	switch req.FilterBy {
	case DimensionStudents:
		return s.averageByPerson(ctx, marks, func(m mark.Mark) int { return m.StudentID })
	case DimensionTeachers:
		return s.averageByPerson(ctx, marks, func(m mark.Mark) int { return m.TeacherID })
	case DimensionGroups:
		return s.averageByGroup(ctx, marks)
	case DimensionSubjects:
		return s.averageBySubject(ctx, marks)
	default: // DimensionYears, checked above
		return averageByYear(marks), nil
	}
}

// averageByPerson covers both the students and teachers dimensions: every
// person gets a row, keyed by whichever side of the mark keyFn selects.
func (s *service) averageByPerson(ctx context.Context, marks []mark.Mark, keyFn func(mark.Mark) int) ([]AverageGrade, error) {
	people, err := s.repo.People(ctx)
	if err != nil {
		return nil, err
	}

	byPerson := make(map[int]*bucket)
	for _, m := range marks {
		key := keyFn(m)
		if byPerson[key] == nil {
			byPerson[key] = &bucket{}
		}
		byPerson[key].add(m.Value)
	}

	result := make([]AverageGrade, 0, len(people))
	for _, p := range people {
		result = append(result, AverageGrade{
			Entity:       p.FullName(),
			AverageGrade: byPerson[p.ID].average(),
		})
	}
	return result, nil
}

func (s *service) averageByGroup(ctx context.Context, marks []mark.Mark) ([]AverageGrade, error) {
	people, err := s.repo.People(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.repo.Groups(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}

	byStudent := make(map[int]*bucket)
	for _, m := range marks {
		if byStudent[m.StudentID] == nil {
			byStudent[m.StudentID] = &bucket{}
		}
		byStudent[m.StudentID].add(m.Value)
	}

	// A group appears once it has at least one member, marks or not.
	byGroup := make(map[int]*bucket)
	for _, p := range people {
		if p.GroupID == nil {
			continue
		}
		if _, known := names[*p.GroupID]; !known {
			continue
		}
		if byGroup[*p.GroupID] == nil {
			byGroup[*p.GroupID] = &bucket{}
		}
		if b := byStudent[p.ID]; b != nil {
			byGroup[*p.GroupID].sum += b.sum
			byGroup[*p.GroupID].count += b.count
		}
	}

	ids := make([]int, 0, len(byGroup))
	for id := range byGroup {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]AverageGrade, 0, len(ids))
	for _, id := range ids {
		result = append(result, AverageGrade{
			Entity:       names[id],
			AverageGrade: byGroup[id].average(),
		})
	}
	return result, nil
}

func (s *service) averageBySubject(ctx context.Context, marks []mark.Mark) ([]AverageGrade, error) {
	subjects, err := s.repo.Subjects(ctx)
	if err != nil {
		return nil, err
	}

	bySubject := make(map[int]*bucket)
	for _, m := range marks {
		if bySubject[m.SubjectID] == nil {
			bySubject[m.SubjectID] = &bucket{}
		}
		bySubject[m.SubjectID].add(m.Value)
	}

	result := make([]AverageGrade, 0, len(subjects))
	for _, sub := range subjects {
		result = append(result, AverageGrade{
			Entity:       sub.Name,
			AverageGrade: bySubject[sub.ID].average(),
		})
	}
	return result, nil
}

func averageByYear(marks []mark.Mark) []AverageGrade {
	byYear := make(map[int]*bucket)
	for _, m := range marks {
		year := m.CreatedAt.Year()
		if byYear[year] == nil {
			byYear[year] = &bucket{}
		}
		byYear[year].add(m.Value)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	result := make([]AverageGrade, 0, len(years))
	for _, year := range years {
		result = append(result, AverageGrade{
			Entity:       strconv.Itoa(year),
			AverageGrade: byYear[year].average(),
		})
	}
	return result
}

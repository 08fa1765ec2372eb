package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-data-hub/internal/cache"
	"github.com/MKhiriev/go-data-hub/models"
)

// Labels of the leprosy history chart.
const (
	LeprosyHadIt       = "Já teve hanseníase"
	LeprosyNever       = "Não possui"
	LeprosyNotInformed = "Não informado"
)

type ageBracket struct {
	label    string
	min, max int
}

var ageBrackets = []ageBracket{
	{label: "0-12", min: 0, max: 12},
	{label: "13-18", min: 13, max: 18},
	{label: "19-30", min: 19, max: 30},
	{label: "31-50", min: 31, max: 50},
	{label: "51+", min: 51, max: int(^uint(0) >> 1)},
}

type dashboardService struct {
	cache cache.TableCache
	now   func() time.Time
}

func NewDashboardService(c cache.TableCache) DashboardService {
	return &dashboardService{cache: c, now: time.Now}
}

func (s *dashboardService) Summary(ctx context.Context) (models.DashboardSummary, error) {
	beneficiaries, err := s.cache.GetOrFetch(ctx, models.TableBeneficiaries)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	projects, err := s.cache.GetOrFetch(ctx, models.TableProjects)
	if err != nil {
		return models.DashboardSummary{}, err
	}

	return summarize(beneficiaries, projects, s.now()), nil
}

func summarize(beneficiaries, projects models.Snapshot, now time.Time) models.DashboardSummary {
	summary := models.DashboardSummary{
		TotalBeneficiaries: beneficiaries.Len(),
		BySex:              countValues(beneficiaries, models.ColSex),
		ByGender:           countValues(beneficiaries, models.ColGender),
		ByNeighborhood:     countValues(beneficiaries, models.ColNeighborhood),
		ByHousingType:      countValues(beneficiaries, models.ColHousingType),
		ByRace:             countValues(beneficiaries, models.ColRace),
		WaterAccess:        countValues(beneficiaries, models.ColWaterAccess),
		SewageAccess:       countValues(beneficiaries, models.ColSewageAccess),
		PowerAccess:        countValues(beneficiaries, models.ColPowerAccess),
		ByAgeBracket:       countAges(beneficiaries, now),
		LeprosyHistory:     countLeprosyHistory(beneficiaries),
	}

	var incomeSum float64
	var incomeRows int
	for _, r := range beneficiaries.Records {
		if income, ok := r.Get(models.ColPerCapitaIncome).Measure(); ok {
			incomeSum += income
			incomeRows++
		}
		summary.PeopleServed += r.Get(models.ColFamilyMembers).Count()
	}
	if incomeRows > 0 {
		avg := incomeSum / float64(incomeRows)
		summary.AveragePerCapitaIncome = &avg
	}

	byProject := map[string]int{}
	for _, r := range beneficiaries.Records {
		for _, name := range models.SplitProjects(r.Text(models.ColProjects)) {
			byProject[name]++
		}
	}
	summary.ByProject = sortedCounts(byProject)
	summary.DistinctProjects = len(byProject)

	for _, r := range projects.Records {
		if models.IsActiveStatus(r.Text(models.ColProjectActive)) {
			summary.ActiveProjects++
		}
	}

	return summary
}

// countValues counts the non-blank values of column, most frequent first.
func countValues(snap models.Snapshot, column string) []models.CategoryCount {
	counts := map[string]int{}
	for _, v := range snap.Column(column) {
		if v.IsEmpty() {
			continue
		}
		counts[strings.TrimSpace(v.Text())]++
	}
	return sortedCounts(counts)
}

func sortedCounts(counts map[string]int) []models.CategoryCount {
	out := make([]models.CategoryCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, models.CategoryCount{Label: label, Count: n})
	}
	slices.SortFunc(out, func(a, b models.CategoryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Label, b.Label)
	})
	return out
}

// countAges buckets every row by age in whole years. Rows whose birth date
// cannot be read fall into the youngest bracket.
func countAges(snap models.Snapshot, now time.Time) []models.CategoryCount {
	out := make([]models.CategoryCount, len(ageBrackets))
	for i, b := range ageBrackets {
		out[i].Label = b.label
	}

	for _, v := range snap.Column(models.ColBirthDate) {
		age := 0
		if born, ok := birthDate(v); ok {
			age = ageAt(born, now)
		}
		for i, b := range ageBrackets {
			if age >= b.min && age <= b.max {
				out[i].Count++
				break
			}
		}
	}
	return out
}

func birthDate(v models.Value) (time.Time, bool) {
	if t, ok := v.Time(); ok {
		return t, true
	}
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(v.Text()))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func ageAt(born, now time.Time) int {
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return max(age, 0)
}

func countLeprosyHistory(snap models.Snapshot) []models.CategoryCount {
	counts := map[string]int{}
	for _, v := range snap.Column(models.ColHadLeprosy) {
		counts[leprosyLabel(v.Text())]++
	}
	return sortedCounts(counts)
}

func leprosyLabel(answer string) string {
	switch {
	case strings.EqualFold(strings.TrimSpace(answer), models.ActiveYes):
		return LeprosyHadIt
	case strings.EqualFold(strings.TrimSpace(answer), models.ActiveNo):
		return LeprosyNever
	default:
		return LeprosyNotInformed
	}
}

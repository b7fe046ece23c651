// Package scorecard grades department performance across seven weighted
// dimensions and ranks departments by the composite.
package scorecard

import (
	"math"
	"sort"
	"time"

	"github.com/mreyes/finboard/internal/aggregate"
	"github.com/mreyes/finboard/internal/config"
	"github.com/mreyes/finboard/internal/model"
)

// Performance bands for the composite score.
const (
	BandExcellent = "Excellent"
	BandGood      = "Good"
	BandNeedsWork = "Needs Improvement"
)

// Inputs are one department's latest-period figures.
type Inputs struct {
	Department        string
	BudgetSum         float64
	ActualSum         float64
	VisitsActual      float64
	VisitsBudget      float64
	ProviderWRVUs     float64
	AvgWaitDays       float64
	TotalFTE          float64
	OvertimeHours     float64
	Satisfaction      float64
	ActiveInitiatives int
}

// Card is one department's scored record. Rank is assigned by Rank,
// 1-based, descending by composite.
type Card struct {
	Department   string  `json:"department"`
	Budget       float64 `json:"budget"`
	Volume       float64 `json:"volume"`
	Productivity float64 `json:"productivity"`
	Access       float64 `json:"access"`
	Overtime     float64 `json:"overtime"`
	Satisfaction float64 `json:"satisfaction"`
	Strategic    float64 `json:"strategic"`
	Composite    float64 `json:"composite"`
	Band         string  `json:"band"`
	Rank         int     `json:"rank"`
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// Band maps a composite score to its performance band.
func Band(composite float64) string {
	switch {
	case composite >= 80:
		return BandExcellent
	case composite >= 60:
		return BandGood
	default:
		return BandNeedsWork
	}
}

// Score computes the seven sub-scores and the weighted composite for
// one department. Every sub-score is clamped to [0,100], so the
// composite is as well whenever the weights sum to 1.
func Score(in Inputs, cfg config.Scorecard) Card {
	variancePct := aggregate.SafeDiv(in.ActualSum-in.BudgetSum, in.BudgetSum) * 100
	budget := clampScore(100 - math.Abs(variancePct)*cfg.BudgetPenaltyPerPct)

	volume := clampScore(aggregate.SafeDiv(in.VisitsActual, in.VisitsBudget) * 100)

	productivity := clampScore(aggregate.SafeDiv(in.ProviderWRVUs, cfg.WRVUTarget) * 100)

	access := clampScore(100 - (in.AvgWaitDays-1)*cfg.AccessPenaltyPerDay)

	overtimeRatio := aggregate.SafeDiv(in.OvertimeHours, in.TotalFTE*cfg.HoursPerFTE) * 100
	overtime := clampScore(100 - overtimeRatio*cfg.OvertimePenaltyPerPct)

	satisfaction := clampScore(in.Satisfaction)

	strategic := clampScore(cfg.StrategicBase + cfg.StrategicPerActive*float64(in.ActiveInitiatives))

	w := cfg.Weights
	composite := budget*w.Budget +
		volume*w.Volume +
		productivity*w.Productivity +
		access*w.Access +
		overtime*w.Overtime +
		satisfaction*w.Satisfaction +
		strategic*w.Strategic

	return Card{
		Department:   in.Department,
		Budget:       budget,
		Volume:       volume,
		Productivity: productivity,
		Access:       access,
		Overtime:     overtime,
		Satisfaction: satisfaction,
		Strategic:    strategic,
		Composite:    composite,
		Band:         Band(composite),
	}
}

// Rank sorts cards descending by composite, breaking ties by department
// name, and assigns 1-based ranks in place.
func Rank(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Composite != cards[j].Composite {
			return cards[i].Composite > cards[j].Composite
		}
		return cards[i].Department < cards[j].Department
	})
	for i := range cards {
		cards[i].Rank = i + 1
	}
}

// FromBundle scores every department present in the latest month of the
// bundle. A department with no clinical or staffing row that month is
// skipped. The returned slice is ranked.
func FromBundle(b *model.Bundle, cfg config.Scorecard) []Card {
	latest, ok := b.LatestMonth()
	if !ok {
		return nil
	}

	active := make(map[string]int)
	for _, si := range b.Strategic {
		if si.Status == model.InitiativeActive {
			active[si.Department]++
		}
	}

	var cards []Card
	for _, dept := range b.Departments() {
		in, ok := inputsFor(b, dept, latest)
		if !ok {
			continue
		}
		in.ActiveInitiatives = active[dept]
		cards = append(cards, Score(in, cfg))
	}

	Rank(cards)
	return cards
}

func inputsFor(b *model.Bundle, dept string, latest time.Time) (Inputs, bool) {
	in := Inputs{Department: dept}

	for _, row := range b.Budget {
		if row.Department == dept && row.Month.Equal(latest) {
			in.BudgetSum += row.BudgetAmount
			in.ActualSum += row.ActualAmount
		}
	}

	haveClinical := false
	for _, row := range b.Clinical {
		if row.Department == dept && row.Month.Equal(latest) {
			in.VisitsActual = row.VisitsActual
			in.VisitsBudget = row.VisitsBudget
			in.ProviderWRVUs = row.ProviderWRVUs
			in.AvgWaitDays = row.AvgWaitDays
			in.Satisfaction = row.PatientSatisfaction
			haveClinical = true
			break
		}
	}

	haveStaffing := false
	for _, row := range b.Staffing {
		if row.Department == dept && row.Month.Equal(latest) {
			in.TotalFTE = row.TotalFTE()
			in.OvertimeHours = row.OvertimeHours
			haveStaffing = true
			break
		}
	}

	return in, haveClinical && haveStaffing
}

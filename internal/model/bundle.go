package model

import (
	"sort"
	"time"
)

// SlotSource records where one dataset slot's rows came from.
type SlotSource string

const (
	// SourceFile means the slot was parsed from a user-supplied file.
	SourceFile SlotSource = "file"
	// SourceSample means no file was supplied and the synthetic sample was used.
	SourceSample SlotSource = "sample"
	// SourceFallback means a supplied file failed to parse and the synthetic
	// sample was substituted. SlotStatus.Err carries the cause.
	SourceFallback SlotSource = "sample-fallback"
)

// SlotStatus is the per-dataset outcome of a bundle load.
type SlotStatus struct {
	Dataset  string     `json:"dataset"`
	Source   SlotSource `json:"source"`
	Path     string     `json:"path,omitempty"`
	Rows     int        `json:"rows"`
	Err      string     `json:"error,omitempty"`
	Duration time.Duration
}

// LoadReport captures the outcome of a full bundle load.
type LoadReport struct {
	RunID    string       `json:"run_id"`
	LoadedAt time.Time    `json:"loaded_at"`
	Slots    []SlotStatus `json:"slots"`
	Duration time.Duration
}

// FilesLoaded counts slots that were filled from supplied files.
func (r *LoadReport) FilesLoaded() int {
	n := 0
	for _, s := range r.Slots {
		if s.Source == SourceFile {
			n++
		}
	}
	return n
}

// Slot returns the status for the named dataset, or ok=false.
func (r *LoadReport) Slot(name string) (SlotStatus, bool) {
	for _, s := range r.Slots {
		if s.Dataset == name {
			return s, true
		}
	}
	return SlotStatus{}, false
}

// Bundle owns the six in-memory tables for one run. Tables are treated as
// immutable once loaded; every computation reads from here.
type Bundle struct {
	Budget    []BudgetLine
	Clinical  []ClinicalRecord
	Payer     []PayerRecord
	Staffing  []StaffingRecord
	Equity    []EquityProfile
	Strategic []StrategicInitiative
	Report    LoadReport
}

// Departments returns the sorted set of department names present in the
// budget table.
func (b *Bundle) Departments() []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range b.Budget {
		if !seen[row.Department] {
			seen[row.Department] = true
			out = append(out, row.Department)
		}
	}
	sort.Strings(out)
	return out
}

// Months returns the sorted distinct months present in the budget table.
func (b *Bundle) Months() []time.Time {
	seen := make(map[time.Time]bool)
	var out []time.Time
	for _, row := range b.Budget {
		if !seen[row.Month] {
			seen[row.Month] = true
			out = append(out, row.Month)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// LatestMonth returns the most recent month in the budget table, or
// ok=false when the table is empty.
func (b *Bundle) LatestMonth() (time.Time, bool) {
	months := b.Months()
	if len(months) == 0 {
		return time.Time{}, false
	}
	return months[len(months)-1], true
}

// EquityFor returns the equity profile for a department, or ok=false.
func (b *Bundle) EquityFor(dept string) (EquityProfile, bool) {
	for _, p := range b.Equity {
		if p.Department == dept {
			return p, true
		}
	}
	return EquityProfile{}, false
}

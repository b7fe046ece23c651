package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mreyes/finboard/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_AllSample(t *testing.T) {
	b := Load(zerolog.Nop(), Options{Seed: 1})

	if len(b.Budget) == 0 || len(b.Clinical) == 0 || len(b.Payer) == 0 ||
		len(b.Staffing) == 0 || len(b.Equity) == 0 || len(b.Strategic) == 0 {
		t.Fatal("every slot should be filled from samples")
	}
	if b.Report.RunID == "" {
		t.Error("load report should carry a run id")
	}
	if got := b.Report.FilesLoaded(); got != 0 {
		t.Errorf("files loaded = %d, want 0", got)
	}
	for _, slot := range b.Report.Slots {
		if slot.Source != model.SourceSample {
			t.Errorf("slot %s source = %s, want sample", slot.Dataset, slot.Source)
		}
	}
}

func TestLoad_FileSlot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "budget.csv", budgetCSV)

	b := Load(zerolog.Nop(), Options{Dir: dir, Seed: 1})

	slot, ok := b.Report.Slot("budget")
	if !ok {
		t.Fatal("missing budget slot status")
	}
	if slot.Source != model.SourceFile {
		t.Fatalf("budget source = %s, want file", slot.Source)
	}
	if len(b.Budget) != 2 {
		t.Errorf("budget rows = %d, want 2", len(b.Budget))
	}
	// Other slots still sample.
	if slot, _ := b.Report.Slot("clinical"); slot.Source != model.SourceSample {
		t.Errorf("clinical source = %s, want sample", slot.Source)
	}
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "budget.csv", "month,department\ngarbage\n")

	b := Load(zerolog.Nop(), Options{Dir: dir, Seed: 1})

	slot, _ := b.Report.Slot("budget")
	if slot.Source != model.SourceFallback {
		t.Fatalf("budget source = %s, want sample-fallback", slot.Source)
	}
	if slot.Err == "" {
		t.Error("fallback slot should record the parse error")
	}
	// Fallback substitutes the full sample table, not the partial parse.
	if len(b.Budget) == 0 {
		t.Error("budget slot should hold sample rows after fallback")
	}
}

func TestLoad_ExplicitPathOverridesDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "budget.csv", "junk")
	explicit := writeFile(t, dir, "alt.csv", budgetCSV)

	b := Load(zerolog.Nop(), Options{
		Dir:   dir,
		Paths: map[string]string{"budget": explicit},
		Seed:  1,
	})

	slot, _ := b.Report.Slot("budget")
	if slot.Source != model.SourceFile || slot.Path != explicit {
		t.Errorf("slot = %+v, want file source from %s", slot, explicit)
	}
}

func TestLoad_ParquetBudget(t *testing.T) {
	dir := t.TempDir()
	lines := NewSampler(7).Budget()
	path := filepath.Join(dir, "budget.parquet")
	if err := WriteBudgetParquet(path, lines); err != nil {
		t.Fatalf("WriteBudgetParquet: %v", err)
	}

	b := Load(zerolog.Nop(), Options{Dir: dir, Seed: 1})

	slot, _ := b.Report.Slot("budget")
	if slot.Source != model.SourceFile {
		t.Fatalf("budget source = %s, want file", slot.Source)
	}
	if len(b.Budget) != len(lines) {
		t.Errorf("budget rows = %d, want %d", len(b.Budget), len(lines))
	}
	if b.Budget[0].Department != lines[0].Department ||
		b.Budget[0].BudgetAmount != lines[0].BudgetAmount {
		t.Errorf("parquet roundtrip mismatch: got %+v want %+v", b.Budget[0], lines[0])
	}
}

func TestSampler_Deterministic(t *testing.T) {
	a := NewSampler(42).Budget()
	b := NewSampler(42).Budget()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSampler_RangesValid(t *testing.T) {
	s := NewSampler(3)
	for _, rec := range s.Clinical() {
		if rec.NoShowRate < 0 || rec.NoShowRate > 1 {
			t.Errorf("no_show_rate out of range: %v", rec.NoShowRate)
		}
		if rec.PatientSatisfaction < 0 || rec.PatientSatisfaction > 100 {
			t.Errorf("satisfaction out of range: %v", rec.PatientSatisfaction)
		}
	}
	for _, rec := range s.Payer() {
		for _, pct := range []float64{rec.CommercialPct, rec.MedicarePct, rec.MedicaidPct, rec.SelfPayPct} {
			if pct < 0 || pct > 1 {
				t.Errorf("payer pct out of range: %v", pct)
			}
		}
	}
	for _, line := range s.Budget() {
		if line.BudgetAmount < 0 || line.ActualAmount < 0 {
			t.Errorf("negative budget amounts: %+v", line)
		}
	}
}

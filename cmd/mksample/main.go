// mksample writes a synthetic dataset bundle for demos and test
// fixtures: the six CSV files, plus optionally a Parquet budget table.
// Usage: go run ./cmd/mksample --out ./data --seed 1 --parquet
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mreyes/finboard/internal/dataset"
	"github.com/mreyes/finboard/internal/model"
)

func main() {
	out := flag.String("out", "data", "output directory")
	seed := flag.Int64("seed", 1, "sample generator seed")
	parquet := flag.Bool("parquet", false, "also write budget.parquet")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	s := dataset.NewSampler(*seed)
	budget := s.Budget()
	writers := map[string]func(*csv.Writer) error{
		"budget":    func(w *csv.Writer) error { return writeBudget(w, budget) },
		"clinical":  func(w *csv.Writer) error { return writeClinical(w, s.Clinical()) },
		"payer":     func(w *csv.Writer) error { return writePayer(w, s.Payer()) },
		"staffing":  func(w *csv.Writer) error { return writeStaffing(w, s.Staffing()) },
		"equity":    func(w *csv.Writer) error { return writeEquity(w, s.Equity()) },
		"strategic": func(w *csv.Writer) error { return writeStrategic(w, s.Strategic()) },
	}

	for _, ds := range model.AllDatasets {
		path := filepath.Join(*out, ds.FileName)
		if err := writeCSV(path, ds.Columns, writers[ds.Name]); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", ds.FileName, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	}

	if *parquet {
		path := filepath.Join(*out, "budget.parquet")
		if err := dataset.WriteBudgetParquet(path, budget); err != nil {
			fmt.Fprintf(os.Stderr, "budget.parquet: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func writeCSV(path string, header []string, body func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := body(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func day(t time.Time) string { return t.Format("2006-01-02") }
func num(v float64) string   { return strconv.FormatFloat(v, 'f', -1, 64) }
func fixed(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func writeBudget(w *csv.Writer, rows []model.BudgetLine) error {
	for _, r := range rows {
		rec := []string{
			day(r.Month), r.Department, r.CostCenter, r.GLCode, r.GLDescription,
			fixed(r.BudgetAmount), fixed(r.ActualAmount), fixed(r.FTEBudget), fixed(r.FTEActual),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeClinical(w *csv.Writer, rows []model.ClinicalRecord) error {
	for _, r := range rows {
		rec := []string{
			day(r.Month), r.Department, num(r.VisitsActual), num(r.VisitsBudget),
			num(r.NoShowRate), num(r.AvgWaitDays), num(r.PatientSatisfaction), num(r.ProviderWRVUs),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writePayer(w *csv.Writer, rows []model.PayerRecord) error {
	for _, r := range rows {
		rec := []string{
			day(r.Month), r.Department, num(r.CommercialPct), num(r.MedicarePct),
			num(r.MedicaidPct), num(r.SelfPayPct), fixed(r.AvgReimbursement),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeStaffing(w *csv.Writer, rows []model.StaffingRecord) error {
	for _, r := range rows {
		rec := []string{
			day(r.Month), r.Department, num(r.ProviderFTE), num(r.RNFTE), num(r.MAFTE),
			num(r.AdminFTE), num(r.OvertimeHours), fixed(r.OvertimeCost),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeEquity(w *csv.Writer, rows []model.EquityProfile) error {
	for _, r := range rows {
		rec := []string{
			r.Department, r.ZipCode, num(r.SVIScore), num(r.MedicaidPct),
			num(r.TransitScore), num(r.LanguageBarrierPct), num(r.ComplexityTier3Pct),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeStrategic(w *csv.Writer, rows []model.StrategicInitiative) error {
	for _, r := range rows {
		rec := []string{
			r.ID, r.Name, r.Department, r.Status, r.Phase,
			day(r.StartDate), day(r.TargetCompletion),
			fixed(r.CapexBudget), fixed(r.OpexBudget), fixed(r.ProjectedMonthlyRevenue),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

package dataset

import (
	"io"

	"github.com/mreyes/finboard/internal/model"
)

// ReadBudgetCSV parses a budget & actuals CSV export.
func ReadBudgetCSV(r io.Reader) ([]model.BudgetLine, error) {
	ds, _ := model.DatasetByName("budget")
	var out []model.BudgetLine
	err := forEachRow(r, ds, func(h header, row []string) error {
		month, err := h.month(row, "month")
		if err != nil {
			return err
		}
		line := model.BudgetLine{
			Month:         month,
			Department:    h.str(row, "department"),
			CostCenter:    h.str(row, "cost_center"),
			GLCode:        h.str(row, "gl_code"),
			GLDescription: h.str(row, "gl_description"),
		}
		for col, dst := range map[string]*float64{
			"budget_amount": &line.BudgetAmount,
			"actual_amount": &line.ActualAmount,
			"fte_budget":    &line.FTEBudget,
			"fte_actual":    &line.FTEActual,
		} {
			v, err := h.float(row, col)
			if err != nil {
				return err
			}
			*dst = v
		}
		out = append(out, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadClinicalCSV parses a clinical metrics CSV export.
func ReadClinicalCSV(r io.Reader) ([]model.ClinicalRecord, error) {
	ds, _ := model.DatasetByName("clinical")
	var out []model.ClinicalRecord
	err := forEachRow(r, ds, func(h header, row []string) error {
		month, err := h.month(row, "month")
		if err != nil {
			return err
		}
		rec := model.ClinicalRecord{
			Month:      month,
			Department: h.str(row, "department"),
		}
		for col, dst := range map[string]*float64{
			"visits_actual":        &rec.VisitsActual,
			"visits_budget":        &rec.VisitsBudget,
			"no_show_rate":         &rec.NoShowRate,
			"avg_wait_days":        &rec.AvgWaitDays,
			"patient_satisfaction": &rec.PatientSatisfaction,
			"provider_wrvus":       &rec.ProviderWRVUs,
		} {
			v, err := h.float(row, col)
			if err != nil {
				return err
			}
			*dst = v
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadPayerCSV parses a payer mix CSV export.
func ReadPayerCSV(r io.Reader) ([]model.PayerRecord, error) {
	ds, _ := model.DatasetByName("payer")
	var out []model.PayerRecord
	err := forEachRow(r, ds, func(h header, row []string) error {
		month, err := h.month(row, "month")
		if err != nil {
			return err
		}
		rec := model.PayerRecord{
			Month:      month,
			Department: h.str(row, "department"),
		}
		for col, dst := range map[string]*float64{
			"commercial_pct":    &rec.CommercialPct,
			"medicare_pct":      &rec.MedicarePct,
			"medicaid_pct":      &rec.MedicaidPct,
			"self_pay_pct":      &rec.SelfPayPct,
			"avg_reimbursement": &rec.AvgReimbursement,
		} {
			v, err := h.float(row, col)
			if err != nil {
				return err
			}
			*dst = v
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadStaffingCSV parses a staffing CSV export.
func ReadStaffingCSV(r io.Reader) ([]model.StaffingRecord, error) {
	ds, _ := model.DatasetByName("staffing")
	var out []model.StaffingRecord
	err := forEachRow(r, ds, func(h header, row []string) error {
		month, err := h.month(row, "month")
		if err != nil {
			return err
		}
		rec := model.StaffingRecord{
			Month:      month,
			Department: h.str(row, "department"),
		}
		for col, dst := range map[string]*float64{
			"provider_fte":   &rec.ProviderFTE,
			"rn_fte":         &rec.RNFTE,
			"ma_fte":         &rec.MAFTE,
			"admin_fte":      &rec.AdminFTE,
			"overtime_hours": &rec.OvertimeHours,
			"overtime_cost":  &rec.OvertimeCost,
		} {
			v, err := h.float(row, col)
			if err != nil {
				return err
			}
			*dst = v
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadEquityCSV parses an equity indicators CSV export. Equity rows have
// no time dimension.
func ReadEquityCSV(r io.Reader) ([]model.EquityProfile, error) {
	ds, _ := model.DatasetByName("equity")
	var out []model.EquityProfile
	err := forEachRow(r, ds, func(h header, row []string) error {
		p := model.EquityProfile{
			Department: h.str(row, "department"),
			ZipCode:    h.str(row, "zip_code"),
		}
		for col, dst := range map[string]*float64{
			"svi_score":             &p.SVIScore,
			"medicaid_pct":          &p.MedicaidPct,
			"transit_score":         &p.TransitScore,
			"language_barrier_pct":  &p.LanguageBarrierPct,
			"complexity_tier_3_pct": &p.ComplexityTier3Pct,
		} {
			v, err := h.float(row, col)
			if err != nil {
				return err
			}
			*dst = v
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadStrategicCSV parses a strategic initiatives CSV export.
func ReadStrategicCSV(r io.Reader) ([]model.StrategicInitiative, error) {
	ds, _ := model.DatasetByName("strategic")
	var out []model.StrategicInitiative
	err := forEachRow(r, ds, func(h header, row []string) error {
		start, err := h.date(row, "start_date")
		if err != nil {
			return err
		}
		target, err := h.date(row, "target_completion")
		if err != nil {
			return err
		}
		si := model.StrategicInitiative{
			ID:               h.str(row, "initiative_id"),
			Name:             h.str(row, "initiative_name"),
			Department:       h.str(row, "department"),
			Status:           h.str(row, "status"),
			Phase:            h.str(row, "phase"),
			StartDate:        start,
			TargetCompletion: target,
		}
		for col, dst := range map[string]*float64{
			"capex_budget":              &si.CapexBudget,
			"opex_budget":               &si.OpexBudget,
			"projected_monthly_revenue": &si.ProjectedMonthlyRevenue,
		} {
			v, err := h.float(row, col)
			if err != nil {
				return err
			}
			*dst = v
		}
		out = append(out, si)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

package model

// BudgetParquetRow mirrors the Parquet schema for a single budget line.
// The month column is a date string; it gets parsed and truncated to its
// month during decode.
type BudgetParquetRow struct {
	Month         string  `parquet:"month"`
	Department    string  `parquet:"department"`
	CostCenter    string  `parquet:"cost_center"`
	GLCode        string  `parquet:"gl_code"`
	GLDescription string  `parquet:"gl_description"`
	BudgetAmount  float64 `parquet:"budget_amount"`
	ActualAmount  float64 `parquet:"actual_amount"`
	FTEBudget     float64 `parquet:"fte_budget"`
	FTEActual     float64 `parquet:"fte_actual"`
}

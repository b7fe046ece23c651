package dataset

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/mreyes/finboard/internal/model"
	"github.com/mreyes/finboard/internal/normalize"
)

const parquetBatchSize = 1024

// ReadBudgetParquet opens a Parquet budget export, validates its schema,
// and streams it into budget lines. Finance systems that export Parquet
// instead of CSV go through this path; everything downstream is identical.
func ReadBudgetParquet(path string) ([]model.BudgetLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[model.BudgetParquetRow](pf)
	defer reader.Close()

	if err := validateBudgetSchema(reader.Schema()); err != nil {
		return nil, err
	}

	var out []model.BudgetLine
	buf := make([]model.BudgetParquetRow, parquetBatchSize)
	rowNum := 0
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			rowNum++
			line, err := budgetLineFromParquet(&buf[i])
			if err != nil {
				return nil, fmt.Errorf("budget parquet row %d: %w", rowNum, err)
			}
			out = append(out, line)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet rows: %w", readErr)
		}
	}
	return out, nil
}

// validateBudgetSchema checks that the Parquet schema contains every
// required budget column.
func validateBudgetSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}
	ds, _ := model.DatasetByName("budget")
	for _, col := range ds.Columns {
		if !columns[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}
	return nil
}

func budgetLineFromParquet(row *model.BudgetParquetRow) (model.BudgetLine, error) {
	month, ok := normalize.ParseMonth(row.Month)
	if !ok {
		return model.BudgetLine{}, fmt.Errorf("unparseable month %q", row.Month)
	}
	return model.BudgetLine{
		Month:         month,
		Department:    row.Department,
		CostCenter:    row.CostCenter,
		GLCode:        row.GLCode,
		GLDescription: row.GLDescription,
		BudgetAmount:  row.BudgetAmount,
		ActualAmount:  row.ActualAmount,
		FTEBudget:     row.FTEBudget,
		FTEActual:     row.FTEActual,
	}, nil
}

// WriteBudgetParquet writes budget lines as a Parquet file. Used by the
// fixture generator.
func WriteBudgetParquet(path string, lines []model.BudgetLine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}
	defer f.Close()

	rows := make([]model.BudgetParquetRow, len(lines))
	for i, line := range lines {
		rows[i] = model.BudgetParquetRow{
			Month:         line.Month.Format("2006-01-02"),
			Department:    line.Department,
			CostCenter:    line.CostCenter,
			GLCode:        line.GLCode,
			GLDescription: line.GLDescription,
			BudgetAmount:  line.BudgetAmount,
			ActualAmount:  line.ActualAmount,
			FTEBudget:     line.FTEBudget,
			FTEActual:     line.FTEActual,
		}
	}

	writer := parquet.NewGenericWriter[model.BudgetParquetRow](f)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

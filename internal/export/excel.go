package export

import (
	"github.com/xuri/excelize/v2"

	"vividexpense-be/internal/entities"
	"vividexpense-be/internal/summary"
)

const sheetName = "Expenses"

func renderExcel(expenses []entities.Expense) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	header := []interface{}{"Date", "Category", "Description", "Amount"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"6366F1"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", "D1", headerStyle); err != nil {
		return nil, err
	}

	row := 2
	for _, e := range expenses {
		values := []interface{}{e.DateString(), e.Category, e.Description, e.Amount.InexactFloat64()}
		if err := setRow(f, row, values); err != nil {
			return nil, err
		}
		row++
	}

	// One blank row, then the total.
	row++
	total := []interface{}{"Total", "", "", summary.Total(expenses).InexactFloat64()}
	if err := setRow(f, row, total); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}

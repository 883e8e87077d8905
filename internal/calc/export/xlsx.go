package export

import (
	"fmt"
	"io"

	mises "Mises/internal/calc/mises"
	"github.com/xuri/excelize/v2"
)

const ParamsSheet = "Параметры"

var SigmaSheets = []string{"σ1", "σ2", "σ3"}

// WriteXLSX stores the mesh as three Z×θ grids plus a parameter sheet.
func WriteXLSX(w io.Writer, m mises.Mesh, res mises.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ParamsSheet); err != nil {
		return err
	}
	params := [][]interface{}{
		{"Параметр", "Значение"},
		{"sigma_y", res.SigmaY},
		{"radius", res.RadiusMPa},
		{"z_range", res.ZRange},
		{"resolution", res.Resolution},
		{"points", res.Points},
		{"max_hydrostatic_error", res.MaxHydrostaticError},
		{"max_equivalent_error", res.MaxEquivalentError},
		{"ok", res.OK},
	}
	for i, row := range params {
		if err := setRow(f, ParamsSheet, 1, i+1, row); err != nil {
			return err
		}
	}

	for k, values := range [][][]float64{m.Sigma1, m.Sigma2, m.Sigma3} {
		sheet := SigmaSheets[k]
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		header := make([]interface{}, 0, len(m.Theta)+1)
		header = append(header, "Z \\ θ")
		for _, th := range m.Theta {
			header = append(header, th)
		}
		if err := setRow(f, sheet, 1, 1, header); err != nil {
			return err
		}
		for i, z := range m.Z {
			row := make([]interface{}, 0, len(m.Theta)+1)
			row = append(row, z)
			for _, v := range values[i] {
				row = append(row, v)
			}
			if err := setRow(f, sheet, 1, i+2, row); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, col, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("sheet %s row %d: %w", sheet, row, err)
	}
	return nil
}

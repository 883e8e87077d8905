package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	mises "Mises/internal/calc/mises"
	"github.com/xuri/excelize/v2"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Resolution int
}

type ImportResult struct {
	Count   int            `json:"count"`
	Skipped []int          `json:"skipped"`
	Results []mises.Result `json:"results"`
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	out, err := Read(file, h.Resolution)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Read calculates every data row of the first sheet. Row 1 is a header;
// columns are sigma_y, z_range (optional), resolution (optional). Rows that
// do not parse or fail validation are reported by their sheet row number.
func Read(r io.Reader, resolution int) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("invalid file")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return ImportResult{}, fmt.Errorf("empty sheet")
	}

	out := ImportResult{Skipped: []int{}, Results: []mises.Result{}}
	for i := 1; i < len(rows); i++ {
		input, err := parseRow(rows[i])
		if err != nil {
			out.Skipped = append(out.Skipped, i+1)
			continue
		}
		if input.Resolution == 0 {
			input.Resolution = resolution
		}
		res, err := mises.Calculate(input)
		if err != nil {
			out.Skipped = append(out.Skipped, i+1)
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, nil
}

func parseRow(row []string) (mises.Input, error) {
	if len(row) < 1 || strings.TrimSpace(row[0]) == "" {
		return mises.Input{}, fmt.Errorf("bad row")
	}
	sigmaY, err := toFloat(row[0])
	if err != nil {
		return mises.Input{}, err
	}
	in := mises.Input{SigmaY: sigmaY}
	if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
		if in.ZRange, err = toFloat(row[1]); err != nil {
			return mises.Input{}, err
		}
	}
	if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
		if in.Resolution, err = strconv.Atoi(strings.TrimSpace(row[2])); err != nil {
			return mises.Input{}, err
		}
	}
	return in, nil
}

// toFloat accepts both "12.5" and "12,5".
func toFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

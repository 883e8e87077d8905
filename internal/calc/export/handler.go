package export

import (
	"bytes"
	"fmt"
	"net/http"

	mises "Mises/internal/calc/mises"
	slider "Mises/internal/calc/slider"
)

type Handler struct {
	Slider     slider.Slider
	ZRange     float64
	Resolution int
}

func (h *Handler) Mesh(w http.ResponseWriter, r *http.Request) {
	in, err := h.Slider.Input(r, h.ZRange, h.Resolution)
	if err != nil {
		mises.WriteError(w, err)
		return
	}
	m, err := mises.Generate(in)
	if err != nil {
		mises.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, m, mises.Summarize(m, in)); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"mises_%g.xlsx\"", in.SigmaY))
	w.Write(buf.Bytes())
}

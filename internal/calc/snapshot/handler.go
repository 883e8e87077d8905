package snapshot

import (
	"bytes"
	"net/http"

	mises "Mises/internal/calc/mises"
	slider "Mises/internal/calc/slider"
)

type Handler struct {
	Slider     slider.Slider
	ZRange     float64
	Resolution int
}

func (h *Handler) SVG(w http.ResponseWriter, r *http.Request) {
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
	if err := Write(&buf, m, in); err != nil {
		http.Error(w, "Snapshot error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

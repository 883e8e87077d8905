package figure

import (
	"encoding/json"
	"net/http"

	mises "Mises/internal/calc/mises"
	slider "Mises/internal/calc/slider"
)

type Handler struct {
	Slider     slider.Slider
	ZRange     float64
	Resolution int
}

func (h *Handler) Figure(w http.ResponseWriter, r *http.Request) {
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
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Build(m, in))
}

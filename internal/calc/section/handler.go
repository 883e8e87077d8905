package section

import (
	"bytes"
	"net/http"

	mises "Mises/internal/calc/mises"
	slider "Mises/internal/calc/slider"
)

type Handler struct {
	Slider slider.Slider
}

func (h *Handler) PNG(w http.ResponseWriter, r *http.Request) {
	sigmaY, err := h.Slider.Value(r)
	if err != nil {
		mises.WriteError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := Render(&buf, sigmaY); err != nil {
		mises.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

package report

import (
	"bytes"
	"net/http"
	"time"

	mises "Mises/internal/calc/mises"
	slider "Mises/internal/calc/slider"
	"go.uber.org/zap"
)

type Handler struct {
	Slider     slider.Slider
	ZRange     float64
	Resolution int
	Logger     *zap.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	in, err := h.Slider.Input(r, h.ZRange, h.Resolution)
	if err != nil {
		mises.WriteError(w, err)
		return
	}
	res, err := mises.Calculate(in)
	if err != nil {
		mises.WriteError(w, err)
		return
	}
	q := r.URL.Query()
	input := Input{
		Project: q.Get("project"),
		Author:  q.Get("author"),
		Title:   q.Get("title"),
		Notes:   q.Get("notes"),
	}

	var buf bytes.Buffer
	if err := Write(&buf, input, res, time.Now()); err != nil {
		if h.Logger != nil {
			h.Logger.Error("report generation failed", zap.Float64("sigma_y", in.SigmaY), zap.Error(err))
		}
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}

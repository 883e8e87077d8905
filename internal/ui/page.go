package ui

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	figure "Mises/internal/calc/figure"
	slider "Mises/internal/calc/slider"
)

const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

//go:embed index.html
var pageFS embed.FS

var pageTmpl = template.Must(template.ParseFS(pageFS, "index.html"))

type Page struct {
	Title     string
	Slider    slider.Slider
	APIPrefix string
	PlotlyURL string
}

type Handler struct {
	Slider    slider.Slider
	PlotlyURL string
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	plotly := h.PlotlyURL
	if plotly == "" {
		plotly = DefaultPlotlyURL
	}
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, Page{
		Title:     figure.Title,
		Slider:    h.Slider,
		APIPrefix: "/api/mises",
		PlotlyURL: plotly,
	})
	if err != nil {
		http.Error(w, "Error executing template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

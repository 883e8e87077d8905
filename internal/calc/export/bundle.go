package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	figure "Mises/internal/calc/figure"
	mises "Mises/internal/calc/mises"
	report "Mises/internal/calc/report"
	section "Mises/internal/calc/section"
	snapshot "Mises/internal/calc/snapshot"
	"golang.org/x/sync/errgroup"
)

// Bundle file names, relative to the output directory.
const (
	FigureFile   = "figure.json"
	SnapshotFile = "snapshot.svg"
	MeshFile     = "mesh.xlsx"
	ReportFile   = "report.pdf"
	SectionFile  = "section.png"
)

// WriteBundle renders every artifact for in into dir concurrently and
// returns the written paths in a fixed order.
func WriteBundle(ctx context.Context, dir string, in mises.Input, meta report.Input) ([]string, error) {
	in, err := mises.Normalize(in)
	if err != nil {
		return nil, err
	}
	m, err := mises.Generate(in)
	if err != nil {
		return nil, err
	}
	res := mises.Summarize(m, in)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	jobs := []struct {
		name   string
		render func(io.Writer) error
	}{
		{FigureFile, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(figure.Build(m, in))
		}},
		{SnapshotFile, func(w io.Writer) error { return snapshot.Write(w, m, in) }},
		{MeshFile, func(w io.Writer) error { return WriteXLSX(w, m, res) }},
		{ReportFile, func(w io.Writer) error { return report.Write(w, meta, res, time.Now()) }},
		{SectionFile, func(w io.Writer) error { return section.Render(w, in.SigmaY) }},
	}

	paths := make([]string, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		job := job
		path := filepath.Join(dir, job.name)
		paths[i] = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := job.render(&buf); err != nil {
				return fmt.Errorf("%s: %w", job.name, err)
			}
			return os.WriteFile(path, buf.Bytes(), 0o644)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

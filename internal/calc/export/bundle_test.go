package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	mises "Mises/internal/calc/mises"
	report "Mises/internal/calc/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteBundle(context.Background(), dir, mises.Input{SigmaY: 25, Resolution: 12}, report.Input{Project: "bundle"})
	require.NoError(t, err)

	want := []string{FigureFile, SnapshotFile, MeshFile, ReportFile, SectionFile}
	require.Len(t, paths, len(want))
	for i, name := range want {
		assert.Equal(t, filepath.Join(dir, name), paths[i])
		info, err := os.Stat(paths[i])
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestWriteBundleRejectsInput(t *testing.T) {
	_, err := WriteBundle(context.Background(), t.TempDir(), mises.Input{SigmaY: -2}, report.Input{})
	assert.ErrorIs(t, err, mises.ErrInvalidInput)
}

func TestWriteBundleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := WriteBundle(ctx, t.TempDir(), mises.Input{SigmaY: 25, Resolution: 4}, report.Input{})
	assert.ErrorIs(t, err, context.Canceled)
}

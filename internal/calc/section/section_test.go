package section

import (
	"bytes"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	mises "Mises/internal/calc/mises"
	slider "Mises/internal/calc/slider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleLiesOnYieldLocus(t *testing.T) {
	xs, ys := Circle(20, 36)
	require.Len(t, xs, 36)
	r := mises.Radius(20)
	for i := range xs {
		assert.InDelta(t, r, math.Hypot(xs[i], ys[i]), 1e-12)
	}
}

func TestAxisProjections(t *testing.T) {
	x1, y1 := AxisProjection(0)
	x2, y2 := AxisProjection(1)
	x3, y3 := AxisProjection(2)

	assert.InDelta(t, math.Sqrt(3)/2, x1, 1e-12)
	assert.InDelta(t, -0.5, y1, 1e-12)
	assert.InDelta(t, -math.Sqrt(3)/2, x2, 1e-12)
	assert.InDelta(t, -0.5, y2, 1e-12)
	assert.InDelta(t, 0, x3, 1e-12)
	assert.InDelta(t, 1, y3, 1e-12)

	// projected axes are 120 degrees apart
	assert.InDelta(t, -0.5, x1*x2+y1*y2, 1e-12)
	assert.InDelta(t, -0.5, x2*x3+y2*y3, 1e-12)
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, 20))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
}

func TestRenderRejectsNonPositive(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, 0), mises.ErrInvalidInput)
}

func TestHandlerPNG(t *testing.T) {
	h := &Handler{Slider: slider.Default()}

	rec := httptest.NewRecorder()
	h.PNG(rec, httptest.NewRequest(http.MethodGet, "/api/mises/section.png?sigma_y=45", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	_, err := png.Decode(rec.Body)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	h.PNG(rec, httptest.NewRequest(http.MethodGet, "/api/mises/section.png?sigma_y=1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

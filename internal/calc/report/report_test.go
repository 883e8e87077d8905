package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mises "Mises/internal/calc/mises"
	slider "Mises/internal/calc/slider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWritePDF(t *testing.T) {
	res, err := mises.Calculate(mises.Input{SigmaY: 20, Resolution: 20})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Write(&buf, Input{Project: "Lab 3", Author: "QA", Notes: "Check"}, res, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("%%EOF")))
	assert.Greater(t, buf.Len(), 2000)
}

func TestLatin(t *testing.T) {
	assert.Equal(t, "Proekt Shchuka", latin("Проект Щука"))
	assert.Equal(t, "Most No3, Zhukov", latin("Мост №3, Жуков"))
	assert.Equal(t, "sigma_y = 20", latin("σᵧ = 20"))
	assert.Equal(t, "Podezd", latin("Подъезд"))
	assert.Equal(t, "Lab 3 café", latin("Lab 3 café"))
}

func TestWritePDFWithCyrillicFields(t *testing.T) {
	res, err := mises.Calculate(mises.Input{SigmaY: 20, Resolution: 20})
	require.NoError(t, err)

	in := Input{Project: "Мост №3", Author: "Иванов", Title: "Критерий Мизеса", Notes: "Проверка σᵧ"}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in, res, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteRejectsEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Input{}, mises.Result{}, time.Now())
	assert.ErrorIs(t, err, mises.ErrInvalidInput)
	assert.Zero(t, buf.Len())
}

func TestHandlerGenerate(t *testing.T) {
	h := &Handler{Slider: slider.Default(), ZRange: 100, Resolution: 20, Logger: zap.NewNop()}

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodGet, "/api/mises/report.pdf?sigma_y=25&project=demo", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodGet, "/api/mises/report.pdf?sigma_y=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

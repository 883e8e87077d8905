package slider

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	mises "Mises/internal/calc/mises"
)

// Slider describes the yield stress control on the main page.
type Slider struct {
	Label   string  `json:"label" yaml:"label"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Default float64 `json:"default" yaml:"default"`
	Step    float64 `json:"step" yaml:"step"`
}

func Default() Slider {
	return Slider{
		Label:   "Предел текучести (σᵧ):",
		Min:     5.0,
		Max:     50.0,
		Default: 20.0,
		Step:    5.0,
	}
}

func (s Slider) Validate() error {
	if s.Min <= 0 || s.Max < s.Min {
		return fmt.Errorf("slider bounds [%v, %v] are invalid", s.Min, s.Max)
	}
	if s.Step <= 0 {
		return fmt.Errorf("slider step must be positive, got %v", s.Step)
	}
	if s.Default < s.Min || s.Default > s.Max {
		return fmt.Errorf("slider default %v is outside [%v, %v]", s.Default, s.Min, s.Max)
	}
	return nil
}

// Snap rejects values outside the slider range and rounds the rest to the
// nearest step counted from Min.
func (s Slider) Snap(v float64) (float64, error) {
	if math.IsNaN(v) || v < s.Min || v > s.Max {
		return 0, fmt.Errorf("%w: yield stress %v is outside [%v, %v]", mises.ErrInvalidInput, v, s.Min, s.Max)
	}
	if s.Step <= 0 {
		return v, nil
	}
	snapped := s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	// Drop the float noise of Min + k*Step: 0.1 + 2*0.1 must read back as 0.3.
	p := math.Pow(10, float64(max(decimals(s.Step), decimals(s.Min))))
	snapped = math.Round(snapped*p) / p
	return math.Min(snapped, s.Max), nil
}

// decimals counts the digits after the point in the shortest form of v.
func decimals(v float64) int {
	str := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(str, '.'); i >= 0 {
		return len(str) - i - 1
	}
	return 0
}

// Value reads sigma_y from the query string, falling back to the default.
func (s Slider) Value(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("sigma_y")
	if raw == "" {
		return s.Default, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: sigma_y %q is not a number", mises.ErrInvalidInput, raw)
	}
	return s.Snap(v)
}

// Input builds a calculation input from the request query.
func (s Slider) Input(r *http.Request, zRange float64, resolution int) (mises.Input, error) {
	sigmaY, err := s.Value(r)
	if err != nil {
		return mises.Input{}, err
	}
	return mises.Normalize(mises.Input{SigmaY: sigmaY, ZRange: zRange, Resolution: resolution})
}

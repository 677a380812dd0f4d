package constraint

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultRestitution is a medium bounciness: 0 = no rebound, 1 = perfect restitution
	DefaultRestitution = 0.5
	// DefaultSlop is the penetration allowance below which positions are not corrected
	DefaultSlop = 0.01
	// DefaultCorrectionPercent is the share of the penetration removed per tick
	DefaultCorrectionPercent = 0.2
)

var ErrInvalidSettings = errors.New("invalid resolver settings")

type Constraint interface {
	Solve(settings Settings)
}

// Settings holds the coefficients shared by every contact of a world
type Settings struct {
	Restitution       float64
	Slop              float64
	CorrectionPercent float64
}

func DefaultSettings() Settings {
	return Settings{
		Restitution:       DefaultRestitution,
		Slop:              DefaultSlop,
		CorrectionPercent: DefaultCorrectionPercent,
	}
}

// Validate checks restitution and correction percent are in [0, 1] and slop is not negative
func (s Settings) Validate() error {
	if !inUnitRange(s.Restitution) {
		return fmt.Errorf("%w: restitution %v not in [0, 1]", ErrInvalidSettings, s.Restitution)
	}
	if math.IsNaN(s.Slop) || math.IsInf(s.Slop, 0) || s.Slop < 0 {
		return fmt.Errorf("%w: slop %v", ErrInvalidSettings, s.Slop)
	}
	if !inUnitRange(s.CorrectionPercent) {
		return fmt.Errorf("%w: correction percent %v not in [0, 1]", ErrInvalidSettings, s.CorrectionPercent)
	}
	return nil
}

func inUnitRange(f float64) bool {
	return f >= 0 && f <= 1
}

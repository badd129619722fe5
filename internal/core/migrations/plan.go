package migrations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
)

// Direction of a planned run.
type Direction string

const (
	DirectionNone Direction = "none"
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// PlannedStep is a single script execution and the marker value it commits.
type PlannedStep struct {
	Version     int
	Script      string
	MarkerAfter int
}

// Plan is the ordered list of scripts needed to go from one version to another.
type Plan struct {
	From      int
	To        int
	Direction Direction
	Steps     []PlannedStep
}

// IsNoop reports whether the plan changes nothing.
func (p Plan) IsNoop() bool { return len(p.Steps) == 0 }

// ValidateSteps checks the configured list and returns a copy sorted by version.
// Versions must be unique and form the sequence 1..N.
func ValidateSteps(steps []Step) ([]Step, error) {
	sorted := make([]Step, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	for i, s := range sorted {
		if s.Version < 1 {
			return nil, fmt.Errorf("%w: migration version %d must be at least 1", apperrors.ErrConfiguration, s.Version)
		}
		if i > 0 && sorted[i-1].Version == s.Version {
			return nil, fmt.Errorf("%w: duplicate migration version %d", apperrors.ErrConfiguration, s.Version)
		}
		// Markers move one version per step, so the list must be 1..N.
		if s.Version != i+1 {
			return nil, fmt.Errorf("%w: migration versions must be contiguous from 1, found gap before %d", apperrors.ErrConfiguration, s.Version)
		}
		if strings.TrimSpace(s.Up) == "" {
			return nil, fmt.Errorf("%w: migration %d has an empty up script", apperrors.ErrConfiguration, s.Version)
		}
		if strings.TrimSpace(s.Down) == "" {
			return nil, fmt.Errorf("%w: migration %d has an empty down script", apperrors.ErrConfiguration, s.Version)
		}
	}
	return sorted, nil
}

// LatestVersion returns the highest version of a validated, sorted list, or 0.
func LatestVersion(sorted []Step) int {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)-1].Version
}

// BuildPlan computes the steps needed to move from current to target.
// sorted must come from ValidateSteps.
func BuildPlan(sorted []Step, current int, target Target) (Plan, error) {
	latest := LatestVersion(sorted)

	to := target.version
	if target.latest {
		to = latest
	}
	if to < 0 || to > latest {
		return Plan{}, fmt.Errorf("%w: target version %d outside configured range 0..%d", apperrors.ErrConfiguration, to, latest)
	}
	if current < 0 || current > latest {
		return Plan{}, fmt.Errorf("%w: schema is at version %d but migrations are only configured up to %d", apperrors.ErrConfiguration, current, latest)
	}

	plan := Plan{From: current, To: to, Direction: DirectionNone}
	switch {
	case current < to:
		plan.Direction = DirectionUp
		for _, s := range sorted {
			if s.Version > current && s.Version <= to {
				plan.Steps = append(plan.Steps, PlannedStep{Version: s.Version, Script: s.Up, MarkerAfter: s.Version})
			}
		}
	case current > to:
		plan.Direction = DirectionDown
		for i := len(sorted) - 1; i >= 0; i-- {
			s := sorted[i]
			if s.Version > to && s.Version <= current {
				plan.Steps = append(plan.Steps, PlannedStep{Version: s.Version, Script: s.Down, MarkerAfter: s.Version - 1})
			}
		}
	}
	return plan, nil
}

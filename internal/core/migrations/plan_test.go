package migrations

import (
	"testing"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSteps() []Step {
	return []Step{
		{Version: 3, Up: "up3", Down: "down3"},
		{Version: 1, Up: "up1", Down: "down1"},
		{Version: 2, Up: "up2", Down: "down2"},
	}
}

func TestValidateSteps(t *testing.T) {
	tests := []struct {
		name    string
		steps   []Step
		wantErr bool
	}{
		{name: "empty list", steps: nil},
		{name: "unsorted but contiguous", steps: threeSteps()},
		{name: "duplicate version", steps: []Step{{1, "a", "b"}, {1, "c", "d"}}, wantErr: true},
		{name: "zero version", steps: []Step{{0, "a", "b"}}, wantErr: true},
		{name: "negative version", steps: []Step{{-1, "a", "b"}}, wantErr: true},
		{name: "gap", steps: []Step{{1, "a", "b"}, {3, "c", "d"}}, wantErr: true},
		{name: "empty up", steps: []Step{{1, " ", "b"}}, wantErr: true},
		{name: "empty down", steps: []Step{{1, "a", ""}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted, err := ValidateSteps(tt.steps)
			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			for i, s := range sorted {
				assert.Equal(t, i+1, s.Version)
			}
		})
	}
}

func TestValidateSteps_DoesNotMutateInput(t *testing.T) {
	steps := threeSteps()
	_, err := ValidateSteps(steps)
	require.NoError(t, err)
	assert.Equal(t, 3, steps[0].Version)
}

func TestBuildPlan(t *testing.T) {
	sorted, err := ValidateSteps(threeSteps())
	require.NoError(t, err)

	tests := []struct {
		name      string
		current   int
		target    Target
		direction Direction
		steps     []PlannedStep
	}{
		{
			name: "fresh to latest", current: 0, target: Latest(), direction: DirectionUp,
			steps: []PlannedStep{{1, "up1", 1}, {2, "up2", 2}, {3, "up3", 3}},
		},
		{
			name: "partial upgrade stops at target", current: 1, target: Version(2), direction: DirectionUp,
			steps: []PlannedStep{{2, "up2", 2}},
		},
		{
			name: "full downgrade reverses order", current: 3, target: Version(0), direction: DirectionDown,
			steps: []PlannedStep{{3, "down3", 2}, {2, "down2", 1}, {1, "down1", 0}},
		},
		{
			name: "partial downgrade", current: 2, target: Version(1), direction: DirectionDown,
			steps: []PlannedStep{{2, "down2", 1}},
		},
		{name: "already latest", current: 3, target: Latest(), direction: DirectionNone},
		{name: "already at explicit target", current: 2, target: Version(2), direction: DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := BuildPlan(sorted, tt.current, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.direction, plan.Direction)
			assert.Equal(t, tt.steps, plan.Steps)
			assert.Equal(t, tt.current, plan.From)
		})
	}
}

func TestBuildPlan_OutOfRange(t *testing.T) {
	sorted, err := ValidateSteps(threeSteps())
	require.NoError(t, err)

	_, err = BuildPlan(sorted, 0, Version(4))
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	_, err = BuildPlan(sorted, 0, Version(-1))
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	_, err = BuildPlan(sorted, 5, Latest())
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestBuildPlan_EmptyConfiguration(t *testing.T) {
	plan, err := BuildPlan(nil, 0, Latest())
	require.NoError(t, err)
	assert.True(t, plan.IsNoop())
	assert.Equal(t, 0, plan.To)
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("latest")
	require.NoError(t, err)
	assert.True(t, target.IsLatest())

	target, err = ParseTarget("")
	require.NoError(t, err)
	assert.True(t, target.IsLatest())

	target, err = ParseTarget("2")
	require.NoError(t, err)
	assert.Equal(t, Version(2), target)
	assert.Equal(t, "2", target.String())

	_, err = ParseTarget("-1")
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	_, err = ParseTarget("two")
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

// Package migrations evolves the persisted schema between configured versions.
//
// Each step runs in its own transaction together with the version marker
// update. A run is not transactional across steps: when a step fails, the steps
// committed before it stay committed and the marker names the last one.
package migrations

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
)

// Step is one configured schema change and its inverse.
type Step struct {
	Version int    `mapstructure:"version"`
	Up      string `mapstructure:"up"`
	Down    string `mapstructure:"down"`
}

// Schema is the store-specific half of the engine: it owns the version marker
// and executes scripts.
type Schema interface {
	// CurrentVersion reads the persisted marker. A fresh store reports 0.
	CurrentVersion(ctx context.Context) (int, error)

	// ApplyStep executes script and sets the marker to version in a single
	// transaction. Script failures wrap apperrors.ErrMigrationScript; failures
	// writing the marker or committing wrap apperrors.ErrMigrationMarker.
	ApplyStep(ctx context.Context, script string, version int) error
}

// Target is the version a run should end at.
type Target struct {
	version int
	latest  bool
}

// Latest targets the highest configured version.
func Latest() Target { return Target{latest: true} }

// Version targets an explicit version. 0 reverts every step.
func Version(v int) Target { return Target{version: v} }

// IsLatest reports whether t was built with Latest.
func (t Target) IsLatest() bool { return t.latest }

func (t Target) String() string {
	if t.latest {
		return "latest"
	}
	return strconv.Itoa(t.version)
}

// ParseTarget accepts "latest" or a non-negative integer.
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "latest") {
		return Latest(), nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return Target{}, fmt.Errorf("%w: invalid migration target %q", apperrors.ErrConfiguration, s)
	}
	return Version(v), nil
}

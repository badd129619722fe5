package migrations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
)

// Engine runs configured migration steps against a Schema.
// Concurrent runs against the same store must be prevented by the caller.
type Engine struct {
	schema Schema
	steps  []Step
	logger *slog.Logger
}

// Status describes where the schema stands relative to the configuration.
type Status struct {
	Current int
	Latest  int
	Pending []int
}

// NewEngine creates an engine for the given steps. The list is validated on every run.
func NewEngine(schema Schema, steps []Step, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		schema: schema,
		steps:  steps,
		logger: logger.With(slog.String("component", "migrations")),
	}
}

// Migrate moves the schema to target.
//
// The configuration is validated and the current marker read once, before any
// script runs. Each step commits its script and marker together; a failing step
// aborts the run and leaves earlier steps committed.
func (e *Engine) Migrate(ctx context.Context, target Target) error {
	sorted, err := ValidateSteps(e.steps)
	if err != nil {
		return err
	}

	current, err := e.schema.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	plan, err := BuildPlan(sorted, current, target)
	if err != nil {
		return err
	}

	logger := e.logger.With(
		slog.Int("from", plan.From),
		slog.Int("to", plan.To),
		slog.String("direction", string(plan.Direction)),
	)
	if plan.IsNoop() {
		logger.Info("Schema already at target version")
		return nil
	}
	logger.Info("Running migrations", slog.Int("steps", len(plan.Steps)))

	marker := plan.From
	for _, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("migration interrupted at version %d: %w", marker, err)
		}

		start := time.Now()
		// A started step always runs to completion or failure.
		err := e.schema.ApplyStep(context.WithoutCancel(ctx), step.Script, step.MarkerAfter)
		if err != nil {
			logger.Error("Migration step failed",
				slog.Int("version", step.Version),
				slog.Int("schema_version", marker),
				slog.String("error", err.Error()),
			)
			return stepError(step, plan.Direction, err)
		}
		marker = step.MarkerAfter
		logger.Info("Migration step applied",
			slog.Int("version", step.Version),
			slog.Int("schema_version", marker),
			slog.Duration("duration", time.Since(start)),
		)
	}

	logger.Info("Migrations complete", slog.Int("schema_version", marker))
	return nil
}

// Status reports the current marker and the versions Migrate(Latest()) would apply.
func (e *Engine) Status(ctx context.Context) (Status, error) {
	sorted, err := ValidateSteps(e.steps)
	if err != nil {
		return Status{}, err
	}
	current, err := e.schema.CurrentVersion(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("reading schema version: %w", err)
	}

	status := Status{Current: current, Latest: LatestVersion(sorted)}
	plan, err := BuildPlan(sorted, current, Latest())
	if err != nil {
		return status, err
	}
	for _, s := range plan.Steps {
		status.Pending = append(status.Pending, s.Version)
	}
	return status, nil
}

func stepError(step PlannedStep, dir Direction, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrMigrationScript), errors.Is(err, apperrors.ErrMigrationMarker):
		return fmt.Errorf("migration v%d (%s): %w", step.Version, dir, err)
	default:
		return fmt.Errorf("migration v%d (%s): %w: %w", step.Version, dir, apperrors.ErrStore, err)
	}
}

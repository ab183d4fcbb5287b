package runner

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/yourorg/connect-profile-updater/internal/input"
	"github.com/yourorg/connect-profile-updater/internal/metrics"
)

// ProfileService is the resolve-then-update capability the runner drives.
// connectapi.Client implements it; tests inject fakes.
type ProfileService interface {
	ResolveUserID(ctx context.Context, username string) (string, error)
	UpdateSecurityProfile(ctx context.Context, userID, profileID string) error
}

// Summary aggregates row outcomes for the whole run. Skipped rows are the
// malformed ones that were never attempted.
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// Attempted is the number of rows that reached a terminal SUCCESS or FAILURE
// state.
func (s Summary) Attempted() int { return s.Succeeded + s.Failed }

// Runner sequences the per-row resolve-then-update workflow: strictly in file
// order, one row at a time, each row reaching SUCCESS or FAILURE before the
// next begins. Per-row errors never escape a row; only context cancellation
// or a reader fault aborts the run early.
type Runner struct {
	svc ProfileService
	log *zap.Logger
}

func New(svc ProfileService, log *zap.Logger) *Runner {
	return &Runner{svc: svc, log: log}
}

// Run consumes rows until EOF and returns the aggregate summary. The returned
// error is non-nil only for run-aborting faults; row failures are reflected
// in Summary.Failed.
func (r *Runner) Run(ctx context.Context, rows *input.Reader) (Summary, error) {
	var sum Summary
	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var skip *input.SkipError
		if errors.As(err, &skip) {
			r.log.Warn("skipping row",
				zap.Int("row", skip.Line),
				zap.String("reason", skip.Reason),
				zap.Strings("fields", skip.Fields))
			sum.Skipped++
			metrics.RowsSkipped.Inc()
			continue
		}
		if err != nil {
			return sum, err
		}
		r.processRow(ctx, row, &sum)
	}

	if rows.Records() == 0 {
		r.log.Warn("CSV file is empty")
	}
	r.log.Info("run summary",
		zap.Int("total_processed", sum.Attempted()),
		zap.Int("successful_updates", sum.Succeeded),
		zap.Int("failed_updates", sum.Failed),
		zap.Int("skipped_rows", sum.Skipped))
	return sum, nil
}

func (r *Runner) processRow(ctx context.Context, row input.Row, sum *Summary) {
	userID, err := r.svc.ResolveUserID(ctx, row.Username)
	if err != nil {
		r.log.Error("could not find user",
			zap.String("username", row.Username),
			zap.Error(err))
		sum.Failed++
		metrics.RowsFailed.Inc()
		return
	}

	if err := r.svc.UpdateSecurityProfile(ctx, userID, row.SecurityProfileID); err != nil {
		r.log.Error("update failed",
			zap.String("username", row.Username),
			zap.String("user_id", userID),
			zap.String("security_profile_id", row.SecurityProfileID),
			zap.Error(err))
		sum.Failed++
		metrics.RowsFailed.Inc()
		return
	}

	r.log.Info("updated user security profile",
		zap.String("username", row.Username),
		zap.String("user_id", userID),
		zap.String("security_profile_id", row.SecurityProfileID))
	sum.Succeeded++
	metrics.RowsSucceeded.Inc()
}

// Package runner drives the invoice workflow over a decoded batch. Records
// are processed strictly sequentially in file order; a failed record is
// logged with its domain-error kind and the run continues with the next one.
package runner

import (
	"context"

	"billrun/internal/apierror"
	"billrun/internal/model"
	"billrun/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Summary reports the outcome of one batch run.
type Summary struct {
	Processed int
	Failed    int
}

type Runner struct {
	svc service.InvoiceService
}

func New(svc service.InvoiceService) *Runner {
	return &Runner{svc: svc}
}

// Run processes every record and returns the tally. It stops early only on
// context cancellation; a per-record failure never aborts the batch.
func (r *Runner) Run(ctx context.Context, records []model.InvoiceRecord) Summary {
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()

	var sum Summary
	for i, rec := range records {
		if ctx.Err() != nil {
			logger.Warn().Int("remaining", len(records)-i).Msg("run cancelled")
			break
		}
		rl := logger.With().
			Int("row", i+1).
			Str("customer_no", rec.CustomerNumber).
			Str("invoice_no", rec.InvoiceNumber).
			Logger()

		if err := r.svc.ProcessRecord(ctx, rec); err != nil {
			ev := rl.Error().Err(err)
			if kind, ok := apierror.KindOf(err); ok {
				ev = ev.Str("error_kind", kind.String())
			}
			ev.Msg("record aborted")
			sum.Failed++
			continue
		}
		sum.Processed++
	}

	logger.Info().
		Int("processed", sum.Processed).
		Int("failed", sum.Failed).
		Msg("batch finished")
	return sum
}

// DryRun exercises the pure derivations for every record without any
// network I/O, reporting rows that would abort before the first API call.
func DryRun(records []model.InvoiceRecord) Summary {
	var sum Summary
	for i, rec := range records {
		if err := service.CheckRecord(rec); err != nil {
			log.Error().
				Int("row", i+1).
				Str("customer_no", rec.CustomerNumber).
				Err(err).
				Msg("record invalid")
			sum.Failed++
			continue
		}
		sum.Processed++
	}
	log.Info().
		Int("valid", sum.Processed).
		Int("invalid", sum.Failed).
		Msg("validation finished")
	return sum
}

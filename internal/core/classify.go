package core

import (
	"context"
	"log/slog"
)

// Classify derives the payment status of one client. Worst status wins: a
// single overdue installment marks the whole client delinquent no matter how
// much is already paid. Only bucket counts are inspected; amounts feed
// aggregation, not classification.
//
// The priority order is the one canonical place this rule lives. Call sites
// must consume the precomputed Status instead of re-deriving it from buckets.
func Classify(r ClientRecord) ClassifiedClient {
	var status PaymentStatus
	switch {
	case r.Overdue.Count > 0:
		status = StatusDelinquent
	case r.Upcoming.Count > 0:
		status = StatusUpcoming
	case r.Paid.Count > 0:
		status = StatusOnTime
	default:
		status = StatusNoInstallments
	}
	return ClassifiedClient{ClientRecord: r, Status: status}
}

// ClassifyAll validates, normalizes and classifies a batch of raw records.
// Malformed records are dropped and logged rather than failing the whole
// batch. Input order is preserved.
func ClassifyAll(ctx context.Context, records []ClientRecord) []ClassifiedClient {
	out := make([]ClassifiedClient, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			slog.WarnContext(ctx, "Dropping malformed client record",
				"client_id", r.ClientID,
				"display_name", r.DisplayName,
				"error", err)
			continue
		}
		out = append(out, Classify(r.Normalized()))
	}
	return out
}

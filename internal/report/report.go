// Package report exports client cohorts to external destinations.
package report

import (
	"context"
	"time"

	"carteira/internal/core"
)

// Report is a generated cohort with its identity and timestamp.
type Report struct {
	ID          string      `json:"id"`
	SellerID    string      `json:"sellerId"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Cohort      core.Cohort `json:"cohort"`
}

// Writer is the port for outbound report destinations.
type Writer interface {
	Write(ctx context.Context, rep Report) error
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"carteira/internal/core"
	"carteira/internal/report"
)

// ReportService builds client cohorts and exports them.
type ReportService struct {
	dashboard *DashboardService
	writer    report.Writer
	now       func() time.Time
}

func NewReportService(dashboard *DashboardService, writer report.Writer) *ReportService {
	return &ReportService{
		dashboard: dashboard,
		writer:    writer,
		now:       time.Now,
	}
}

// Generate selects the cohort for the given kind from the seller's current
// snapshot and exports it through the configured writer.
func (s *ReportService) Generate(ctx context.Context, sellerID string, kind core.ReportKind) (report.Report, error) {
	snap, _, err := s.dashboard.Metrics(ctx, sellerID)
	if err != nil {
		return report.Report{}, fmt.Errorf("load snapshot for report: %w", err)
	}

	rep := report.Report{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		GeneratedAt: s.now(),
		Cohort:      core.SelectCohort(snap.Clients, kind),
	}

	if s.writer != nil {
		if err := s.writer.Write(ctx, rep); err != nil {
			return report.Report{}, fmt.Errorf("export report: %w", err)
		}
	}

	slog.InfoContext(ctx, "Report generated",
		"report_id", rep.ID,
		"kind", kind,
		"seller_id", sellerID,
		"members", len(rep.Cohort.Members))

	return rep, nil
}

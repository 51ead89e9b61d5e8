// Package worker periodically rebuilds portfolio metrics for every seller
// and publishes delinquency alerts.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"carteira/internal/amqp"
	"carteira/internal/core"
	"carteira/internal/services"
)

// AlertPublisher publishes portfolio events. May be nil when AMQP is not
// configured.
type AlertPublisher interface {
	PublishPortfolioRefreshed(ctx context.Context, msg *amqp.PortfolioRefreshedMessage) error
	PublishDelinquencyAlert(ctx context.Context, msg *amqp.DelinquencyAlertMessage) error
}

type RefreshWorker struct {
	fetcher     services.PortfolioFetcher
	alerts      AlertPublisher
	sellers     []string
	concurrency int
}

func NewRefreshWorker(fetcher services.PortfolioFetcher, alerts AlertPublisher, sellers []string, concurrency int) *RefreshWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &RefreshWorker{
		fetcher:     fetcher,
		alerts:      alerts,
		sellers:     sellers,
		concurrency: concurrency,
	}
}

// RunOnce refreshes every seller's portfolio, bounded by the configured
// concurrency. A failing seller does not stop the others; the first error is
// returned after all sellers were attempted.
func (w *RefreshWorker) RunOnce(ctx context.Context) error {
	if len(w.sellers) == 0 {
		slog.WarnContext(ctx, "No sellers configured, nothing to refresh")
		return nil
	}

	g := new(errgroup.Group)
	g.SetLimit(w.concurrency)

	for _, sellerID := range w.sellers {
		g.Go(func() error {
			if err := w.refreshSeller(ctx, sellerID); err != nil {
				slog.ErrorContext(ctx, "Seller refresh failed",
					"seller_id", sellerID,
					"error", err)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh run: %w", err)
	}

	slog.InfoContext(ctx, "Refresh run completed", "sellers", len(w.sellers))
	return nil
}

func (w *RefreshWorker) refreshSeller(ctx context.Context, sellerID string) error {
	records, err := w.fetcher.FetchPortfolio(ctx, sellerID)
	if err != nil {
		return fmt.Errorf("fetch portfolio: %w", err)
	}

	clients := core.ClassifyAll(ctx, records)
	metrics := core.Aggregate(clients)

	slog.InfoContext(ctx, "Portfolio refreshed",
		"seller_id", sellerID,
		"clients", len(clients),
		"delinquent", metrics.CountDelinquent,
		"rate_pct", metrics.DelinquencyRatePct)

	if w.alerts == nil {
		return nil
	}

	msg := amqp.NewPortfolioRefreshedMessage(sellerID, len(clients), metrics.DelinquencyRatePct)
	if err := w.alerts.PublishPortfolioRefreshed(ctx, msg); err != nil {
		return fmt.Errorf("publish refresh event: %w", err)
	}

	for _, c := range clients {
		if c.Status != core.StatusDelinquent {
			continue
		}
		alert := amqp.NewDelinquencyAlertMessage(sellerID, c)
		if err := w.alerts.PublishDelinquencyAlert(ctx, alert); err != nil {
			return fmt.Errorf("publish delinquency alert for %s: %w", c.ClientID, err)
		}
	}

	return nil
}

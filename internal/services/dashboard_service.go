package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"carteira/internal/amqp"
	"carteira/internal/cache"
	"carteira/internal/core"
)

// PortfolioFetcher pulls raw client records from the route API.
type PortfolioFetcher interface {
	FetchPortfolio(ctx context.Context, sellerID string) ([]core.ClientRecord, error)
}

// EventPublisher announces snapshot refreshes. May be nil when AMQP is not
// configured.
type EventPublisher interface {
	PublishPortfolioRefreshed(ctx context.Context, msg *amqp.PortfolioRefreshedMessage) error
}

// DashboardService orchestrates the dashboard flow: fetch, classify,
// aggregate, cache, revalidate.
type DashboardService struct {
	fetcher   PortfolioFetcher
	slot      *cache.Slot[Snapshot]
	refresher *cache.Refresher[Snapshot]
	events    EventPublisher
	now       func() time.Time
}

func NewDashboardService(fetcher PortfolioFetcher, slot *cache.Slot[Snapshot], events EventPublisher) *DashboardService {
	return &DashboardService{
		fetcher:   fetcher,
		slot:      slot,
		refresher: cache.NewRefresher(slot),
		events:    events,
		now:       time.Now,
	}
}

// Metrics returns the dashboard snapshot for the seller. A fresh cache entry
// is served immediately while a background refresh revalidates it; on a miss
// the fetch is blocking. The boolean reports whether the snapshot came from
// cache.
func (s *DashboardService) Metrics(ctx context.Context, sellerID string) (Snapshot, bool, error) {
	if snap, ok := s.slot.Get(ctx, sellerID); ok {
		// Detached context: the refresh outlives the request.
		s.refresher.Trigger(context.WithoutCancel(ctx), sellerID, s.fetchFunc(sellerID))
		return snap, true, nil
	}

	snap, err := s.buildFresh(ctx, sellerID)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("build dashboard snapshot: %w", err)
	}

	s.slot.Put(ctx, snap, sellerID)
	return snap, false, nil
}

// Clients returns the seller's clients after status and name filtering.
func (s *DashboardService) Clients(ctx context.Context, sellerID string, status core.StatusFilter, search string) ([]core.ClassifiedClient, error) {
	snap, _, err := s.Metrics(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return core.Filter(snap.Clients, status, search), nil
}

// SetActiveSeller records the current session owner so refreshes started for
// a previous seller discard their results.
func (s *DashboardService) SetActiveSeller(sellerID string) {
	s.refresher.SetOwner(sellerID)
}

// Refresh forces a blocking rebuild of the snapshot, bypassing the cache.
func (s *DashboardService) Refresh(ctx context.Context, sellerID string) (Snapshot, error) {
	snap, err := s.buildFresh(ctx, sellerID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("refresh dashboard snapshot: %w", err)
	}
	s.slot.Put(ctx, snap, sellerID)
	return snap, nil
}

func (s *DashboardService) fetchFunc(sellerID string) cache.FetchFunc[Snapshot] {
	return func(ctx context.Context) (Snapshot, error) {
		return s.buildFresh(ctx, sellerID)
	}
}

func (s *DashboardService) buildFresh(ctx context.Context, sellerID string) (Snapshot, error) {
	records, err := s.fetcher.FetchPortfolio(ctx, sellerID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch portfolio: %w", err)
	}

	clients := core.ClassifyAll(ctx, records)
	snap := BuildSnapshot(sellerID, clients, s.now())

	s.publishRefreshed(ctx, snap)
	return snap, nil
}

func (s *DashboardService) publishRefreshed(ctx context.Context, snap Snapshot) {
	if s.events == nil {
		return
	}

	msg := amqp.NewPortfolioRefreshedMessage(snap.SellerID, len(snap.Clients), snap.Metrics.DelinquencyRatePct)
	if err := s.events.PublishPortfolioRefreshed(ctx, msg); err != nil {
		// The snapshot is already built; event delivery must not fail it.
		slog.ErrorContext(ctx, "Failed to publish refresh event",
			"seller_id", snap.SellerID,
			"error", err)
	}
}

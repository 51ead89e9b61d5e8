package services

import (
	"sort"
	"time"

	"carteira/internal/core"
)

const topDebtorLimit = 5

// Snapshot is the full dashboard payload served to the app and cached
// between refreshes.
type Snapshot struct {
	SellerID    string                  `json:"sellerId"`
	GeneratedAt time.Time               `json:"generatedAt"`
	Clients     []core.ClassifiedClient `json:"clients"`
	Metrics     core.PortfolioMetrics   `json:"metrics"`
	Financial   FinancialSummary        `json:"financial"`
	Alerts      AlertSummary            `json:"alerts"`
}

// FinancialSummary breaks the portfolio down by money state.
type FinancialSummary struct {
	GrossTotal core.Money `json:"grossTotal"`
	Received   core.Money `json:"received"`
	Overdue    core.Money `json:"overdue"`
	Pending    core.Money `json:"pending"`
}

// AlertSummary carries the attention-demanding slice of the portfolio.
type AlertSummary struct {
	DelinquentClients int      `json:"delinquentClients"`
	DueToday          int      `json:"dueToday"`
	TopDebtors        []Debtor `json:"topDebtors"`
}

// Debtor is one overdue client in the top-debtor ranking.
type Debtor struct {
	ClientID     string     `json:"clientId"`
	DisplayName  string     `json:"displayName"`
	OverdueCount int        `json:"overdueCount"`
	OverdueTotal core.Money `json:"overdueTotal"`
}

// BuildSnapshot derives the dashboard payload from classified clients.
func BuildSnapshot(sellerID string, clients []core.ClassifiedClient, now time.Time) Snapshot {
	metrics := core.Aggregate(clients)

	snap := Snapshot{
		SellerID:    sellerID,
		GeneratedAt: now,
		Clients:     clients,
		Metrics:     metrics,
		Financial: FinancialSummary{
			GrossTotal: metrics.TotalPaid.Add(metrics.TotalOverdue).Add(metrics.TotalUpcoming),
			Received:   metrics.TotalPaid,
			Overdue:    metrics.TotalOverdue,
			Pending:    metrics.TotalUpcoming,
		},
	}

	snap.Alerts = buildAlerts(clients, now)
	return snap
}

func buildAlerts(clients []core.ClassifiedClient, now time.Time) AlertSummary {
	var alerts AlertSummary

	year, month, day := now.Date()
	var debtors []Debtor
	for _, c := range clients {
		if c.Status == core.StatusDelinquent {
			alerts.DelinquentClients++
			debtors = append(debtors, Debtor{
				ClientID:     c.ClientID,
				DisplayName:  c.DisplayName,
				OverdueCount: c.Overdue.Count,
				OverdueTotal: c.Overdue.TotalAmount,
			})
		}
		for _, inst := range c.Upcoming.Items {
			y, m, d := inst.DueDate.Date()
			if y == year && m == month && d == day {
				alerts.DueToday++
			}
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].OverdueTotal.Cents > debtors[j].OverdueTotal.Cents
	})
	if len(debtors) > topDebtorLimit {
		debtors = debtors[:topDebtorLimit]
	}
	alerts.TopDebtors = debtors

	return alerts
}

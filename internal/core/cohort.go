package core

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	ReportFull       ReportKind = "full"
	ReportReceived   ReportKind = "received"
	ReportUpcoming   ReportKind = "upcoming"
	ReportDelinquent ReportKind = "delinquent"
)

type (
	// ReportKind names a report cohort.
	ReportKind string

	// Cohort is a named subset of clients with the metrics that belong on
	// its report. The selector emits no markup and performs no I/O; an
	// external renderer turns this into a document.
	Cohort struct {
		Kind    ReportKind         `json:"reportKind"`
		Members []ClassifiedClient `json:"members"`
		Metrics PortfolioMetrics   `json:"metrics"`
	}
)

// ParseReportKind maps a path value to a report kind.
func ParseReportKind(s string) (ReportKind, bool) {
	switch ReportKind(s) {
	case ReportFull, ReportReceived, ReportUpcoming, ReportDelinquent:
		return ReportKind(s), true
	}
	return "", false
}

// collator orders names the way a pt-BR speaker expects (case- and
// accent-aware). Collators are not safe for concurrent use, so each sort
// builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese)
}

// SelectCohort picks the clients belonging on a report and recomputes the
// metrics for that subset. Members are sorted by display name using pt-BR
// collation.
//
// Received and Upcoming carry cohort-local metrics: the report's totals
// describe only the printed names, independent of the screen-level figures.
// The Delinquent report keeps cohort-local counts and totals but takes its
// delinquency rate from the whole portfolio: that report describes the
// portfolio's exposure, not just the clients listed on it.
func SelectCohort(clients []ClassifiedClient, kind ReportKind) Cohort {
	members := make([]ClassifiedClient, 0, len(clients))
	for _, c := range clients {
		if memberOf(c, kind) {
			members = append(members, c)
		}
	}

	col := newCollator()
	sort.SliceStable(members, func(i, j int) bool {
		return col.CompareString(members[i].DisplayName, members[j].DisplayName) < 0
	})

	metrics := Aggregate(members)
	if kind == ReportDelinquent {
		global := Aggregate(clients)
		metrics.DelinquencyRatePct = global.DelinquencyRatePct
	}

	return Cohort{Kind: kind, Members: members, Metrics: metrics}
}

func memberOf(c ClassifiedClient, kind ReportKind) bool {
	switch kind {
	case ReportReceived:
		return c.Paid.Count > 0 && c.Overdue.Count == 0 && c.Upcoming.Count == 0
	case ReportUpcoming:
		return c.Upcoming.Count > 0 && c.Overdue.Count == 0
	case ReportDelinquent:
		return c.Overdue.Count > 0
	default:
		return true
	}
}

package core

// Aggregate folds a classified client list into portfolio-level metrics.
//
// Counts bump exactly one status counter per client, taken from the
// precomputed Status. Monetary totals sum every client's buckets regardless
// of status: a delinquent client's paid history still counts toward
// TotalPaid.
//
// The delinquency rate is overdue over realized amount, i.e.
// overdue/(paid+overdue)*100. Upcoming amounts are excluded from the
// denominator: the rate reflects realized payment behavior, not pending
// obligations. Empty input yields all-zero metrics with rate 0.
func Aggregate(clients []ClassifiedClient) PortfolioMetrics {
	var m PortfolioMetrics
	for _, c := range clients {
		switch c.Status {
		case StatusOnTime:
			m.CountOnTime++
		case StatusUpcoming:
			m.CountUpcoming++
		case StatusDelinquent:
			m.CountDelinquent++
		default:
			m.CountNoInstallments++
		}
		m.TotalPaid = m.TotalPaid.Add(c.Paid.TotalAmount)
		m.TotalOverdue = m.TotalOverdue.Add(c.Overdue.TotalAmount)
		m.TotalUpcoming = m.TotalUpcoming.Add(c.Upcoming.TotalAmount)
	}
	m.DelinquencyRatePct = DelinquencyRate(m.TotalPaid, m.TotalOverdue)
	return m
}

// DelinquencyRate computes overdue/(paid+overdue)*100, returning 0 for an
// empty base instead of NaN.
func DelinquencyRate(paid, overdue Money) float64 {
	base := paid.Cents + overdue.Cents
	if base == 0 {
		return 0
	}
	return float64(overdue.Cents) / float64(base) * 100
}

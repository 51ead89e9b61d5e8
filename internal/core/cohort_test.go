package core

import (
	"math"
	"reflect"
	"sort"
	"testing"
)

func cohortFixture() []ClassifiedClient {
	return []ClassifiedClient{
		// paid only
		Classify(record("c1", "Zélia Campos", bucket(3, 30000), bucket(0, 0), bucket(0, 0))),
		// delinquent with paid history
		Classify(record("c2", "André Braga", bucket(2, 20000), bucket(1, 10000), bucket(0, 0))),
		// upcoming, no overdue
		Classify(record("c3", "Beatriz Nunes", bucket(1, 5000), bucket(0, 0), bucket(2, 12000))),
		// upcoming AND overdue: excluded from Upcoming report
		Classify(record("c4", "Caio Prado", bucket(0, 0), bucket(2, 8000), bucket(1, 4000))),
		// nothing at all
		Classify(record("c5", "Dora Matos", bucket(0, 0), bucket(0, 0), bucket(0, 0))),
	}
}

func TestSelectCohort_Full(t *testing.T) {
	clients := cohortFixture()
	got := SelectCohort(clients, ReportFull)

	if len(got.Members) != len(clients) {
		t.Fatalf("members = %d, want %d", len(got.Members), len(clients))
	}

	// Round-trip: full cohort is the input, sorted by name, nothing lost or
	// duplicated.
	wantIDs := ids(clients)
	gotIDs := ids(got.Members)
	sort.Strings(wantIDs)
	sorted := append([]string(nil), gotIDs...)
	sort.Strings(sorted)
	if !reflect.DeepEqual(sorted, wantIDs) {
		t.Errorf("members ids = %v, want permutation of %v", gotIDs, wantIDs)
	}

	wantOrder := []string{"c2", "c3", "c4", "c5", "c1"} // André, Beatriz, Caio, Dora, Zélia
	if !reflect.DeepEqual(gotIDs, wantOrder) {
		t.Errorf("sort order = %v, want %v", gotIDs, wantOrder)
	}

	if got.Metrics.TotalPaid.Cents != 55000 {
		t.Errorf("TotalPaid = %d, want 55000", got.Metrics.TotalPaid.Cents)
	}
}

func TestSelectCohort_Received(t *testing.T) {
	got := SelectCohort(cohortFixture(), ReportReceived)

	if !reflect.DeepEqual(ids(got.Members), []string{"c1"}) {
		t.Fatalf("members = %v, want [c1]", ids(got.Members))
	}

	// Metrics are cohort-local, not the portfolio's.
	if got.Metrics.TotalPaid.Cents != 30000 {
		t.Errorf("TotalPaid = %d, want 30000 (cohort-local)", got.Metrics.TotalPaid.Cents)
	}
	if got.Metrics.DelinquencyRatePct != 0 {
		t.Errorf("rate = %v, want 0", got.Metrics.DelinquencyRatePct)
	}
}

func TestSelectCohort_Upcoming(t *testing.T) {
	got := SelectCohort(cohortFixture(), ReportUpcoming)

	// c4 has upcoming installments but also overdue ones, so it is out.
	if !reflect.DeepEqual(ids(got.Members), []string{"c3"}) {
		t.Fatalf("members = %v, want [c3]", ids(got.Members))
	}
	if got.Metrics.TotalUpcoming.Cents != 12000 {
		t.Errorf("TotalUpcoming = %d, want 12000", got.Metrics.TotalUpcoming.Cents)
	}
}

func TestSelectCohort_DelinquentUsesGlobalRate(t *testing.T) {
	clients := cohortFixture()
	got := SelectCohort(clients, ReportDelinquent)

	if !reflect.DeepEqual(ids(got.Members), []string{"c2", "c4"}) {
		t.Fatalf("members = %v, want [c2 c4]", ids(got.Members))
	}

	// Counts and totals describe the cohort...
	if got.Metrics.CountDelinquent != 2 {
		t.Errorf("CountDelinquent = %d, want 2", got.Metrics.CountDelinquent)
	}
	if got.Metrics.TotalOverdue.Cents != 18000 {
		t.Errorf("TotalOverdue = %d, want 18000", got.Metrics.TotalOverdue.Cents)
	}

	// ...but the rate reflects the whole portfolio: overdue 18000 over
	// paid+overdue 55000+18000.
	wantRate := 18000.0 / 73000.0 * 100
	if math.Abs(got.Metrics.DelinquencyRatePct-wantRate) > 1e-9 {
		t.Errorf("rate = %v, want global %v", got.Metrics.DelinquencyRatePct, wantRate)
	}

	// A cohort-local rate would be higher; make sure we did not compute it.
	cohortRate := 18000.0 / (20000.0 + 18000.0) * 100
	if math.Abs(got.Metrics.DelinquencyRatePct-cohortRate) < 1e-9 {
		t.Errorf("rate is cohort-local (%v), want global", cohortRate)
	}
}

func TestSelectCohort_TwoClientScenario(t *testing.T) {
	// A delinquent, B on time: members only [A] but the rate covers both.
	a := Classify(record("a", "Alice", bucket(2, 20000), bucket(1, 10000), bucket(0, 0)))
	b := Classify(record("b", "Bento", bucket(1, 30000), bucket(0, 0), bucket(0, 0)))

	got := SelectCohort([]ClassifiedClient{a, b}, ReportDelinquent)

	if !reflect.DeepEqual(ids(got.Members), []string{"a"}) {
		t.Fatalf("members = %v, want [a]", ids(got.Members))
	}
	wantRate := 10000.0 / 60000.0 * 100
	if math.Abs(got.Metrics.DelinquencyRatePct-wantRate) > 1e-9 {
		t.Errorf("rate = %v, want %v over [a b] totals", got.Metrics.DelinquencyRatePct, wantRate)
	}
}

func TestParseReportKind(t *testing.T) {
	for _, valid := range []string{"full", "received", "upcoming", "delinquent"} {
		if _, ok := ParseReportKind(valid); !ok {
			t.Errorf("ParseReportKind(%q) not ok", valid)
		}
	}
	if _, ok := ParseReportKind("completo"); ok {
		t.Error("ParseReportKind accepted unknown kind")
	}
}

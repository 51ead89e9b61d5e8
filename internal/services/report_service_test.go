package services

import (
	"context"
	"errors"
	"testing"

	"carteira/internal/core"
	"carteira/internal/report"
)

func TestReportService_Generate(t *testing.T) {
	fetcher := &fakeFetcher{records: testRecords()}
	dashboard := newTestService(fetcher, nil)
	writer := report.NewMemoryWriter()
	svc := NewReportService(dashboard, writer)

	rep, err := svc.Generate(context.Background(), "seller1", core.ReportDelinquent)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if rep.ID == "" {
		t.Error("report ID not assigned")
	}
	if rep.SellerID != "seller1" || rep.Cohort.Kind != core.ReportDelinquent {
		t.Errorf("report = %+v", rep)
	}
	if len(rep.Cohort.Members) != 1 || rep.Cohort.Members[0].ClientID != "c2" {
		t.Errorf("cohort members = %+v, want just c2", rep.Cohort.Members)
	}

	written := writer.Reports()
	if len(written) != 1 || written[0].ID != rep.ID {
		t.Errorf("written reports = %+v", written)
	}
}

func TestReportService_GenerateDistinctIDs(t *testing.T) {
	fetcher := &fakeFetcher{records: testRecords()}
	dashboard := newTestService(fetcher, nil)
	svc := NewReportService(dashboard, report.NewMemoryWriter())

	a, err := svc.Generate(context.Background(), "seller1", core.ReportFull)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := svc.Generate(context.Background(), "seller1", core.ReportFull)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a.ID == b.ID {
		t.Error("consecutive reports share an ID")
	}
}

func TestReportService_NilWriter(t *testing.T) {
	fetcher := &fakeFetcher{records: testRecords()}
	dashboard := newTestService(fetcher, nil)
	svc := NewReportService(dashboard, nil)

	rep, err := svc.Generate(context.Background(), "seller1", core.ReportReceived)
	if err != nil {
		t.Fatalf("Generate without writer: %v", err)
	}
	if len(rep.Cohort.Members) != 1 || rep.Cohort.Members[0].ClientID != "c1" {
		t.Errorf("cohort members = %+v, want just c1", rep.Cohort.Members)
	}
}

func TestReportService_UpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{}
	dashboard := newTestService(fetcher, nil)
	svc := NewReportService(dashboard, report.NewMemoryWriter())

	fetcher.mu.Lock()
	fetcher.err = errors.New("route API down")
	fetcher.mu.Unlock()

	if _, err := svc.Generate(context.Background(), "seller1", core.ReportFull); err == nil {
		t.Fatal("Generate = nil error, want upstream failure")
	}
}

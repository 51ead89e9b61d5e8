package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_FetchPortfolio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/portfolio" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["sellerId"] != "seller1" {
			t.Errorf("sellerId = %s, want seller1", req["sellerId"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"clientId": "c1",
				"displayName": "Maria",
				"contactPhone": "11999990000",
				"paidBucket": {"count": 2, "totalAmount": 150.50},
				"overdueBucket": {"count": 0, "totalAmount": 0},
				"upcomingBucket": {"count": 1, "totalAmount": 80}
			},
			{
				"clientId": "c2",
				"displayName": "João",
				"paidBucket": {"count": 0, "totalAmount": 0},
				"overdueBucket": {"count": 1, "totalAmount": 30.25},
				"upcomingBucket": {"count": 0, "totalAmount": 0}
			}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	records, err := client.FetchPortfolio(context.Background(), "seller1")
	if err != nil {
		t.Fatalf("FetchPortfolio: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if records[0].ClientID != "c1" || records[0].Paid.TotalAmount.Cents != 15050 {
		t.Errorf("first record = %+v", records[0])
	}
	// contactPhone is optional on the wire.
	if records[1].ContactPhone != "" {
		t.Errorf("ContactPhone = %q, want empty", records[1].ContactPhone)
	}
	if records[1].Overdue.TotalAmount.Cents != 3025 {
		t.Errorf("overdue cents = %d, want 3025", records[1].Overdue.TotalAmount.Cents)
	}
}

func TestClient_FetchPortfolioUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "route service down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.FetchPortfolio(context.Background(), "seller1")
	if err == nil {
		t.Fatal("FetchPortfolio = nil error, want failure")
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Errorf("error = %v, want status 502 mention", err)
	}
}

func TestClient_FetchPortfolioBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	if _, err := client.FetchPortfolio(context.Background(), "seller1"); err == nil {
		t.Fatal("FetchPortfolio = nil error, want decode failure")
	}
}

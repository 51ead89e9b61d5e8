package core

import (
	"errors"
	"testing"
)

// bucket builds a summary-only bucket (no items), the common wire shape.
func bucket(count int, totalCents int64) InstallmentBucket {
	return InstallmentBucket{Count: count, TotalAmount: Money{Cents: totalCents}}
}

func record(id, name string, paid, overdue, upcoming InstallmentBucket) ClientRecord {
	return ClientRecord{
		ClientID:    id,
		DisplayName: name,
		Paid:        paid,
		Overdue:     overdue,
		Upcoming:    upcoming,
	}
}

func TestClientRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rec     ClientRecord
		wantErr error
	}{
		{
			name: "all buckets empty is valid",
			rec:  record("c1", "Ana", bucket(0, 0), bucket(0, 0), bucket(0, 0)),
		},
		{
			name:    "empty client id",
			rec:     record("  ", "Ana", bucket(0, 0), bucket(0, 0), bucket(0, 0)),
			wantErr: ErrEmptyClientID,
		},
		{
			name:    "negative count",
			rec:     record("c1", "Ana", bucket(-1, 0), bucket(0, 0), bucket(0, 0)),
			wantErr: ErrNegativeCount,
		},
		{
			name:    "negative total",
			rec:     record("c1", "Ana", bucket(1, -100), bucket(0, 0), bucket(0, 0)),
			wantErr: ErrNegativeAmount,
		},
		{
			name: "negative item amount",
			rec: record("c1", "Ana", InstallmentBucket{
				Count:       1,
				TotalAmount: Money{Cents: 100},
				Items:       []Installment{{Amount: Money{Cents: -100}}},
			}, bucket(0, 0), bucket(0, 0)),
			wantErr: ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClientRecord_Normalized(t *testing.T) {
	items := []Installment{
		{Amount: Money{Cents: 5000}, DueDate: NewDate(2025, 3, 10)},
		{Amount: Money{Cents: 7500}, DueDate: NewDate(2025, 4, 10)},
	}

	t.Run("drifted figures are recomputed from items", func(t *testing.T) {
		rec := record("c1", "Ana", InstallmentBucket{
			Count:       5, // wrong on purpose
			TotalAmount: Money{Cents: 1},
			Items:       items,
		}, bucket(0, 0), bucket(0, 0))

		got := rec.Normalized()
		if got.Paid.Count != 2 {
			t.Errorf("Count = %d, want 2", got.Paid.Count)
		}
		if got.Paid.TotalAmount.Cents != 12500 {
			t.Errorf("TotalAmount = %d, want 12500", got.Paid.TotalAmount.Cents)
		}
	})

	t.Run("summary-only bucket keeps declared figures", func(t *testing.T) {
		rec := record("c1", "Ana", bucket(3, 9000), bucket(0, 0), bucket(0, 0))
		got := rec.Normalized()
		if got.Paid.Count != 3 || got.Paid.TotalAmount.Cents != 9000 {
			t.Errorf("got %+v, want declared count 3, total 9000", got.Paid)
		}
	})

	t.Run("source record is untouched", func(t *testing.T) {
		rec := record("c1", "Ana", InstallmentBucket{Count: 9, Items: items}, bucket(0, 0), bucket(0, 0))
		_ = rec.Normalized()
		if rec.Paid.Count != 9 {
			t.Errorf("source Count mutated to %d", rec.Paid.Count)
		}
	})
}

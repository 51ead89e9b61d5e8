package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusOnTime         PaymentStatus = "on_time"
	StatusUpcoming       PaymentStatus = "upcoming"
	StatusDelinquent     PaymentStatus = "delinquent"
	StatusNoInstallments PaymentStatus = "no_installments"
)

type (
	// PaymentStatus is the mutually exclusive payment state of one client.
	PaymentStatus string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Installment is a single payment obligation. Immutable once fetched.
	Installment struct {
		Amount  Money `json:"amount"`
		DueDate Date  `json:"dueDate"`
	}

	// InstallmentBucket groups the installments of one category (paid,
	// overdue or upcoming). Count and TotalAmount must agree with Items
	// when Items are present; summary-only buckets carry no Items and are
	// trusted as declared.
	InstallmentBucket struct {
		Count       int           `json:"count"`
		TotalAmount Money         `json:"totalAmount"`
		Items       []Installment `json:"items,omitempty"`
	}

	// ClientRecord is the raw input unit from the remote route API.
	ClientRecord struct {
		ClientID     string            `json:"clientId"`
		DisplayName  string            `json:"displayName"`
		ContactPhone string            `json:"contactPhone,omitempty"`
		Paid         InstallmentBucket `json:"paidBucket"`
		Overdue      InstallmentBucket `json:"overdueBucket"`
		Upcoming     InstallmentBucket `json:"upcomingBucket"`
	}

	// ClassifiedClient is a ClientRecord with its derived status. Values are
	// read-only after creation; recomputing a status means building a new
	// value, never patching one in place.
	ClassifiedClient struct {
		ClientRecord
		Status PaymentStatus `json:"status"`
	}

	// PortfolioMetrics are the portfolio-level figures folded from a list of
	// classified clients.
	PortfolioMetrics struct {
		CountOnTime         int `json:"countOnTime"`
		CountUpcoming       int `json:"countUpcoming"`
		CountDelinquent     int `json:"countDelinquent"`
		CountNoInstallments int `json:"countNoInstallments"`

		TotalPaid     Money `json:"totalPaid"`
		TotalOverdue  Money `json:"totalOverdue"`
		TotalUpcoming Money `json:"totalUpcoming"`

		DelinquencyRatePct float64 `json:"delinquencyRatePct"`
	}
)

var (
	ErrEmptyClientID  = errors.New("empty client id")
	ErrNegativeAmount = errors.New("negative amount")
	ErrNegativeCount  = errors.New("negative count")
)

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (b InstallmentBucket) validate() error {
	if b.Count < 0 {
		return ErrNegativeCount
	}
	if b.TotalAmount.Cents < 0 {
		return ErrNegativeAmount
	}
	for _, it := range b.Items {
		if it.Amount.Cents < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}

// normalized re-derives Count and TotalAmount from Items when Items are
// present, so a bucket whose declared figures drifted from its contents is
// repaired instead of trusted blindly. Buckets without Items keep their
// declared summary.
func (b InstallmentBucket) normalized() InstallmentBucket {
	if len(b.Items) == 0 {
		return b
	}
	out := InstallmentBucket{Items: b.Items}
	out.Count = len(b.Items)
	for _, it := range b.Items {
		out.TotalAmount.Cents += it.Amount.Cents
	}
	return out
}

// Validate reports whether the record is well formed enough to enter the
// pipeline. Empty buckets are the normal "no installments here" state, not an
// error.
func (r ClientRecord) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return ErrEmptyClientID
	}
	for _, b := range []InstallmentBucket{r.Paid, r.Overdue, r.Upcoming} {
		if err := b.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Normalized returns a copy with every bucket's figures reconciled against
// its items.
func (r ClientRecord) Normalized() ClientRecord {
	out := r
	out.Paid = r.Paid.normalized()
	out.Overdue = r.Overdue.normalized()
	out.Upcoming = r.Upcoming.normalized()
	return out
}

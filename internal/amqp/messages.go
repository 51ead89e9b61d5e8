package amqp

import (
	"encoding/json"
	"time"

	"carteira/internal/core"
)

// PortfolioRefreshedMessage announces that a seller's dashboard snapshot was
// rebuilt from upstream data.
type PortfolioRefreshedMessage struct {
	SellerID           string    `json:"sellerId"`
	ClientCount        int       `json:"clientCount"`
	DelinquencyRatePct float64   `json:"delinquencyRatePct"`
	Timestamp          time.Time `json:"timestamp"`
}

func NewPortfolioRefreshedMessage(sellerID string, clientCount int, ratePct float64) *PortfolioRefreshedMessage {
	return &PortfolioRefreshedMessage{
		SellerID:           sellerID,
		ClientCount:        clientCount,
		DelinquencyRatePct: ratePct,
		Timestamp:          time.Now(),
	}
}

func (m *PortfolioRefreshedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PortfolioRefreshedMessageFromJSON(data []byte) (*PortfolioRefreshedMessage, error) {
	var msg PortfolioRefreshedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DelinquencyAlertMessage flags a single client whose overdue bucket is not
// empty. Downstream consumers drive collection follow-ups from it.
// EarliestDueDate is omitted when the bucket carries no item detail.
type DelinquencyAlertMessage struct {
	SellerID        string     `json:"sellerId"`
	ClientID        string     `json:"clientId"`
	DisplayName     string     `json:"displayName"`
	OverdueCount    int        `json:"overdueCount"`
	OverdueTotal    core.Money `json:"overdueTotal"`
	EarliestDueDate *core.Date `json:"earliestDueDate,omitempty"`
	Timestamp       time.Time  `json:"timestamp"`
}

func NewDelinquencyAlertMessage(sellerID string, client core.ClassifiedClient) *DelinquencyAlertMessage {
	return &DelinquencyAlertMessage{
		SellerID:        sellerID,
		ClientID:        client.ClientID,
		DisplayName:     client.DisplayName,
		OverdueCount:    client.Overdue.Count,
		OverdueTotal:    client.Overdue.TotalAmount,
		EarliestDueDate: earliestDueDate(client.Overdue.Items),
		Timestamp:       time.Now(),
	}
}

func earliestDueDate(items []core.Installment) *core.Date {
	var earliest *core.Date
	for i := range items {
		d := items[i].DueDate
		if earliest == nil || d.Before(earliest.Time) {
			earliest = &d
		}
	}
	return earliest
}

func (m *DelinquencyAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DelinquencyAlertMessageFromJSON(data []byte) (*DelinquencyAlertMessage, error) {
	var msg DelinquencyAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

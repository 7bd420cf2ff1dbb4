package finance

import "time"

// Invoice statuses.
const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// Invoice is a billing record.
type Invoice struct {
	ID       string    `json:"id"`
	Number   string    `json:"number,omitempty"`
	Client   string    `json:"client"`
	Status   string    `json:"status"`
	Amount   float64   `json:"amount"`
	IssuedAt time.Time `json:"issued_at,omitempty"`
	DueAt    time.Time `json:"due_at,omitempty"`
}

func (i Invoice) RecordID() string { return i.ID }

package leave

import "time"

// Request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is a leave-of-absence request.
type Request struct {
	ID       string    `json:"id"`
	Employee string    `json:"employee"`
	Kind     string    `json:"kind"` // vacation, sick, personal
	Status   string    `json:"status"`
	Days     float64   `json:"days"`
	From     time.Time `json:"from,omitempty"`
	To       time.Time `json:"to,omitempty"`
}

func (r Request) RecordID() string { return r.ID }

package goal

import "time"

// Status buckets an objective or key result by its progress. The buckets
// are mutually exclusive and exhaustive: exactly 0 is paused, anything
// strictly between 0 and 100 is active, 100 and above is completed.
type Status string

const (
	StatusPaused    Status = "paused"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Objective aggregates one or more key results toward a goal.
type Objective struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Owner       string    `json:"owner,omitempty"`
	Quarter     string    `json:"quarter,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

func (o Objective) RecordID() string { return o.ID }

// KeyResult is a measurable target belonging to at most one objective.
type KeyResult struct {
	ID          string  `json:"id"`
	ObjectiveID string  `json:"objective_id,omitempty"`
	Title       string  `json:"title"`
	Current     float64 `json:"current"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit,omitempty"`
}

func (k KeyResult) RecordID() string { return k.ID }

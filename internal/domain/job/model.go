package job

import "time"

// Application stages.
const (
	StageApplied   = "applied"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
	StageRejected  = "rejected"
)

// Application tracks one job application through its pipeline.
type Application struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Stage     string    `json:"stage"`
	Location  string    `json:"location,omitempty"`
	AppliedAt time.Time `json:"applied_at,omitempty"`
}

func (a Application) RecordID() string { return a.ID }

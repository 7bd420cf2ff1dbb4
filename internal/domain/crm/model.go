package crm

import "time"

// Lead workflow stages.
const (
	LeadNew       = "new"
	LeadContacted = "contacted"
	LeadQualified = "qualified"
	LeadConverted = "converted"
	LeadLost      = "lost"
)

// Contact is an address-book entry for a person or company.
type Contact struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Company  string    `json:"company,omitempty"`
	Group    string    `json:"group,omitempty"`
	AddedAt  time.Time `json:"added_at,omitempty"`
	Favorite bool      `json:"favorite,omitempty"`
}

func (c Contact) RecordID() string { return c.ID }

// Lead is a potential deal moving through the pipeline.
type Lead struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ContactID string    `json:"contact_id,omitempty"`
	Status    string    `json:"status"`
	Value     float64   `json:"value,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func (l Lead) RecordID() string { return l.ID }

// Interaction is a logged touchpoint with a contact.
type Interaction struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id,omitempty"`
	Kind      string    `json:"kind"` // call, email, meeting
	Notes     string    `json:"notes,omitempty"`
	At        time.Time `json:"at,omitempty"`
}

func (i Interaction) RecordID() string { return i.ID }

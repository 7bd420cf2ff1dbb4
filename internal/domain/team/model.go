package team

// Member is a user of the workspace.
type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"` // admin, manager, member
	Active bool   `json:"active"`
}

func (m Member) RecordID() string { return m.ID }

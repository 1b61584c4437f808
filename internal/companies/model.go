package companies

import "time"

// Company is provisioned on demand during recruiter registration or created
// explicitly. The id is a human-legible 8-char code derived from the name.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

package domain

import "time"

// Credential is one operator identity record.
type Credential struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	PasswordHash      string    `json:"password"`
	PasswordSetByUser bool      `json:"passwordSetByUser,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

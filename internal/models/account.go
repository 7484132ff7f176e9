package models

import "time"

// Account is a connected platform account. The scheduler and orchestrator treat
// its ID as an opaque foreign key; only the accounts registry reads the rest.
type Account struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email,omitempty"`
	ChannelID string    `json:"channelId,omitempty"`
	IsDefault bool      `json:"isDefault"`
	AddedAt   time.Time `json:"addedAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// AccountUpdate is a partial update to a stored account.
type AccountUpdate struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	ChannelID *string `json:"channelId,omitempty"`
}

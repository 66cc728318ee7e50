package models

import "time"

type Client struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	EntityType string    `json:"entityType"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	TaxID      string    `json:"taxId"`
	Notes      string    `json:"notes"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ClientUser is a portal credential. The access code is the sole secret a
// client uses to reach their document checklists.
type ClientUser struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"clientId"`
	AccessCode  string     `json:"accessCode"`
	Label       string     `json:"label"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

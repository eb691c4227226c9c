package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Shop — boutique d'un vendeur sur la marketplace. Un vendeur = une boutique.
type Shop struct {
	ID          gocql.UUID `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	LogoURL     string     `json:"logo_url,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Country     string     `json:"country"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

package models

import "github.com/gocql/gocql"

type Address struct {
	ID         gocql.UUID `json:"id"`
	UserID     string     `json:"user_id"`
	Street     string     `json:"street"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	PostalCode string     `json:"postal_code"`
	Country    string     `json:"country"`
	Phone      string     `json:"phone"`
	DialCode   string     `json:"dial_code"`
	Latitude   *float64   `json:"lat,omitempty"`
	Longitude  *float64   `json:"lng,omitempty"`
	IsDefault  bool       `json:"is_default"`
}

// IsComplete — tous les champs requis avant de pouvoir demander un devis de livraison.
func (a Address) IsComplete() bool {
	return a.Street != "" && a.City != "" && a.State != "" &&
		a.PostalCode != "" && a.Country != "" && a.Phone != ""
}

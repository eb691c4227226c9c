package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Listing — produit ou service publié par une boutique.
// Kind vaut "product" ou "service" ; les services n'ont ni stock ni déclinaisons.
type Listing struct {
	ID            gocql.UUID  `json:"id" db:"listing_id"`
	ShopID        gocql.UUID  `json:"shop_id" db:"shop_id"`
	Kind          string      `json:"kind" db:"kind"`
	Name          string      `json:"name" db:"name"`
	Description   string      `json:"description" db:"description"`
	Price         float64     `json:"price" db:"price"`
	Stock         int         `json:"stock" db:"stock"`
	SKU           string      `json:"sku" db:"sku"`
	Weight        float64     `json:"weight" db:"weight"`
	CategoryID    gocql.UUID  `json:"category_id" db:"category_id"`
	ImageURLs     []string    `json:"image_urls" db:"image_urls"`
	Tags          []string    `json:"tags" db:"tags"`
	IsActive      bool        `json:"is_active" db:"is_active"`
	HasVariations bool        `json:"has_variations" db:"has_variations"`
	Variations    []Variation `json:"variations,omitempty"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// Variation — déclinaison couleur/taille d'un produit, avec son propre prix et stock.
type Variation struct {
	ID        gocql.UUID `json:"id" db:"variation_id"`
	ListingID gocql.UUID `json:"listing_id" db:"listing_id"`
	Color     string     `json:"color,omitempty" db:"color"`
	Size      string     `json:"size,omitempty" db:"size"`
	Price     float64    `json:"price" db:"price"`
	Stock     int        `json:"stock" db:"stock"`
	SKU       string     `json:"sku,omitempty" db:"sku"`
}

type Category struct {
	ID   gocql.UUID `json:"id"`
	Name string     `json:"name"`
	Slug string     `json:"slug"`
}

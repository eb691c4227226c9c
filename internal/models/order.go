package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Order — une commande par vendeur : un checkout multi-boutiques produit
// une ligne par boutique, toutes liées au même payment_id Stripe.
type Order struct {
	ID                gocql.UUID  `json:"id"`
	UserID            string      `json:"user_id"`
	ShopID            string      `json:"shop_id"`
	PaymentID         string      `json:"payment_id"`
	Items             []OrderItem `json:"items"`
	Subtotal          float64     `json:"subtotal"`
	ShippingFee       float64     `json:"shipping_fee"`
	Discount          float64     `json:"discount"`
	TotalPrice        float64     `json:"total_price"`
	CouponCode        string      `json:"coupon_code,omitempty"`
	Carrier           string      `json:"carrier"`
	ServiceCode       string      `json:"service_code"`
	EstimatedDelivery string      `json:"estimated_delivery,omitempty"`
	Status            string      `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
}

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	VariationID string  `json:"variation_id,omitempty"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Color       string  `json:"color,omitempty"`
	Size        string  `json:"size,omitempty"`
}

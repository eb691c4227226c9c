package checkout

import "vendora_back_end/internal/models"

// ProductPayload — un article tel qu'envoyé au backend de paiement.
// Conserve exactement product_id, variation_id, quantity, color et size.
type ProductPayload struct {
	ProductID   string  `json:"product_id"`
	VariationID string  `json:"variation_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Color       string  `json:"color,omitempty"`
	Size        string  `json:"size,omitempty"`
	ShopID      string  `json:"shop_id,omitempty"`
}

// CommitPayload — charge utile du commit de commande (spéc. de l'endpoint
// de session de paiement). Un service_code par segment vendeur, dans
// l'ordre des segments de l'option retenue.
type CommitPayload struct {
	Email               string           `json:"email"`
	Products            []ProductPayload `json:"products"`
	ShippingFee         float64          `json:"shipping_fee"`
	ShippingCarrier     string           `json:"shipping_carrier"`
	EstimatedDelivery   string           `json:"estimated_delivery"`
	ShippingServiceCode []string         `json:"shipping_service_code"`
	Discount            float64          `json:"discount"`
	CouponCode          string           `json:"coupon_code,omitempty"`
}

// BuildPayload assemble le brouillon de commande : articles + option de
// livraison retenue + remise. L'agrégation fournit la date de livraison
// la plus proche et les service codes par vendeur (1:1 avec les segments).
func BuildPayload(items []models.CartItem, identity Identity, selected models.RateOption, discount float64, couponCode string) CommitPayload {
	summary := AggregateRate(selected)

	payload := CommitPayload{
		Email:               identity.Email,
		ShippingFee:         selected.TotalPrice,
		ShippingCarrier:     summary.Carriers,
		EstimatedDelivery:   summary.EstimatedDelivery,
		ShippingServiceCode: summary.ServiceCodes,
		Discount:            discount,
		CouponCode:          couponCode,
	}
	for _, item := range items {
		payload.Products = append(payload.Products, ProductPayload{
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Name:        item.Name,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Color:       item.Color,
			Size:        item.Size,
			ShopID:      item.ShopID,
		})
	}
	return payload
}

// ItemsFromPayload reconstruit les articles du panier depuis une charge
// utile — utilisé par le webhook pour enregistrer la commande.
func ItemsFromPayload(payload CommitPayload) []models.CartItem {
	items := make([]models.CartItem, 0, len(payload.Products))
	for _, p := range payload.Products {
		items = append(items, models.CartItem{
			ProductID:   p.ProductID,
			VariationID: p.VariationID,
			Name:        p.Name,
			UnitPrice:   p.UnitPrice,
			Quantity:    p.Quantity,
			Color:       p.Color,
			Size:        p.Size,
			ShopID:      p.ShopID,
		})
	}
	return items
}

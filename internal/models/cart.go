package models

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// CartItem — snapshot d'un article au moment de l'ajout au panier.
// VariationID / Color / Size restent vides pour les articles sans déclinaison.
type CartItem struct {
	ProductID   string  `json:"product_id"`
	VariationID string  `json:"variation_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Color       string  `json:"color,omitempty"`
	Size        string  `json:"size,omitempty"`
	Kind        string  `json:"kind,omitempty"` // "product" ou "service"
	ShopID      string  `json:"shop_id,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

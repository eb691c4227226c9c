package checkout

import "vendora_back_end/internal/models"

const (
	DiscountFixed      = "fixed"
	DiscountPercentage = "percentage"
)

// Subtotal — somme des prix unitaires × quantités du panier.
func Subtotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// ComputeDiscount calcule le montant de la remise. "fixed" → montant
// plat, "percentage" → subtotal × taux / 100. Tout autre type vaut 0.
func ComputeDiscount(discountType string, rate, subtotal float64) float64 {
	switch discountType {
	case DiscountFixed:
		return rate
	case DiscountPercentage:
		return subtotal * rate / 100
	default:
		return 0
	}
}

// Total — montant affiché et facturé, jamais négatif.
func Total(subtotal, shippingFee, discount float64) float64 {
	total := subtotal + shippingFee - discount
	if total < 0 {
		return 0
	}
	return total
}

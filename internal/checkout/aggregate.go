package checkout

import (
	"strings"

	"vendora_back_end/internal/models"
)

// RateSummary — vue agrégée d'une option de livraison multi-vendeurs,
// telle qu'affichée au client et embarquée dans la commande.
type RateSummary struct {
	ShippingFee       float64  `json:"shipping_fee"`
	Carriers          string   `json:"carriers"`
	EstimatedDelivery string   `json:"estimated_delivery"`
	ServiceCodes      []string `json:"service_codes"`
}

// AggregateRate calcule la livraison la plus proche et le libellé
// transporteurs d'une option. Fonction pure : même entrée, même sortie.
//
// Livraison la plus proche : le segment avec le delivery_days minimal
// (premier vu en cas d'égalité). Si aucun segment ne porte de
// delivery_days, on retombe sur la plus petite estimated_delivery non
// vide par ordre lexicographique — comportement hérité, voir DESIGN.md.
func AggregateRate(opt models.RateOption) RateSummary {
	summary := RateSummary{ShippingFee: opt.TotalPrice}

	var carriers []string
	seen := make(map[string]bool)
	for _, leg := range opt.Legs {
		summary.ServiceCodes = append(summary.ServiceCodes, leg.ServiceCode)
		if leg.Carrier != "" && !seen[leg.Carrier] {
			seen[leg.Carrier] = true
			carriers = append(carriers, leg.Carrier)
		}
	}
	summary.Carriers = strings.Join(carriers, ", ")

	best := -1
	for i, leg := range opt.Legs {
		if leg.DeliveryDays == nil {
			continue
		}
		if best == -1 || *leg.DeliveryDays < *opt.Legs[best].DeliveryDays {
			best = i
		}
	}
	if best >= 0 {
		summary.EstimatedDelivery = opt.Legs[best].EstimatedDelivery
		return summary
	}

	// Aucun delivery_days : tri lexicographique des dates non vides.
	for _, leg := range opt.Legs {
		if leg.EstimatedDelivery == "" {
			continue
		}
		if summary.EstimatedDelivery == "" || leg.EstimatedDelivery < summary.EstimatedDelivery {
			summary.EstimatedDelivery = leg.EstimatedDelivery
		}
	}
	return summary
}

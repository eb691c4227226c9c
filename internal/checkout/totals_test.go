package checkout

import (
	"testing"

	"vendora_back_end/internal/models"
)

func TestSubtotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", UnitPrice: 10.00, Quantity: 2},
		{ProductID: "p2", UnitPrice: 5.00, Quantity: 1},
	}

	if got := Subtotal(items); got != 25.00 {
		t.Fatalf("subtotal = %v, attendu 25.00", got)
	}
	if got := Subtotal(nil); got != 0 {
		t.Fatalf("subtotal panier vide = %v, attendu 0", got)
	}
}

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name         string
		discountType string
		rate         float64
		subtotal     float64
		want         float64
	}{
		{"pourcentage", DiscountPercentage, 10, 100.00, 10.00},
		{"montant fixe", DiscountFixed, 7.50, 100.00, 7.50},
		{"type inconnu", "free_shipping", 10, 100.00, 0},
		{"type vide", "", 10, 100.00, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDiscount(tt.discountType, tt.rate, tt.subtotal)
			if got != tt.want {
				t.Fatalf("ComputeDiscount(%q, %v, %v) = %v, attendu %v",
					tt.discountType, tt.rate, tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestTotal(t *testing.T) {
	if got := Total(25.00, 7.50, 0); got != 32.50 {
		t.Fatalf("total = %v, attendu 32.50", got)
	}
	if got := Total(25.00, 7.50, 2.50); got != 30.00 {
		t.Fatalf("total avec remise = %v, attendu 30.00", got)
	}
	// La remise ne fait jamais passer le total en négatif
	if got := Total(10.00, 0, 50.00); got != 0 {
		t.Fatalf("total clampé = %v, attendu 0", got)
	}
}

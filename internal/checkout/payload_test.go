package checkout

import (
	"reflect"
	"testing"

	"vendora_back_end/internal/models"
)

func TestBuildPayload(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", VariationID: "var1", Name: "T-shirt", UnitPrice: 19.90, Quantity: 2, Color: "bleu", Size: "M", ShopID: "s1"},
		{ProductID: "p2", Name: "Mug", UnitPrice: 9.90, Quantity: 1, ShopID: "s2"},
	}
	opt := models.RateOption{
		TotalPrice: 8.40,
		Legs: []models.VendorLeg{
			{VendorID: "s1", Carrier: "Colissimo", ServiceCode: "COL-STD", DeliveryDays: days(3), EstimatedDelivery: "2026-09-03"},
			{VendorID: "s2", Carrier: "UPS", ServiceCode: "UPS-EXP", DeliveryDays: days(2), EstimatedDelivery: "2026-09-02"},
		},
	}

	payload := BuildPayload(items, completeIdentity(), opt, 2.00, "BIENVENUE")

	if payload.Email != "jean@example.com" {
		t.Fatalf("email = %q", payload.Email)
	}
	if payload.ShippingFee != 8.40 {
		t.Fatalf("shipping fee = %v, attendu 8.40", payload.ShippingFee)
	}
	if payload.ShippingCarrier != "Colissimo, UPS" {
		t.Fatalf("carrier = %q", payload.ShippingCarrier)
	}
	if payload.EstimatedDelivery != "2026-09-02" {
		t.Fatalf("estimated delivery = %q", payload.EstimatedDelivery)
	}
	// Un service code par segment, dans l'ordre des segments
	if want := []string{"COL-STD", "UPS-EXP"}; !reflect.DeepEqual(payload.ShippingServiceCode, want) {
		t.Fatalf("service codes = %v, attendu %v", payload.ShippingServiceCode, want)
	}
	if payload.Discount != 2.00 || payload.CouponCode != "BIENVENUE" {
		t.Fatalf("remise = %v / %q", payload.Discount, payload.CouponCode)
	}

	if len(payload.Products) != 2 {
		t.Fatalf("%d produits, attendu 2", len(payload.Products))
	}
	first := payload.Products[0]
	if first.ProductID != "p1" || first.VariationID != "var1" || first.Quantity != 2 ||
		first.Color != "bleu" || first.Size != "M" {
		t.Fatalf("produit mal copié: %+v", first)
	}
}

func TestItemsFromPayloadRoundTrip(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", VariationID: "var1", Name: "T-shirt", UnitPrice: 19.90, Quantity: 2, Color: "bleu", Size: "M", ShopID: "s1"},
		{ProductID: "p2", Name: "Mug", UnitPrice: 9.90, Quantity: 1, ShopID: "s2"},
	}

	payload := BuildPayload(items, completeIdentity(), models.RateOption{}, 0, "")
	got := ItemsFromPayload(payload)

	if !reflect.DeepEqual(got, items) {
		t.Fatalf("aller-retour panier → payload → panier:\n  obtenu %+v\n  attendu %+v", got, items)
	}
}

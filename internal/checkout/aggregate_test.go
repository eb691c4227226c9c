package checkout

import (
	"reflect"
	"testing"

	"vendora_back_end/internal/models"
)

func days(n int) *int { return &n }

func TestAggregateRateCarriersDedup(t *testing.T) {
	opt := models.RateOption{
		TotalPrice: 12.50,
		Legs: []models.VendorLeg{
			{VendorID: "v1", Carrier: "Colissimo", ServiceCode: "COL-STD"},
			{VendorID: "v2", Carrier: "UPS", ServiceCode: "UPS-EXP"},
			{VendorID: "v3", Carrier: "Colissimo", ServiceCode: "COL-REL"},
		},
	}

	summary := AggregateRate(opt)

	if summary.Carriers != "Colissimo, UPS" {
		t.Fatalf("carriers = %q, attendu %q", summary.Carriers, "Colissimo, UPS")
	}
	if summary.ShippingFee != 12.50 {
		t.Fatalf("shipping fee = %v, attendu 12.50", summary.ShippingFee)
	}
	want := []string{"COL-STD", "UPS-EXP", "COL-REL"}
	if !reflect.DeepEqual(summary.ServiceCodes, want) {
		t.Fatalf("service codes = %v, attendu %v", summary.ServiceCodes, want)
	}
}

func TestAggregateRateEarliestDelivery(t *testing.T) {
	opt := models.RateOption{
		Legs: []models.VendorLeg{
			{VendorID: "v1", DeliveryDays: days(5), EstimatedDelivery: "2026-09-05"},
			{VendorID: "v2", DeliveryDays: days(2), EstimatedDelivery: "2026-09-02"},
			{VendorID: "v3", DeliveryDays: days(4), EstimatedDelivery: "2026-09-04"},
		},
	}

	summary := AggregateRate(opt)
	if summary.EstimatedDelivery != "2026-09-02" {
		t.Fatalf("estimated delivery = %q, attendu %q", summary.EstimatedDelivery, "2026-09-02")
	}
}

func TestAggregateRateTieKeepsFirstLeg(t *testing.T) {
	opt := models.RateOption{
		Legs: []models.VendorLeg{
			{VendorID: "v1", DeliveryDays: days(3), EstimatedDelivery: "2026-09-03"},
			{VendorID: "v2", DeliveryDays: days(3), EstimatedDelivery: "2026-09-03-bis"},
		},
	}

	summary := AggregateRate(opt)
	if summary.EstimatedDelivery != "2026-09-03" {
		t.Fatalf("égalité: le premier segment doit gagner, obtenu %q", summary.EstimatedDelivery)
	}
}

func TestAggregateRateIgnoresLegsWithoutDays(t *testing.T) {
	opt := models.RateOption{
		Legs: []models.VendorLeg{
			{VendorID: "v1", EstimatedDelivery: "2026-09-01"},
			{VendorID: "v2", DeliveryDays: days(9), EstimatedDelivery: "2026-09-09"},
		},
	}

	summary := AggregateRate(opt)
	if summary.EstimatedDelivery != "2026-09-09" {
		t.Fatalf("un segment sans delivery_days ne doit pas gagner, obtenu %q", summary.EstimatedDelivery)
	}
}

// Sans delivery_days, la date retenue est la plus petite non vide par
// ordre lexicographique — comportement hérité, figé ici.
func TestAggregateRateLexicographicFallback(t *testing.T) {
	opt := models.RateOption{
		Legs: []models.VendorLeg{
			{VendorID: "v1", EstimatedDelivery: "3-5 jours"},
			{VendorID: "v2", EstimatedDelivery: "10-12 jours"},
			{VendorID: "v3"},
		},
	}

	summary := AggregateRate(opt)
	if summary.EstimatedDelivery != "10-12 jours" {
		t.Fatalf("fallback lexicographique attendu %q, obtenu %q", "10-12 jours", summary.EstimatedDelivery)
	}
}

func TestAggregateRateEmptyOption(t *testing.T) {
	summary := AggregateRate(models.RateOption{TotalPrice: 4.99})
	if summary.EstimatedDelivery != "" || summary.Carriers != "" || len(summary.ServiceCodes) != 0 {
		t.Fatalf("option vide: résumé non vide %+v", summary)
	}
}

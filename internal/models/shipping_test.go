package models

import (
	"encoding/json"
	"strings"
	"testing"
)

// L'ordre des clés de "vendors" dans le document reçu doit être conservé
// tel quel : les départages "premier vu" de l'agrégation en dépendent.
func TestRateOptionUnmarshalPreservesOrder(t *testing.T) {
	doc := `{
		"total_price": 14.90,
		"vendors": {
			"zeta-shop": {"carrier": "UPS", "service_code": "UPS-STD", "delivery_days": 3},
			"alpha-shop": {"carrier": "Colissimo", "service_code": "COL-STD", "delivery_days": 3}
		}
	}`

	var opt RateOption
	if err := json.Unmarshal([]byte(doc), &opt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if opt.TotalPrice != 14.90 {
		t.Fatalf("total_price = %v", opt.TotalPrice)
	}
	if len(opt.Legs) != 2 {
		t.Fatalf("%d segments, attendu 2", len(opt.Legs))
	}
	// "zeta-shop" vient avant "alpha-shop" dans le document, il doit
	// rester premier même si une map Go l'aurait trié autrement
	if opt.Legs[0].VendorID != "zeta-shop" || opt.Legs[1].VendorID != "alpha-shop" {
		t.Fatalf("ordre des segments perdu: %s, %s", opt.Legs[0].VendorID, opt.Legs[1].VendorID)
	}
	if opt.Legs[0].Carrier != "UPS" || *opt.Legs[0].DeliveryDays != 3 {
		t.Fatalf("segment mal décodé: %+v", opt.Legs[0])
	}
}

func TestRateOptionMarshalKeepsOrder(t *testing.T) {
	three := 3
	opt := RateOption{
		TotalPrice: 9.90,
		Legs: []VendorLeg{
			{VendorID: "zeta-shop", Carrier: "UPS", ServiceCode: "UPS-STD", DeliveryDays: &three},
			{VendorID: "alpha-shop", Carrier: "Colissimo", ServiceCode: "COL-STD"},
		},
	}

	data, err := json.Marshal(opt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := string(data)
	if strings.Index(s, "zeta-shop") > strings.Index(s, "alpha-shop") {
		t.Fatalf("ordre des vendeurs trié au marshal: %s", s)
	}

	var restored RateOption
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(restored.Legs) != 2 || restored.Legs[0].VendorID != "zeta-shop" {
		t.Fatalf("aller-retour JSON: %+v", restored.Legs)
	}
}

func TestRateOptionUnmarshalEmptyVendors(t *testing.T) {
	var opt RateOption
	if err := json.Unmarshal([]byte(`{"total_price": 0}`), &opt); err != nil {
		t.Fatalf("unmarshal sans vendors: %v", err)
	}
	if len(opt.Legs) != 0 {
		t.Fatalf("segments fantômes: %+v", opt.Legs)
	}
}

func TestRateQuoteUnmarshal(t *testing.T) {
	doc := `{
		"cheapest": {"total_price": 5.00, "vendors": {"v1": {"carrier": "Colissimo", "service_code": "COL-STD"}}},
		"fastest": {"total_price": 12.00, "vendors": {"v1": {"carrier": "Chronopost", "service_code": "CHR-EXP"}}}
	}`

	var quote RateQuote
	if err := json.Unmarshal([]byte(doc), &quote); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if quote.Cheapest == nil || quote.Fastest == nil {
		t.Fatal("les deux options doivent être présentes")
	}
	if quote.Cheapest.TotalPrice != 5.00 || quote.Fastest.TotalPrice != 12.00 {
		t.Fatalf("prix mal décodés: %v / %v", quote.Cheapest.TotalPrice, quote.Fastest.TotalPrice)
	}
}

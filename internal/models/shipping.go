package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// VendorLeg — segment de livraison d'un vendeur dans un devis multi-boutiques.
type VendorLeg struct {
	VendorID          string `json:"vendor_id"`
	Carrier           string `json:"carrier"`
	ServiceCode       string `json:"service_code"`
	DeliveryDays      *int   `json:"delivery_days,omitempty"`
	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
	ShipmentID        string `json:"shipment_id,omitempty"`
	RateID            string `json:"rate_id,omitempty"`
}

// RateOption — une option agrégée ("cheapest" ou "fastest") renvoyée par
// l'API de tarification. L'ordre des segments vendeurs est celui du
// document JSON reçu : les départages "premier vu" en dépendent.
type RateOption struct {
	TotalPrice float64     `json:"total_price"`
	Legs       []VendorLeg `json:"-"`
}

// RateQuote — devis complet, écrase entièrement le devis précédent.
type RateQuote struct {
	Cheapest *RateOption `json:"cheapest,omitempty"`
	Fastest  *RateOption `json:"fastest,omitempty"`
}

type rateLegWire struct {
	Carrier           string `json:"carrier"`
	ServiceCode       string `json:"service_code"`
	DeliveryDays      *int   `json:"delivery_days,omitempty"`
	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
	ShipmentID        string `json:"shipment_id,omitempty"`
	RateID            string `json:"rate_id,omitempty"`
}

// UnmarshalJSON décode {"total_price": ..., "vendors": {id: leg, ...}}
// en conservant l'ordre des clés du document. encoding/json en map
// perdrait cet ordre, on parcourt donc les tokens à la main.
func (r *RateOption) UnmarshalJSON(data []byte) error {
	var raw struct {
		TotalPrice float64         `json:"total_price"`
		Vendors    json.RawMessage `json:"vendors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.TotalPrice = raw.TotalPrice
	r.Legs = nil

	if len(raw.Vendors) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw.Vendors))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("vendors: objet JSON attendu")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		vendorID, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("vendors: clé invalide %v", keyTok)
		}
		var wire rateLegWire
		if err := dec.Decode(&wire); err != nil {
			return fmt.Errorf("vendors[%s]: %v", vendorID, err)
		}
		r.Legs = append(r.Legs, VendorLeg{
			VendorID:          vendorID,
			Carrier:           wire.Carrier,
			ServiceCode:       wire.ServiceCode,
			DeliveryDays:      wire.DeliveryDays,
			EstimatedDelivery: wire.EstimatedDelivery,
			ShipmentID:        wire.ShipmentID,
			RateID:            wire.RateID,
		})
	}
	// '}' final
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON ré-émet les segments sous la forme {"vendors": {...}} dans
// l'ordre conservé (json.Marshal d'une map trierait les clés).
func (r RateOption) MarshalJSON() ([]byte, error) {
	buf := []byte(`{"total_price":` + strconv.FormatFloat(r.TotalPrice, 'f', -1, 64) + `,"vendors":{`)
	for i, leg := range r.Legs {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(leg.VendorID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(rateLegWire{
			Carrier:           leg.Carrier,
			ServiceCode:       leg.ServiceCode,
			DeliveryDays:      leg.DeliveryDays,
			EstimatedDelivery: leg.EstimatedDelivery,
			ShipmentID:        leg.ShipmentID,
			RateID:            leg.RateID,
		})
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	buf = append(buf, '}', '}')
	return buf, nil
}

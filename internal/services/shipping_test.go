package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vendora_back_end/internal/checkout"
)

func sampleQuoteRequest() QuoteRequest {
	return QuoteRequest{
		FirstName: "Jean", LastName: "Martin", Email: "jean@example.com", Phone: "+33612345678",
		Country: "France", Street: "12 rue des Lilas", City: "Lyon", State: "Rhône", Zip: "690003",
		Type: "product",
		Products: []checkout.ProductPayload{
			{ProductID: "p1", Quantity: 2, UnitPrice: 19.90, ShopID: "s1"},
		},
	}
}

func TestRequestRatesOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rates" {
			t.Errorf("requête inattendue: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}

		var req QuoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("corps invalide: %v", err)
		}
		if req.Zip != "690003" || len(req.Products) != 1 {
			t.Errorf("requête mal sérialisée: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rate": {
			"cheapest": {"total_price": 5.00, "vendors": {"s1": {"carrier": "Colissimo", "service_code": "COL-STD", "delivery_days": 4}}},
			"fastest": {"total_price": 12.00, "vendors": {"s1": {"carrier": "Chronopost", "service_code": "CHR-EXP", "delivery_days": 1}}}
		}}`))
	}))
	defer srv.Close()

	client := NewShippingClient(srv.URL, "test-key")
	quote, err := client.RequestRates(context.Background(), sampleQuoteRequest())
	if err != nil {
		t.Fatalf("RequestRates: %v", err)
	}

	if quote.Cheapest == nil || quote.Cheapest.TotalPrice != 5.00 {
		t.Fatalf("cheapest mal décodé: %+v", quote.Cheapest)
	}
	if quote.Fastest == nil || len(quote.Fastest.Legs) != 1 || quote.Fastest.Legs[0].Carrier != "Chronopost" {
		t.Fatalf("fastest mal décodé: %+v", quote.Fastest)
	}
}

// Un rejet serveur remonte son message tel quel, dans une QuoteError.
func TestRequestRatesServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "Adresse non desservie"}`))
	}))
	defer srv.Close()

	client := NewShippingClient(srv.URL, "")
	_, err := client.RequestRates(context.Background(), sampleQuoteRequest())

	var qe *QuoteError
	if !errors.As(err, &qe) {
		t.Fatalf("erreur = %T (%v), attendu *QuoteError", err, err)
	}
	if qe.Message != "Adresse non desservie" {
		t.Fatalf("message = %q", qe.Message)
	}
}

func TestRequestRatesServerErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewShippingClient(srv.URL, "")
	_, err := client.RequestRates(context.Background(), sampleQuoteRequest())

	var qe *QuoteError
	if !errors.As(err, &qe) {
		t.Fatalf("erreur = %T (%v), attendu *QuoteError", err, err)
	}
}

func TestRequestRatesEmptyQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rate": {}}`))
	}))
	defer srv.Close()

	client := NewShippingClient(srv.URL, "")
	_, err := client.RequestRates(context.Background(), sampleQuoteRequest())

	var qe *QuoteError
	if !errors.As(err, &qe) {
		t.Fatalf("un devis sans option doit être rejeté, erreur = %v", err)
	}
}

func TestRequestRatesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // serveur déjà fermé

	client := NewShippingClient(srv.URL, "")
	_, err := client.RequestRates(context.Background(), sampleQuoteRequest())
	if err == nil {
		t.Fatal("une erreur réseau doit remonter")
	}
	var qe *QuoteError
	if errors.As(err, &qe) {
		t.Fatalf("une erreur réseau n'est pas un rejet serveur: %v", err)
	}
}

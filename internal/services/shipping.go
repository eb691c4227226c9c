package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"vendora_back_end/internal/checkout"
	"vendora_back_end/internal/models"
)

// ShippingClient — client de l'API de tarification transporteurs.
// Chaque devis est déclenché par une action utilisateur : pas de cache,
// pas de retry, l'appel est librement répétable.
type ShippingClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

var Shipping *ShippingClient

func ConnectShipping() {
	baseURL := os.Getenv("SHIPPING_API_URL")
	if baseURL == "" {
		log.Println("⚠️ SHIPPING_API_URL manquant — devis de livraison indisponibles")
		return
	}
	Shipping = NewShippingClient(baseURL, os.Getenv("SHIPPING_API_KEY"))
	log.Println("✅ API de tarification configurée :", baseURL)
}

func NewShippingClient(baseURL, apiKey string) *ShippingClient {
	return &ShippingClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 20 * time.Second},
	}
}

// QuoteRequest — contenu de commande + adresse + identité client,
// format attendu par l'endpoint de tarification.
type QuoteRequest struct {
	FirstName string                    `json:"firstname"`
	LastName  string                    `json:"lastname"`
	Email     string                    `json:"email"`
	Phone     string                    `json:"phone"`
	Country   string                    `json:"country"`
	Street    string                    `json:"street"`
	City      string                    `json:"city"`
	State     string                    `json:"state"`
	Zip       string                    `json:"zip"`
	Type      string                    `json:"type"` // "product" ou "service"
	Products  []checkout.ProductPayload `json:"products"`
}

// QuoteError — rejet structuré du serveur de tarification ; son message
// est montré tel quel à l'utilisateur.
type QuoteError struct {
	Message string
}

func (e *QuoteError) Error() string { return e.Message }

// RequestRates envoie le devis et renvoie les options cheapest/fastest.
// Erreur transport → erreur générique ; rejet serveur → QuoteError avec
// le message renvoyé. L'appelant laisse son état intact en cas d'échec.
func (c *ShippingClient) RequestRates(ctx context.Context, req QuoteRequest) (*models.RateQuote, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/rates", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		log.Printf("❌ Erreur réseau API tarification: %v", err)
		return nil, fmt.Errorf("service de livraison injoignable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var serverErr struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&serverErr); err == nil && serverErr.Message != "" {
			return nil, &QuoteError{Message: serverErr.Message}
		}
		return nil, &QuoteError{Message: "Impossible de calculer les frais de livraison"}
	}

	var payload struct {
		Rate models.RateQuote `json:"rate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("réponse tarification invalide: %v", err)
	}
	if payload.Rate.Cheapest == nil && payload.Rate.Fastest == nil {
		return nil, &QuoteError{Message: "Aucune option de livraison disponible pour cette adresse"}
	}
	return &payload.Rate, nil
}

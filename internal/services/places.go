package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

// PlacesClient — proxy vers le service d'autocomplétion d'adresses.
// Les requêtes sont liées à un session token côté client ; un échec est
// non fatal, le formulaire retombe en saisie manuelle.
type PlacesClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

var Places *PlacesClient

func ConnectPlaces() {
	baseURL := os.Getenv("PLACES_API_URL")
	if baseURL == "" {
		log.Println("⚠️ PLACES_API_URL manquant — autocomplétion d'adresses désactivée")
		return
	}
	Places = NewPlacesClient(baseURL, os.Getenv("PLACES_API_KEY"))
	log.Println("✅ Autocomplétion d'adresses configurée")
}

func NewPlacesClient(baseURL, apiKey string) *PlacesClient {
	return &PlacesClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type PlaceSuggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// PlaceDetail — décomposition d'un lieu sélectionné en champs d'adresse.
type PlaceDetail struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country"`
	Latitude   *float64 `json:"lat,omitempty"`
	Longitude  *float64 `json:"lng,omitempty"`
}

// Autocomplete renvoie les suggestions pour une saisie d'au moins 2
// caractères. Toute erreur est loggée et dégrade en liste vide.
func (c *PlacesClient) Autocomplete(ctx context.Context, query, sessionToken string) []PlaceSuggestion {
	if len(query) < 2 {
		return nil
	}

	params := url.Values{}
	params.Set("input", query)
	params.Set("sessiontoken", sessionToken)
	if c.APIKey != "" {
		params.Set("key", c.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/autocomplete?"+params.Encode(), nil)
	if err != nil {
		return nil
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Printf("⚠️ Autocomplétion indisponible: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ Autocomplétion: statut %d", resp.StatusCode)
		return nil
	}

	var payload struct {
		Predictions []PlaceSuggestion `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("⚠️ Autocomplétion: réponse invalide: %v", err)
		return nil
	}
	return payload.Predictions
}

// Details décompose un lieu en rue/ville/état/code postal/pays/lat/lng.
func (c *PlacesClient) Details(ctx context.Context, placeID, sessionToken string) (*PlaceDetail, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("sessiontoken", sessionToken)
	if c.APIKey != "" {
		params.Set("key", c.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/details?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Result PlaceDetail `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload.Result, nil
}

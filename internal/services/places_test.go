package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAutocomplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/autocomplete" {
			t.Errorf("chemin inattendu: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("input"); got != "12 rue" {
			t.Errorf("input = %q", got)
		}
		if got := r.URL.Query().Get("sessiontoken"); got != "tok-1" {
			t.Errorf("sessiontoken = %q", got)
		}
		w.Write([]byte(`{"predictions": [
			{"place_id": "pl1", "description": "12 rue des Lilas, Lyon"},
			{"place_id": "pl2", "description": "12 rue des Lilas, Paris"}
		]}`))
	}))
	defer srv.Close()

	client := NewPlacesClient(srv.URL, "")
	got := client.Autocomplete(context.Background(), "12 rue", "tok-1")

	if len(got) != 2 || got[0].PlaceID != "pl1" {
		t.Fatalf("suggestions = %+v", got)
	}
}

// Moins de 2 caractères : pas d'appel réseau du tout.
func TestAutocompleteShortQuery(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewPlacesClient(srv.URL, "")
	if got := client.Autocomplete(context.Background(), "a", ""); got != nil {
		t.Fatalf("suggestions = %+v, attendu nil", got)
	}
	if called {
		t.Fatal("aucun appel réseau attendu pour une saisie trop courte")
	}
}

// Échec du service tiers : dégradation silencieuse en liste vide.
func TestAutocompleteDegradesOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewPlacesClient(srv.URL, "")
	if got := client.Autocomplete(context.Background(), "12 rue", ""); got != nil {
		t.Fatalf("suggestions = %+v, attendu nil", got)
	}
}

func TestDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/details" {
			t.Errorf("chemin inattendu: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("place_id"); got != "pl1" {
			t.Errorf("place_id = %q", got)
		}
		w.Write([]byte(`{"result": {
			"street": "12 rue des Lilas",
			"city": "Lyon",
			"state": "Rhône",
			"postal_code": "69003",
			"country": "France",
			"lat": 45.76,
			"lng": 4.85
		}}`))
	}))
	defer srv.Close()

	client := NewPlacesClient(srv.URL, "")
	detail, err := client.Details(context.Background(), "pl1", "tok-1")
	if err != nil {
		t.Fatalf("Details: %v", err)
	}

	if detail.Street != "12 rue des Lilas" || detail.City != "Lyon" || detail.Country != "France" {
		t.Fatalf("détail mal décodé: %+v", detail)
	}
	if detail.Latitude == nil || *detail.Latitude != 45.76 {
		t.Fatalf("latitude = %v", detail.Latitude)
	}
}

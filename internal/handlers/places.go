package handlers

import (
	"net/http"

	"vendora_back_end/internal/services"
	"vendora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

//
// --- AUTOCOMPLÉTION D'ADRESSES ---
//

// 🟢 GET /api/places/autocomplete?q=...&session=...
// Échec du service tiers → liste vide, le client retombe en saisie
// manuelle (jamais bloquant).
func PlacesAutocomplete(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		c.JSON(http.StatusOK, gin.H{"predictions": []interface{}{}})
		return
	}

	if services.Places == nil {
		c.JSON(http.StatusOK, gin.H{"predictions": []interface{}{}})
		return
	}

	suggestions := services.Places.Autocomplete(c.Request.Context(), query, c.Query("session"))
	if suggestions == nil {
		suggestions = []services.PlaceSuggestion{}
	}

	c.JSON(http.StatusOK, gin.H{"predictions": suggestions})
}

// 🟢 GET /api/places/details?place_id=...&session=...
// Décompose le lieu sélectionné et dérive l'indicatif téléphonique
// depuis le pays résolu.
func PlacesDetails(c *gin.Context) {
	placeID := c.Query("place_id")
	if placeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "place_id requis"})
		return
	}

	if services.Places == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Autocomplétion indisponible"})
		return
	}

	detail, err := services.Places.Details(c.Request.Context(), placeID, c.Query("session"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Détails du lieu indisponibles"})
		return
	}

	resp := gin.H{
		"address":   detail,
		"dial_code": utils.DialCodeForCountry(detail.Country),
	}

	// Code postal suspect : avertir sans bloquer la soumission
	if utils.IsSuspiciousPostalCode(detail.PostalCode) {
		resp["warning"] = "Le code postal résolu semble incomplet"
	}

	c.JSON(http.StatusOK, resp)
}

package user

import (
	"log"
	"net/http"

	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"
	"vendora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

//
// --- HANDLERS ADRESSES ---
//

// 🟢 GET /api/addresses/mine
func ListMyAddresses(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		log.Printf("❌ Erreur session ScyllaDB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var results []models.Address

	iter := session.Query(`SELECT address_id, street, city, state, postal_code, country, phone, dial_code, lat, lng, is_default
		FROM addresses WHERE user_id = ?`, userID).Iter()
	var (
		addressID                                             gocql.UUID
		street, city, state, postalCode, country, phone, dial string
		lat, lng                                              *float64
		isDefault                                             bool
	)
	for iter.Scan(&addressID, &street, &city, &state, &postalCode, &country, &phone, &dial, &lat, &lng, &isDefault) {
		results = append(results, models.Address{
			ID:         addressID,
			UserID:     userID,
			Street:     street,
			City:       city,
			State:      state,
			PostalCode: postalCode,
			Country:    country,
			Phone:      phone,
			DialCode:   dial,
			Latitude:   lat,
			Longitude:  lng,
			IsDefault:  isDefault,
		})
	}
	if err := iter.Close(); err != nil {
		log.Printf("⚠️ Erreur fermeture iter: %v", err)
	}

	c.JSON(http.StatusOK, results)
}

// 🟢 POST /api/addresses
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Println("❌ Erreur de binding JSON:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	input.ID = gocql.TimeUUID()
	input.UserID = userID

	// 🔹 Le pays résolu pilote l'indicatif téléphonique
	if dial := utils.DialCodeForCountry(input.Country); dial != "" {
		input.DialCode = dial
	}

	if !input.IsComplete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse incomplète"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`INSERT INTO addresses
		(address_id, user_id, street, city, state, postal_code, country, phone, dial_code, lat, lng, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.ID, input.UserID, input.Street, input.City, input.State, input.PostalCode,
		input.Country, input.Phone, input.DialCode, input.Latitude, input.Longitude, input.IsDefault,
	).Exec(); err != nil {
		log.Printf("❌ Erreur insertion adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création adresse"})
		return
	}

	resp := gin.H{"message": "Adresse créée", "address": input}

	// Code postal trop court : avertir sans bloquer
	if utils.IsSuspiciousPostalCode(input.PostalCode) {
		resp["warning"] = "Le code postal semble incomplet, vérifiez votre adresse"
	}

	c.JSON(http.StatusCreated, resp)
}

// 🟡 PUT /api/addresses/:id
func UpdateAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	addressID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if dial := utils.DialCodeForCountry(input.Country); dial != "" {
		input.DialCode = dial
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Vérifier la propriété avant mise à jour
	var ownerID string
	if err := session.Query("SELECT user_id FROM addresses WHERE address_id = ?", addressID).Scan(&ownerID); err != nil || ownerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Adresse introuvable ou non autorisée"})
		return
	}

	if err := session.Query(`UPDATE addresses SET street = ?, city = ?, state = ?, postal_code = ?, country = ?, phone = ?, dial_code = ?, lat = ?, lng = ?, is_default = ?
		WHERE address_id = ?`,
		input.Street, input.City, input.State, input.PostalCode, input.Country,
		input.Phone, input.DialCode, input.Latitude, input.Longitude, input.IsDefault, addressID,
	).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour"})
		return
	}

	resp := gin.H{"message": "Adresse mise à jour"}
	if utils.IsSuspiciousPostalCode(input.PostalCode) {
		resp["warning"] = "Le code postal semble incomplet, vérifiez votre adresse"
	}

	c.JSON(http.StatusOK, resp)
}

// ❌ DELETE /api/addresses/:id
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	addressID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var ownerID string
	if err := session.Query("SELECT user_id FROM addresses WHERE address_id = ?", addressID).Scan(&ownerID); err != nil || ownerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Adresse introuvable ou non autorisée"})
		return
	}

	if err := session.Query("DELETE FROM addresses WHERE address_id = ?", addressID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse supprimée"})
}

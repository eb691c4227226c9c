package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"
	"vendora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth/gothic"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth termine le flow OAuth : crée le compte à la première
// connexion, puis renvoie un JWT comme l'auth locale.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(gothUser.Email)

	// Compte existant ?
	var userID gocql.UUID
	err = database.GetPreparedGetUserByEmail().Bind(email).Scan(&userID)
	if err != nil {
		// Première connexion : création du compte
		userID = gocql.TimeUUID()
		now := time.Now()
		if err := database.GetPreparedInsertUser().Bind(
			userID, email, "", gothUser.Name, "customer", provider, gothUser.UserID, nil, "", now, now,
		).Exec(); err != nil {
			log.Printf("❌ Erreur création compte OAuth: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
			return
		}
		if err := database.GetPreparedInsertUserByEmail().Bind(email, userID).Exec(); err != nil {
			log.Printf("⚠️ Erreur insertion users_by_email: %v", err)
		}
		log.Printf("✅ Compte %s créé via %s", email, provider)
	}

	user := models.User{
		ID:       userID.String(),
		Name:     gothUser.Name,
		Email:    email,
		Role:     "customer",
		Provider: provider,
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"provider": provider,
		"email":    email,
		"userId":   user.ID,
	})
}

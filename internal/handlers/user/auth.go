package user

import (
	"log"
	"net/http"
	"strings"
	"time"

	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"
	"vendora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ================== AUTH LOCALE ==================

func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		IsVendor bool   `json:"isVendor"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// email déjà pris ?
	var existingID gocql.UUID
	if err := database.GetPreparedGetUserByEmail().Bind(email).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	// ✅ Rôle défini dès l'inscription ; la boutique est créée ensuite
	// depuis le dashboard vendeur
	role := "customer"
	if input.IsVendor {
		role = "vendor"
	}

	userID := gocql.TimeUUID()
	now := time.Now()

	if err := database.GetPreparedInsertUser().Bind(
		userID, email, hashed, input.Name, role, "local", "", nil, "", now, now,
	).Exec(); err != nil {
		log.Printf("❌ Erreur insertion utilisateur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}
	if err := database.GetPreparedInsertUserByEmail().Bind(email, userID).Exec(); err != nil {
		log.Printf("⚠️ Erreur insertion users_by_email: %v", err)
	}

	user := models.User{
		ID:       userID.String(),
		Name:     input.Name,
		Email:    email,
		Role:     role,
		Provider: "local",
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Utilisateur créé: %s (%s)", email, role)
	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var userID gocql.UUID
	if err := database.GetPreparedGetUserByEmail().Bind(email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	var (
		dbEmail, password, name, role, provider, providerID string
		shopID                                              *gocql.UUID
		shopName                                            string
	)
	if err := database.GetPreparedGetUserByID().Bind(userID).Scan(
		&dbEmail, &password, &name, &role, &provider, &providerID, &shopID, &shopName,
	); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	var shopIDStr *string
	if shopID != nil {
		s := shopID.String()
		shopIDStr = &s
	}

	user := models.User{
		ID:       userID.String(),
		Name:     name,
		Email:    dbEmail,
		Role:     role,
		Provider: provider,
		ShopID:   shopIDStr,
		ShopName: shopName,
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"userId":   user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"role":     user.Role,
		"shopId":   user.ShopID,
		"shopName": user.ShopName,
	})
}

// Me renvoie le profil de l'utilisateur connecté (via cache)
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var (
		email, password, name, role, provider, providerID string
		shopID                                            *gocql.UUID
		shopName                                          string
	)
	uid, err := gocql.ParseUUID(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}
	if err := database.GetPreparedGetUserByID().Bind(uid).Scan(
		&email, &password, &name, &role, &provider, &providerID, &shopID, &shopName,
	); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	resp := gin.H{
		"userId":   userID,
		"email":    email,
		"name":     name,
		"role":     role,
		"provider": provider,
		"shopName": shopName,
	}
	if shopID != nil {
		resp["shopId"] = shopID.String()
	}
	c.JSON(http.StatusOK, resp)
}

package seller

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"vendora_back_end/internal/cache"
	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"
)

//
// --- BOUTIQUES ---
//

// slugify transforme "Ma Boutique Déco" en "ma-boutique-deco" (approximatif
// sur les accents, suffisant pour des URLs)
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"à", "a", "â", "a", "ç", "c", "ô", "o",
		"û", "u", "ù", "u", "î", "i", "ï", "i",
	)
	slug = replacer.Replace(slug)

	var b strings.Builder
	lastDash := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// 🟢 POST /api/shops
// Ouvre une boutique. Un utilisateur = une boutique maximum ; la création
// promeut le compte en "vendor".
func CreateShop(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	if c.GetString("shop_id") != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Vous avez déjà une boutique"})
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Country     string `json:"country" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	slug := slugify(req.Name)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom de boutique invalide"})
		return
	}

	// Le slug sert d'URL publique, il doit être unique
	var existing gocql.UUID
	if err := session.Query(`SELECT shop_id FROM shops_by_slug WHERE slug = ? LIMIT 1`, slug).Scan(&existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Une boutique porte déjà ce nom"})
		return
	}

	now := time.Now()
	shop := models.Shop{
		ID:          gocql.TimeUUID(),
		OwnerID:     userID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Country:     req.Country,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Query(`
		INSERT INTO shops (shop_id, owner_id, name, slug, description, logo_url, cover_url,
			country, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		shop.ID, shop.OwnerID, shop.Name, shop.Slug, shop.Description, shop.LogoURL,
		shop.CoverURL, shop.Country, shop.IsActive, shop.CreatedAt, shop.UpdatedAt,
	).Exec(); err != nil {
		log.Printf("❌ Erreur création boutique: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la boutique"})
		return
	}

	if err := session.Query(`INSERT INTO shops_by_slug (slug, shop_id) VALUES (?, ?)`,
		slug, shop.ID).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation slug boutique: %v", err)
	}

	// Promotion du compte en vendeur
	userUUID, err := gocql.ParseUUID(userID)
	if err == nil {
		if err := session.Query(`UPDATE users SET role = ?, shop_id = ?, shop_name = ?, updated_at = ? WHERE user_id = ?`,
			"vendor", shop.ID.String(), shop.Name, now, userUUID).Exec(); err != nil {
			log.Printf("⚠️ Erreur promotion vendeur: %v", err)
		}
	}
	cache.InvalidateUserCache(userID)

	log.Printf("✅ Boutique créée: %s (%s) pour %s", shop.Name, shop.ID, userID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Boutique créée avec succès",
		"shop":    shop,
	})
}

// 🟢 GET /api/shops/me
func GetMyShop(c *gin.Context) {
	shopID := c.GetString("shop_id")
	if shopID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune boutique associée"})
		return
	}

	shopUUID, err := gocql.ParseUUID(shopID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID boutique invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var shop models.Shop
	shop.ID = shopUUID
	if err := session.Query(`SELECT owner_id, name, slug, description, logo_url, cover_url,
		country, is_active, created_at, updated_at FROM shops WHERE shop_id = ?`, shopUUID).Scan(
		&shop.OwnerID, &shop.Name, &shop.Slug, &shop.Description, &shop.LogoURL,
		&shop.CoverURL, &shop.Country, &shop.IsActive, &shop.CreatedAt, &shop.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique introuvable"})
		return
	}

	c.JSON(http.StatusOK, shop)
}

// 🟡 PUT /api/shops/me
// Met à jour les réglages de la boutique du vendeur connecté.
func UpdateMyShop(c *gin.Context) {
	shopID := c.GetString("shop_id")
	if shopID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune boutique associée"})
		return
	}

	shopUUID, err := gocql.ParseUUID(shopID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID boutique invalide"})
		return
	}

	var req struct {
		Description *string `json:"description"`
		LogoURL     *string `json:"logo_url"`
		CoverURL    *string `json:"cover_url"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	updates := []string{}
	values := []interface{}{}

	if req.Description != nil {
		updates = append(updates, "description = ?")
		values = append(values, *req.Description)
	}
	if req.LogoURL != nil {
		updates = append(updates, "logo_url = ?")
		values = append(values, *req.LogoURL)
	}
	if req.CoverURL != nil {
		updates = append(updates, "cover_url = ?")
		values = append(values, *req.CoverURL)
	}
	if req.IsActive != nil {
		updates = append(updates, "is_active = ?")
		values = append(values, *req.IsActive)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune mise à jour fournie"})
		return
	}

	updates = append(updates, "updated_at = ?")
	values = append(values, time.Now())
	values = append(values, shopUUID)

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := "UPDATE shops SET " + strings.Join(updates, ", ") + " WHERE shop_id = ?"
	if err := session.Query(query, values...).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour boutique: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Boutique mise à jour avec succès"})
}

// 🟢 GET /api/shops/:slug — vitrine publique d'une boutique
func GetShopBySlug(c *gin.Context) {
	slug := c.Param("slug")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var shopUUID gocql.UUID
	if err := session.Query(`SELECT shop_id FROM shops_by_slug WHERE slug = ? LIMIT 1`, slug).Scan(&shopUUID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique introuvable"})
		return
	}

	var shop models.Shop
	shop.ID = shopUUID
	if err := session.Query(`SELECT owner_id, name, slug, description, logo_url, cover_url,
		country, is_active, created_at, updated_at FROM shops WHERE shop_id = ?`, shopUUID).Scan(
		&shop.OwnerID, &shop.Name, &shop.Slug, &shop.Description, &shop.LogoURL,
		&shop.CoverURL, &shop.Country, &shop.IsActive, &shop.CreatedAt, &shop.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique introuvable"})
		return
	}

	if !shop.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique introuvable"})
		return
	}

	c.JSON(http.StatusOK, shop)
}

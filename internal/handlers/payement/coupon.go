package pa

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"vendora_back_end/internal/checkout"
	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"
)

//
// --- COUPONS ---
//

// 🟢 POST /api/checkout/coupon
// Vérifie un code auprès de la base et applique la remise à la session.
// Un code invalide remet la remise à zéro ; seule une erreur serveur
// laisse la remise précédente en place.
func VerifyCoupon(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code coupon requis"})
		return
	}

	ctx := c.Request.Context()
	items := loadCartItems(ctx, userID)
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide ou introuvable"})
		return
	}

	session := loadSession(ctx, userID)
	subtotal := calcTotal(items)

	validation, err := validateCoupon(req.Code, subtotal, userID)
	if err != nil {
		// Erreur serveur : on ne touche pas à la remise en place
		log.Printf("❌ Erreur vérification coupon %s: %v", req.Code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la vérification du coupon"})
		return
	}

	if !validation.IsValid {
		// Réponse défavorable du serveur : remise à zéro
		session.ApplyCoupon("", 0)
		saveSession(ctx, userID, session)

		c.JSON(http.StatusOK, gin.H{
			"status":    "invalid",
			"is_active": false,
			"discount": gin.H{
				"discount_rate": 0,
				"discount_type": "",
			},
			"message": validation.ErrorMessage,
		})
		return
	}

	discount := checkout.ComputeDiscount(validation.Type, validation.DiscountRate, subtotal)
	session.ApplyCoupon(validation.Code, discount)
	saveSession(ctx, userID, session)

	log.Printf("✅ Coupon %s appliqué (remise %.2f€)", validation.Code, discount)
	c.JSON(http.StatusOK, gin.H{
		"status":    "valid",
		"is_active": true,
		"discount": gin.H{
			"discount_rate": validation.DiscountRate,
			"discount_type": validation.Type,
		},
		"message":  "Coupon appliqué",
		"stage":    session.Stage,
		"subtotal": subtotal,
		"amount":   discount,
	})
}

// ❌ DELETE /api/checkout/coupon
// Retire la remise en cours, la session retombe en rate_selected.
func RemoveCoupon(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()
	session := loadSession(ctx, userID)
	session.ApplyCoupon("", 0)
	saveSession(ctx, userID, session)

	c.JSON(http.StatusOK, gin.H{"message": "Coupon retiré", "stage": session.Stage})
}

// validateCoupon - Vérifie un code en base et calcule le taux applicable.
// Une erreur renvoyée signifie un problème serveur, pas un code invalide.
func validateCoupon(code string, cartTotal float64, userID string) (models.CouponValidation, error) {
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		return models.CouponValidation{}, err
	}

	var coupon models.Coupon
	query := `SELECT id, code, type, value, min_amount, max_amount, max_uses, used_count,
			  max_uses_per_user, expires_at, starts_at, is_active
			  FROM coupons WHERE code = ? LIMIT 1`

	if err := ordersSession.Query(query, strings.ToUpper(code)).Scan(
		&coupon.ID, &coupon.Code, &coupon.Type, &coupon.Value, &coupon.MinAmount,
		&coupon.MaxAmount, &coupon.MaxUses, &coupon.UsedCount, &coupon.MaxUsesPerUser,
		&coupon.ExpiresAt, &coupon.StartsAt, &coupon.IsActive,
	); err != nil {
		return models.CouponValidation{IsValid: false, ErrorMessage: "Code coupon invalide"}, nil
	}

	now := time.Now()

	if !coupon.IsActive {
		return models.CouponValidation{IsValid: false, ErrorMessage: "Ce coupon n'est plus actif"}, nil
	}

	if now.Before(coupon.StartsAt) {
		return models.CouponValidation{IsValid: false, ErrorMessage: "Ce coupon n'est pas encore valide"}, nil
	}

	if now.After(coupon.ExpiresAt) {
		return models.CouponValidation{IsValid: false, ErrorMessage: "Ce coupon a expiré"}, nil
	}

	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return models.CouponValidation{IsValid: false, ErrorMessage: "Ce coupon a atteint sa limite d'utilisation"}, nil
	}

	if cartTotal < coupon.MinAmount {
		return models.CouponValidation{
			IsValid:      false,
			ErrorMessage: fmt.Sprintf("Montant minimum requis: %.2f€", coupon.MinAmount),
		}, nil
	}

	// Limite par utilisateur
	if coupon.MaxUsesPerUser > 0 {
		var userUsageCount int
		userUsageQuery := `SELECT COUNT(*) FROM coupon_usage WHERE coupon_id = ? AND user_id = ?`
		if err := ordersSession.Query(userUsageQuery, coupon.ID, userID).Scan(&userUsageCount); err == nil {
			if userUsageCount >= coupon.MaxUsesPerUser {
				return models.CouponValidation{
					IsValid:      false,
					ErrorMessage: "Vous avez déjà utilisé ce coupon le nombre maximum de fois",
				}, nil
			}
		}
	}

	return models.CouponValidation{
		IsValid:      true,
		DiscountRate: coupon.Value,
		Type:         coupon.Type,
		Code:         coupon.Code,
	}, nil
}

//
// --- ADMINISTRATION DES COUPONS ---
//

// 🟢 POST /api/admin/coupons (Admin seulement)
func CreateCoupon(c *gin.Context) {
	var req struct {
		Code           string    `json:"code" binding:"required"`
		Type           string    `json:"type" binding:"required"` // "percentage", "fixed", "free_shipping"
		Value          float64   `json:"value" binding:"required"`
		MinAmount      float64   `json:"min_amount"`
		MaxAmount      *float64  `json:"max_amount"`
		MaxUses        int       `json:"max_uses"`
		MaxUsesPerUser int       `json:"max_uses_per_user"`
		ExpiresAt      time.Time `json:"expires_at" binding:"required"`
		StartsAt       time.Time `json:"starts_at"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if req.Type != "percentage" && req.Type != "fixed" && req.Type != "free_shipping" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de coupon invalide"})
		return
	}

	if req.Type == "percentage" && (req.Value <= 0 || req.Value > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pourcentage doit être entre 1 et 100"})
		return
	}

	if req.Type == "fixed" && req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant fixe doit être positif"})
		return
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Vérifier si le code existe déjà
	var existingCode string
	if err := ordersSession.Query(`SELECT code FROM coupons WHERE code = ? LIMIT 1`,
		strings.ToUpper(req.Code)).Scan(&existingCode); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ce code coupon existe déjà"})
		return
	}

	userID := c.GetString("user_id")
	now := time.Now()

	if req.StartsAt.IsZero() {
		req.StartsAt = now
	}

	coupon := models.Coupon{
		ID:             gocql.TimeUUID(),
		Code:           strings.ToUpper(req.Code),
		Type:           req.Type,
		Value:          req.Value,
		MinAmount:      req.MinAmount,
		MaxAmount:      req.MaxAmount,
		MaxUses:        req.MaxUses,
		UsedCount:      0,
		MaxUsesPerUser: req.MaxUsesPerUser,
		ExpiresAt:      req.ExpiresAt,
		StartsAt:       req.StartsAt,
		IsActive:       true,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	insertQuery := `
		INSERT INTO coupons (
			id, code, type, value, min_amount, max_amount, max_uses, used_count,
			max_uses_per_user, expires_at, starts_at, is_active, created_by,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if err := ordersSession.Query(insertQuery,
		coupon.ID, coupon.Code, coupon.Type, coupon.Value, coupon.MinAmount,
		coupon.MaxAmount, coupon.MaxUses, coupon.UsedCount, coupon.MaxUsesPerUser,
		coupon.ExpiresAt, coupon.StartsAt, coupon.IsActive, coupon.CreatedBy,
		coupon.CreatedAt, coupon.UpdatedAt,
	).Exec(); err != nil {
		log.Printf("❌ Erreur création coupon: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du coupon"})
		return
	}

	log.Printf("✅ Coupon créé: %s", coupon.Code)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon créé avec succès",
		"coupon":  coupon,
	})
}

// 🟢 GET /api/admin/coupons (Admin)
func GetAllCoupons(c *gin.Context) {
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := `SELECT id, code, type, value, min_amount, max_amount, max_uses, used_count,
			  max_uses_per_user, expires_at, starts_at, is_active,
			  created_by, created_at, updated_at FROM coupons`

	iter := ordersSession.Query(query).Iter()

	var coupons []models.Coupon
	var coupon models.Coupon

	for iter.Scan(&coupon.ID, &coupon.Code, &coupon.Type, &coupon.Value,
		&coupon.MinAmount, &coupon.MaxAmount, &coupon.MaxUses, &coupon.UsedCount,
		&coupon.MaxUsesPerUser, &coupon.ExpiresAt, &coupon.StartsAt, &coupon.IsActive,
		&coupon.CreatedBy, &coupon.CreatedAt, &coupon.UpdatedAt) {
		coupons = append(coupons, coupon)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération coupons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupons": coupons,
		"total":   len(coupons),
	})
}

// 🟡 PUT /api/admin/coupons/:id
func UpdateCoupon(c *gin.Context) {
	couponID := c.Param("id")

	var req struct {
		IsActive  *bool      `json:"is_active"`
		MaxUses   *int       `json:"max_uses"`
		ExpiresAt *time.Time `json:"expires_at"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	id, err := gocql.ParseUUID(couponID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID coupon invalide"})
		return
	}

	updates := []string{}
	values := []interface{}{}

	if req.IsActive != nil {
		updates = append(updates, "is_active = ?")
		values = append(values, *req.IsActive)
	}

	if req.MaxUses != nil {
		updates = append(updates, "max_uses = ?")
		values = append(values, *req.MaxUses)
	}

	if req.ExpiresAt != nil {
		updates = append(updates, "expires_at = ?")
		values = append(values, *req.ExpiresAt)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune mise à jour fournie"})
		return
	}

	updates = append(updates, "updated_at = ?")
	values = append(values, time.Now())
	values = append(values, id)

	query := fmt.Sprintf("UPDATE coupons SET %s WHERE id = ?", strings.Join(updates, ", "))

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := ordersSession.Query(query, values...).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour coupon: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon mis à jour avec succès"})
}

// ❌ DELETE /api/admin/coupons/:id
func DeleteCoupon(c *gin.Context) {
	couponID := c.Param("id")

	id, err := gocql.ParseUUID(couponID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID coupon invalide"})
		return
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := ordersSession.Query(`DELETE FROM coupons WHERE id = ?`, id).Exec(); err != nil {
		log.Printf("❌ Erreur suppression coupon: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon supprimé avec succès"})
}

// recordCouponUsage - Incrémente les compteurs après un paiement confirmé
func recordCouponUsage(code, userID string, orderID gocql.UUID) {
	if code == "" {
		return
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		return
	}

	var couponID gocql.UUID
	var usedCount int
	if err := ordersSession.Query(`SELECT id, used_count FROM coupons WHERE code = ? LIMIT 1`,
		strings.ToUpper(code)).Scan(&couponID, &usedCount); err != nil {
		return
	}

	if err := ordersSession.Query(`UPDATE coupons SET used_count = ?, updated_at = ? WHERE id = ?`,
		usedCount+1, time.Now(), couponID).Exec(); err != nil {
		log.Printf("⚠️ Incrément coupon %s impossible: %v", code, err)
	}

	if err := ordersSession.Query(`
		INSERT INTO coupon_usage (id, coupon_id, user_id, order_id, used_at)
		VALUES (?, ?, ?, ?, ?)`,
		gocql.TimeUUID(), couponID, userID, orderID, time.Now()).Exec(); err != nil {
		log.Printf("⚠️ Trace d'utilisation coupon %s impossible: %v", code, err)
	}
}

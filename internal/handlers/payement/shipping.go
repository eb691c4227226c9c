package pa

import (
	"errors"
	"log"
	"net/http"

	"vendora_back_end/internal/checkout"
	"vendora_back_end/internal/models"
	"vendora_back_end/internal/services"
	"vendora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

//
// --- ADRESSE & DEVIS DE LIVRAISON ---
//

// 🟡 PUT /api/checkout/address
// Enregistre identité + adresse de livraison dans la session de
// checkout. Toute modification invalide le devis précédent.
func SetCheckoutAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		FirstName string         `json:"firstname" binding:"required"`
		LastName  string         `json:"lastname" binding:"required"`
		Email     string         `json:"email" binding:"required"`
		Phone     string         `json:"phone" binding:"required"`
		Address   models.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if !req.Address.IsComplete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de livraison incomplète"})
		return
	}

	if dial := utils.DialCodeForCountry(req.Address.Country); dial != "" {
		req.Address.DialCode = dial
	}

	ctx := c.Request.Context()
	session := loadSession(ctx, userID)
	session.SetAddress(checkout.Identity{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}, req.Address)
	saveSession(ctx, userID, session)

	resp := gin.H{"message": "Adresse enregistrée", "stage": session.Stage}
	if utils.IsSuspiciousPostalCode(req.Address.PostalCode) {
		resp["warning"] = "Le code postal semble incomplet, vérifiez votre adresse"
	}
	c.JSON(http.StatusOK, resp)
}

// 🟢 POST /api/checkout/rates
// Demande un devis de livraison pour le panier courant. Appel librement
// répétable (re-cotation après modification d'adresse) ; en cas d'échec
// l'état précédent reste intact.
func RequestShippingRates(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()

	items := loadCartItems(ctx, userID)
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide ou introuvable"})
		return
	}

	session := loadSession(ctx, userID)
	if !session.Address.IsComplete() || !session.Identity.IsComplete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Renseignez d'abord votre adresse de livraison"})
		return
	}

	if services.Shipping == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service de livraison indisponible"})
		return
	}

	// Type d'envoi : "service" si le panier ne contient que des
	// prestations, sinon "product"
	shipType := "service"
	for _, item := range items {
		if item.Kind != "service" {
			shipType = "product"
			break
		}
	}

	payload := checkout.BuildPayload(items, session.Identity, models.RateOption{}, 0, "")

	quote, err := services.Shipping.RequestRates(ctx, services.QuoteRequest{
		FirstName: session.Identity.FirstName,
		LastName:  session.Identity.LastName,
		Email:     session.Identity.Email,
		Phone:     session.Identity.Phone,
		Country:   session.Address.Country,
		Street:    session.Address.Street,
		City:      session.Address.City,
		State:     session.Address.State,
		Zip:       session.Address.PostalCode,
		Type:      shipType,
		Products:  payload.Products,
	})
	if err != nil {
		// L'état (panier, session, devis précédent) reste intact
		var qe *services.QuoteError
		if errors.As(err, &qe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": qe.Message})
			return
		}
		log.Printf("❌ Erreur devis livraison: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Impossible de calculer les frais de livraison"})
		return
	}

	// Le nouveau devis écrase intégralement le précédent
	if err := session.SetQuote(*quote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saveSession(ctx, userID, session)

	c.JSON(http.StatusOK, gin.H{"rate": quote, "stage": session.Stage})
}

// 🟢 POST /api/checkout/select
// Retient "cheapest" ou "fastest". Une nouvelle sélection remplace
// entièrement la précédente — jamais de fusion.
func SelectShippingRate(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		Option string `json:"option" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := c.Request.Context()
	session := loadSession(ctx, userID)

	if err := session.SelectRate(req.Option); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saveSession(ctx, userID, session)

	items := loadCartItems(ctx, userID)
	selected := session.Selected()
	summary := checkout.AggregateRate(*selected)
	subtotal := checkout.Subtotal(items)

	c.JSON(http.StatusOK, gin.H{
		"stage":              session.Stage,
		"option":             req.Option,
		"shipping_fee":       summary.ShippingFee,
		"carriers":           summary.Carriers,
		"estimated_delivery": summary.EstimatedDelivery,
		"subtotal":           subtotal,
		"total":              checkout.Total(subtotal, summary.ShippingFee, session.Discount),
	})
}

package pa

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	checkoutsession "github.com/stripe/stripe-go/v83/checkout/session"

	"vendora_back_end/internal/checkout"
)

// 💳 POST /api/checkout/commit
// Transforme la session de checkout en session de paiement Stripe et
// renvoie l'URL de redirection. Toutes les validations passent AVANT le
// moindre appel réseau ; en cas d'échec Stripe l'état est préservé pour
// une nouvelle tentative.
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	if userID == "" || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()
	items := loadCartItems(ctx, userID)
	session := loadSession(ctx, userID)

	// ✅ 1. Validation locale complète — aucun appel réseau avant ce point
	if err := session.BeginCommit(items); err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide ou introuvable"})
		case errors.Is(err, checkout.ErrMissingIdentity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Coordonnées de contact incomplètes"})
		case errors.Is(err, checkout.ErrIncompleteAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de livraison incomplète"})
		case errors.Is(err, checkout.ErrNoRateSelected):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Choisissez d'abord une option de livraison"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	saveSession(ctx, userID, session)

	// ✅ 2. Assembler le brouillon de commande
	selected := session.Selected()
	payload := checkout.BuildPayload(items, session.Identity, *selected, session.Discount, session.CouponCode)

	subtotal := calcTotal(items)
	total := checkout.Total(subtotal, payload.ShippingFee, session.Discount)

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		session.FailCommit()
		saveSession(ctx, userID, session)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sérialisation commande"})
		return
	}

	// ✅ 3. Créer la session Stripe Checkout
	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:     stripe.String(payload.Email),
		SuccessURL:        stripe.String(frontend + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(frontend + "/checkout"),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("eur"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Commande Vendora"),
					},
					UnitAmount: stripe.Int64(int64(total * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"user_id": userID,
			"email":   payload.Email,
			"payload": string(payloadJSON), // ✅ Brouillon de commande complet
		},
	}

	stripeSession, err := checkoutsession.New(params)
	if err != nil {
		// Échec côté prestataire : retour en rate_selected, rien n'est perdu
		session.FailCommit()
		saveSession(ctx, userID, session)
		log.Printf("❌ Erreur Stripe: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur création paiement", "details": err.Error()})
		return
	}

	session.CompleteCommit()
	saveSession(ctx, userID, session)

	log.Printf("💳 Session de paiement créée: %s (%.2f€) pour %s", stripeSession.ID, total, payload.Email)

	// ✅ 4. L'URL de redirection est la seule chose dont le client a besoin
	c.JSON(http.StatusOK, gin.H{"url": stripeSession.URL})
}

// 🟢 GET /api/checkout/session
// État courant de la session de checkout (reprise après rechargement).
func GetCheckoutSession(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()
	session := loadSession(ctx, userID)
	items := loadCartItems(ctx, userID)
	subtotal := calcTotal(items)

	resp := gin.H{
		"stage":       session.Stage,
		"identity":    session.Identity,
		"address":     session.Address,
		"coupon_code": session.CouponCode,
		"discount":    session.Discount,
		"subtotal":    subtotal,
	}

	if session.Quote != nil {
		resp["rate"] = session.Quote
	}
	if selected := session.Selected(); selected != nil {
		summary := checkout.AggregateRate(*selected)
		resp["selected"] = session.SelectedKey
		resp["shipping_fee"] = summary.ShippingFee
		resp["estimated_delivery"] = summary.EstimatedDelivery
		resp["total"] = checkout.Total(subtotal, summary.ShippingFee, session.Discount)
	}

	c.JSON(http.StatusOK, resp)
}

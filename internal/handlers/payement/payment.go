package pa

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"vendora_back_end/internal/checkout"
	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"
	"vendora_back_end/internal/utils"
)

// ✅ Webhook Stripe
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Println("❌ JSON invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu : %s", event.Type)
	handleStripeEvent(event)

	c.Status(http.StatusOK)
}

// ✅ Traitement de l'événement Stripe
func handleStripeEvent(event stripe.Event) {
	if event.Type != "checkout.session.completed" {
		log.Printf("ℹ️ Événement ignoré : %s", event.Type)
		return
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		log.Println("❌ Erreur décodage session Stripe:", err)
		return
	}
	log.Printf("🧠 Session de paiement confirmée : %s", cs.ID)

	userID := cs.Metadata["user_id"]
	userEmail := cs.Metadata["email"]
	payloadData := cs.Metadata["payload"]

	if userID == "" || userEmail == "" || payloadData == "" {
		log.Println("⚠️ Métadonnées incomplètes")
		return
	}

	var orderPayload checkout.CommitPayload
	if err := json.Unmarshal([]byte(payloadData), &orderPayload); err != nil {
		log.Println("❌ Erreur JSON brouillon de commande:", err)
		return
	}

	ctx := context.Background()
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		log.Println("❌ Erreur connexion base de données:", err)
		return
	}

	// 🔁 Idempotence : Stripe rejoue les webhooks, on ne ré-enregistre pas
	var existing gocql.UUID
	if err := ordersSession.Query(`SELECT order_id FROM orders_by_payment WHERE payment_id = ? LIMIT 1`,
		cs.ID).Scan(&existing); err == nil {
		log.Println("🔁 Commande déjà enregistrée, on ignore.")
		return
	}

	orders := splitByVendor(orderPayload, userID, cs.ID)
	if len(orders) == 0 {
		log.Println("⚠️ Brouillon de commande sans articles")
		return
	}
	log.Printf("🛒 %d commande(s) vendeur pour le paiement %s", len(orders), cs.ID)

	for _, order := range orders {
		itemsJSON, _ := json.Marshal(order.Items)

		if err := ordersSession.Query(`
			INSERT INTO orders_by_user (user_id, order_id, shop_id, payment_id, items_json,
				subtotal, shipping_fee, discount, total_price, coupon_code, carrier,
				service_code, estimated_delivery, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			order.UserID, order.ID, order.ShopID, order.PaymentID, string(itemsJSON),
			order.Subtotal, order.ShippingFee, order.Discount, order.TotalPrice,
			order.CouponCode, order.Carrier, order.ServiceCode, order.EstimatedDelivery,
			order.Status, order.CreatedAt).Exec(); err != nil {
			log.Println("❌ Erreur insertion commande:", err)
			return
		}

		if err := ordersSession.Query(`
			INSERT INTO orders_by_shop (shop_id, order_id, user_id, payment_id, items_json,
				subtotal, shipping_fee, discount, total_price, carrier, service_code,
				estimated_delivery, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			order.ShopID, order.ID, order.UserID, order.PaymentID, string(itemsJSON),
			order.Subtotal, order.ShippingFee, order.Discount, order.TotalPrice,
			order.Carrier, order.ServiceCode, order.EstimatedDelivery,
			order.Status, order.CreatedAt).Exec(); err != nil {
			log.Println("❌ Erreur insertion commande boutique:", err)
		}
	}

	if err := ordersSession.Query(`INSERT INTO orders_by_payment (payment_id, order_id) VALUES (?, ?)`,
		cs.ID, orders[0].ID).Exec(); err != nil {
		log.Println("⚠️ Marqueur d'idempotence non écrit:", err)
	}

	recordCouponUsage(orderPayload.CouponCode, userID, orders[0].ID)

	// ✅ Supprimer le panier Redis APRÈS l'enregistrement des commandes
	if err := database.RedisClient.Del(ctx, "cart:"+userID).Err(); err == nil {
		log.Printf("🧹 Panier supprimé Redis pour %s", userID)
		database.Redis.Publish(ctx, "cart:"+userID, "cleared")
	}
	clearSession(ctx, userID)

	// 📧 QR de suivi + facture PDF + e-mail, hors du chemin du webhook
	go func() {
		qrBase64, err := utils.GenerateTrackingQR(cs.ID)
		if err != nil {
			log.Println("⚠️ QR de suivi indisponible:", err)
		}

		html := utils.GenerateOrderConfirmationHTML(orders, userEmail, qrBase64)

		pdf, err := utils.RenderInvoicePDF(cs.ID, qrBase64)
		if err != nil {
			log.Println("❌ Erreur génération PDF :", err)
			pdf = nil
		}

		if err := utils.SendConfirmationEmail(userEmail, "Confirmation de votre commande Vendora", html, pdf); err != nil {
			log.Println("❌ Erreur envoi e-mail confirmation :", err)
		} else {
			log.Println("📧 E-mail de confirmation envoyé à", userEmail)
		}
	}()
}

// splitByVendor découpe un brouillon de commande en une commande par
// boutique. Les service codes suivent l'ordre d'apparition des boutiques
// dans la liste d'articles (même ordre que les segments du devis). Les
// frais de port et la remise sont portés par la première commande pour
// éviter tout double comptage.
func splitByVendor(payload checkout.CommitPayload, userID, paymentID string) []models.Order {
	now := time.Now()

	var shopOrder []string
	itemsByShop := map[string][]models.OrderItem{}
	subtotalByShop := map[string]float64{}

	for _, p := range payload.Products {
		if _, seen := itemsByShop[p.ShopID]; !seen {
			shopOrder = append(shopOrder, p.ShopID)
		}
		itemsByShop[p.ShopID] = append(itemsByShop[p.ShopID], models.OrderItem{
			ProductID:   p.ProductID,
			VariationID: p.VariationID,
			Name:        p.Name,
			UnitPrice:   p.UnitPrice,
			Quantity:    p.Quantity,
			Color:       p.Color,
			Size:        p.Size,
		})
		subtotalByShop[p.ShopID] += p.UnitPrice * float64(p.Quantity)
	}

	var orders []models.Order
	for i, shopID := range shopOrder {
		serviceCode := ""
		if i < len(payload.ShippingServiceCode) {
			serviceCode = payload.ShippingServiceCode[i]
		}

		order := models.Order{
			ID:                gocql.TimeUUID(),
			UserID:            userID,
			ShopID:            shopID,
			PaymentID:         paymentID,
			Items:             itemsByShop[shopID],
			Subtotal:          subtotalByShop[shopID],
			Carrier:           payload.ShippingCarrier,
			ServiceCode:       serviceCode,
			EstimatedDelivery: payload.EstimatedDelivery,
			Status:            "paid",
			CreatedAt:         now,
		}

		if i == 0 {
			order.ShippingFee = payload.ShippingFee
			order.Discount = payload.Discount
			order.CouponCode = payload.CouponCode
		}
		order.TotalPrice = checkout.Total(order.Subtotal, order.ShippingFee, order.Discount)

		orders = append(orders, order)
	}
	return orders
}

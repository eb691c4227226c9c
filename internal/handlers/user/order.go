package user

import (
	"encoding/json"
	"log"
	"net/http"

	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ✅ Récupère toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id, shop_id, payment_id, items_json, subtotal, shipping_fee, discount,
		total_price, coupon_code, carrier, service_code, estimated_delivery, status, created_at
		FROM orders_by_user WHERE user_id = ?`, userID).Iter()

	var orders []models.Order
	var (
		order     models.Order
		itemsJSON string
	)
	for iter.Scan(&order.ID, &order.ShopID, &order.PaymentID, &itemsJSON, &order.Subtotal,
		&order.ShippingFee, &order.Discount, &order.TotalPrice, &order.CouponCode,
		&order.Carrier, &order.ServiceCode, &order.EstimatedDelivery, &order.Status, &order.CreatedAt) {
		order.UserID = userID
		order.Items = nil
		if itemsJSON != "" {
			_ = json.Unmarshal([]byte(itemsJSON), &order.Items)
		}
		orders = append(orders, order)
	}

	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	log.Printf("✅ %d commandes trouvées pour user %s", len(orders), userID)

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
	})
}

// ✅ Récupère une commande spécifique par ID
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var (
		order     models.Order
		itemsJSON string
	)
	order.ID = orderID
	// ✅ Sécurité : on vérifie que la commande appartient bien à l'utilisateur
	err = session.Query(`SELECT shop_id, payment_id, items_json, subtotal, shipping_fee, discount,
		total_price, coupon_code, carrier, service_code, estimated_delivery, status, created_at
		FROM orders_by_user WHERE user_id = ? AND order_id = ?`, userID, orderID).Scan(
		&order.ShopID, &order.PaymentID, &itemsJSON, &order.Subtotal, &order.ShippingFee,
		&order.Discount, &order.TotalPrice, &order.CouponCode, &order.Carrier,
		&order.ServiceCode, &order.EstimatedDelivery, &order.Status, &order.CreatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	order.UserID = userID
	if itemsJSON != "" {
		_ = json.Unmarshal([]byte(itemsJSON), &order.Items)
	}

	c.JSON(http.StatusOK, order)
}

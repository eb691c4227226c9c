package seller

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"vendora_back_end/internal/database"
)

//
// --- TABLEAU DE BORD VENDEUR ---
//

// 🟢 GET /api/seller/dashboard
// Statistiques de la boutique : chiffre d'affaires, commandes par statut,
// annonces en rupture. Agrégation à la lecture, le volume par boutique
// reste raisonnable.
func GetDashboardStats(c *gin.Context) {
	shopID := c.GetString("shop_id")
	if shopID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Aucune boutique associée"})
		return
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Statistiques des commandes de la boutique
	var totalOrders int
	var totalRevenue float64
	var revenue30d float64
	statusCount := make(map[string]int)
	cutoff := time.Now().AddDate(0, 0, -30)

	iter := ordersSession.Query(`SELECT status, subtotal, created_at FROM orders_by_shop WHERE shop_id = ?`,
		shopID).Iter()
	var (
		status    string
		subtotal  float64
		createdAt time.Time
	)
	for iter.Scan(&status, &subtotal, &createdAt) {
		totalOrders++
		totalRevenue += subtotal
		statusCount[status]++
		if createdAt.After(cutoff) {
			revenue30d += subtotal
		}
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture stats commandes: %v", err)
	}

	var averageOrderValue float64
	if totalOrders > 0 {
		averageOrderValue = totalRevenue / float64(totalOrders)
	}

	// Statistiques des annonces
	catalogSession, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	shopUUID, err := gocql.ParseUUID(shopID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID boutique invalide"})
		return
	}

	var totalListings, activeListings, lowStock, outOfStock int
	listIter := catalogSession.Query(`SELECT kind, stock, is_active FROM listings_by_shop WHERE shop_id = ?`,
		shopUUID).Iter()
	var (
		kind     string
		stock    int
		isActive bool
	)
	for listIter.Scan(&kind, &stock, &isActive) {
		totalListings++
		if isActive {
			activeListings++
		}
		if kind == "product" {
			if stock == 0 {
				outOfStock++
			} else if stock < 10 {
				lowStock++
			}
		}
	}
	if err := listIter.Close(); err != nil {
		log.Printf("❌ Erreur lecture annonces: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": gin.H{
			"total":               totalOrders,
			"total_revenue":       totalRevenue,
			"revenue_30d":         revenue30d,
			"average_order_value": averageOrderValue,
			"by_status":           statusCount,
		},
		"listings": gin.H{
			"total":        totalListings,
			"active":       activeListings,
			"low_stock":    lowStock,
			"out_of_stock": outOfStock,
		},
	})
}

// 🟢 GET /api/seller/orders — commandes reçues par la boutique
func GetShopOrders(c *gin.Context) {
	shopID := c.GetString("shop_id")
	if shopID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Aucune boutique associée"})
		return
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := ordersSession.Query(`SELECT order_id, user_id, payment_id, items_json, subtotal,
		carrier, service_code, estimated_delivery, status, created_at
		FROM orders_by_shop WHERE shop_id = ?`, shopID).Iter()

	var orders []gin.H
	var (
		orderID           gocql.UUID
		userID            string
		paymentID         string
		itemsJSON         string
		subtotal          float64
		carrier           string
		serviceCode       string
		estimatedDelivery string
		status            string
		createdAt         time.Time
	)
	for iter.Scan(&orderID, &userID, &paymentID, &itemsJSON, &subtotal,
		&carrier, &serviceCode, &estimatedDelivery, &status, &createdAt) {
		orders = append(orders, gin.H{
			"order_id":           orderID,
			"user_id":            userID,
			"payment_id":         paymentID,
			"items_json":         itemsJSON,
			"subtotal":           subtotal,
			"carrier":            carrier,
			"service_code":       serviceCode,
			"estimated_delivery": estimatedDelivery,
			"status":             status,
			"created_at":         createdAt,
		})
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture commandes boutique: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

// 🟡 PUT /api/seller/orders/:id/status
// Le vendeur fait avancer sa commande : paid → shipped → delivered.
func UpdateOrderStatus(c *gin.Context) {
	shopID := c.GetString("shop_id")
	if shopID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Aucune boutique associée"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	valid := map[string]bool{"paid": true, "shipped": true, "delivered": true, "cancelled": true}
	if !valid[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu"})
		return
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// La commande doit appartenir à la boutique
	var buyerID string
	if err := ordersSession.Query(`SELECT user_id FROM orders_by_shop WHERE shop_id = ? AND order_id = ?`,
		shopID, orderID).Scan(&buyerID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if err := ordersSession.Query(`UPDATE orders_by_shop SET status = ? WHERE shop_id = ? AND order_id = ?`,
		req.Status, shopID, orderID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour statut: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}
	if err := ordersSession.Query(`UPDATE orders_by_user SET status = ? WHERE user_id = ? AND order_id = ?`,
		req.Status, buyerID, orderID).Exec(); err != nil {
		log.Printf("⚠️ Statut non propagé côté acheteur: %v", err)
	}

	log.Printf("✅ Commande %s → %s (boutique %s)", orderID, req.Status, shopID)
	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour", "status": req.Status})
}

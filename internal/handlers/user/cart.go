package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const cartTTL = 30 * 24 * time.Hour

func cartKey(userID string) string { return "cart:" + userID }

// notifyCart signale un changement aux websockets abonnés
func notifyCart(ctx context.Context, userID, event string) {
	database.Redis.Publish(ctx, cartKey(userID), event)
}

func loadCart(ctx context.Context, userID string) []models.CartItem {
	data, _ := database.RedisClient.Get(ctx, cartKey(userID)).Result()
	var cart []models.CartItem
	if data != "" {
		_ = json.Unmarshal([]byte(data), &cart)
	}
	return cart
}

func saveCart(ctx context.Context, userID string, cart []models.CartItem) {
	jsonData, _ := json.Marshal(cart)
	database.RedisClient.Set(ctx, cartKey(userID), jsonData, cartTTL)
}

// sameLine — même produit ET même déclinaison
func sameLine(a, b models.CartItem) bool {
	return a.ProductID == b.ProductID && a.VariationID == b.VariationID
}

func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart := loadCart(context.Background(), userID)
	if cart == nil {
		cart = []models.CartItem{} // panier vide
	}

	var subtotal float64
	for _, item := range cart {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{"items": cart, "subtotal": subtotal})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID   string `json:"productId"`
		VariationID string `json:"variationId"`
		Quantity    int    `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	// 🧩 Récupération de l'annonce depuis ScyllaDB
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var (
		name, kind    string
		price         float64
		stock         int
		shopID        gocql.UUID
		imageURLs     []string
		hasVariations bool
	)
	err = session.Query(`SELECT name, kind, price, stock, shop_id, image_urls, has_variations
	                     FROM listings WHERE listing_id = ?`, gocql.UUID(productID)).Scan(
		&name, &kind, &price, &stock, &shopID, &imageURLs, &hasVariations)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	item := models.CartItem{
		ProductID: input.ProductID,
		Name:      name,
		Kind:      kind,
		UnitPrice: price,
		Quantity:  input.Quantity,
		ShopID:    shopID.String(),
	}
	if len(imageURLs) > 0 {
		item.ImageURL = imageURLs[0]
	}

	// 🔹 Produit à déclinaisons : la déclinaison porte prix, stock,
	// couleur et taille
	if hasVariations {
		if input.VariationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Déclinaison requise pour ce produit"})
			return
		}
		variationID, err := uuid.Parse(input.VariationID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID déclinaison invalide"})
			return
		}
		var (
			color, size string
			vPrice      float64
			vStock      int
		)
		err = session.Query(`SELECT color, size, price, stock
		                     FROM variations WHERE listing_id = ? AND variation_id = ?`,
			gocql.UUID(productID), gocql.UUID(variationID)).Scan(&color, &size, &vPrice, &vStock)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Déclinaison introuvable"})
			return
		}
		item.VariationID = input.VariationID
		item.Color = color
		item.Size = size
		item.UnitPrice = vPrice
		stock = vStock
	}

	if stock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Stock insuffisant",
			"available": stock,
			"requested": input.Quantity,
		})
		return
	}

	ctx := context.Background()
	cart := loadCart(ctx, userID)

	// 🔁 Met à jour ou ajoute la ligne
	found := false
	for i := range cart {
		if sameLine(cart[i], item) {
			cart[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, item)
	}

	saveCart(ctx, userID, cart)
	notifyCart(ctx, userID, "updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Article ajouté au panier",
		"items":   cart,
	})
}

//
// 🟡 PUT /api/cart/quantity
//
func UpdateCartQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID   string `json:"productId"`
		VariationID string `json:"variationId"`
		Quantity    int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	ctx := context.Background()
	cart := loadCart(ctx, userID)

	target := models.CartItem{ProductID: input.ProductID, VariationID: input.VariationID}
	found := false
	for i := range cart {
		if sameLine(cart[i], target) {
			cart[i].Quantity = input.Quantity
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article absent du panier"})
		return
	}

	saveCart(ctx, userID, cart)
	notifyCart(ctx, userID, "updated")

	c.JSON(http.StatusOK, gin.H{"items": cart})
}

//
// ❌ DELETE /api/cart/:productId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("productId")
	variationID := c.Query("variationId")

	ctx := context.Background()
	cart := loadCart(ctx, userID)
	if cart == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Panier vide"})
		return
	}

	target := models.CartItem{ProductID: productID, VariationID: variationID}
	newCart := []models.CartItem{}
	for _, item := range cart {
		if !sameLine(item, target) {
			newCart = append(newCart, item)
		}
	}

	saveCart(ctx, userID, newCart)
	notifyCart(ctx, userID, "updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Article supprimé du panier",
		"items":   newCart,
	})
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := context.Background()
	if err := database.RedisClient.Del(ctx, cartKey(userID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}
	notifyCart(ctx, userID, "cleared")

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}

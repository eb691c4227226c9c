package seller

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"vendora_back_end/internal/cache"
	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"
	"vendora_back_end/internal/services"
)

//
// --- ANNONCES (PRODUITS & SERVICES) ---
//

// 🟢 POST /api/seller/listings
// Publie un produit ou un service. Les services n'ont ni stock ni
// déclinaisons.
func CreateListing(c *gin.Context) {
	shopID := c.GetString("shop_id")
	if shopID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Aucune boutique associée"})
		return
	}

	var l models.Listing
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if l.Kind != "product" && l.Kind != "service" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'kind' doit valoir 'product' ou 'service'"})
		return
	}
	if l.Name == "" || l.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et prix requis"})
		return
	}
	if l.Kind == "service" {
		l.Stock = 0
		l.HasVariations = false
		l.Variations = nil
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Catégorie obligatoire et existante
	if l.CategoryID == (gocql.UUID{}) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'category_id' est obligatoire"})
		return
	}
	var categoryName string
	if err := session.Query(`SELECT name FROM categories WHERE category_id = ?`, l.CategoryID).Scan(&categoryName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
		return
	}

	shopUUID, err := gocql.ParseUUID(shopID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID boutique invalide"})
		return
	}

	l.ID = gocql.TimeUUID()
	l.ShopID = shopUUID
	l.IsActive = true
	l.HasVariations = len(l.Variations) > 0
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	if err := session.Query(`
		INSERT INTO listings (listing_id, shop_id, kind, name, description, price, stock, sku,
			weight, category_id, image_urls, tags, is_active, has_variations, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.ShopID, l.Kind, l.Name, l.Description, l.Price, l.Stock, l.SKU,
		l.Weight, l.CategoryID, l.ImageURLs, l.Tags, l.IsActive, l.HasVariations,
		l.CreatedAt, l.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création annonce: " + err.Error()})
		return
	}

	// ✅ Index par boutique et par catégorie pour les listes
	if err := session.Query(`INSERT INTO listings_by_shop (shop_id, listing_id, kind, name, price, stock, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ShopID, l.ID, l.Kind, l.Name, l.Price, l.Stock, l.IsActive).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation listings_by_shop: %v", err)
	}
	if err := session.Query(`INSERT INTO listings_by_category (category_id, listing_id, kind, name, price, stock)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.CategoryID, l.ID, l.Kind, l.Name, l.Price, l.Stock).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation listings_by_category: %v", err)
	}

	// Déclinaisons éventuelles
	for i := range l.Variations {
		v := &l.Variations[i]
		v.ID = gocql.TimeUUID()
		v.ListingID = l.ID
		if err := session.Query(`INSERT INTO variations (listing_id, variation_id, color, size, price, stock, sku)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			v.ListingID, v.ID, v.Color, v.Size, v.Price, v.Stock, v.SKU).Exec(); err != nil {
			log.Printf("⚠️ Erreur insertion déclinaison: %v", err)
		}
	}

	// 🔄 Indexation Elasticsearch
	go services.IndexListing(l)

	log.Printf("✅ Annonce créée: %s (%s) boutique %s", l.Name, l.Kind, shopID)
	c.JSON(http.StatusCreated, l)
}

// 🟢 GET /api/seller/listings — annonces de la boutique du vendeur
func GetMyListings(c *gin.Context) {
	shopID := c.GetString("shop_id")
	if shopID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Aucune boutique associée"})
		return
	}

	shopUUID, err := gocql.ParseUUID(shopID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID boutique invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT listing_id, kind, name, price, stock, is_active
		FROM listings_by_shop WHERE shop_id = ?`, shopUUID).Iter()

	var listings []gin.H
	var (
		listingID gocql.UUID
		kind      string
		name      string
		price     float64
		stock     int
		isActive  bool
	)
	for iter.Scan(&listingID, &kind, &name, &price, &stock, &isActive) {
		listings = append(listings, gin.H{
			"id":        listingID,
			"kind":      kind,
			"name":      name,
			"price":     price,
			"stock":     stock,
			"is_active": isActive,
		})
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture annonces: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings, "total": len(listings)})
}

// 🟡 PUT /api/seller/listings/:id
func UpdateListing(c *gin.Context) {
	shopID := c.GetString("shop_id")
	if shopID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Aucune boutique associée"})
		return
	}

	listingID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID annonce invalide"})
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// ✅ Sécurité : l'annonce doit appartenir à la boutique du vendeur
	var ownerShop gocql.UUID
	if err := session.Query(`SELECT shop_id FROM listings WHERE listing_id = ?`, listingID).Scan(&ownerShop); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return
	}
	if ownerShop.String() != shopID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette annonce n'appartient pas à votre boutique"})
		return
	}

	updates := []string{}
	values := []interface{}{}
	if req.Name != nil {
		updates = append(updates, "name = ?")
		values = append(values, *req.Name)
	}
	if req.Description != nil {
		updates = append(updates, "description = ?")
		values = append(values, *req.Description)
	}
	if req.Price != nil {
		updates = append(updates, "price = ?")
		values = append(values, *req.Price)
	}
	if req.Stock != nil {
		updates = append(updates, "stock = ?")
		values = append(values, *req.Stock)
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
	values = append(values, listingID)

	query := "UPDATE listings SET "
	for i, u := range updates {
		if i > 0 {
			query += ", "
		}
		query += u
	}
	query += " WHERE listing_id = ?"

	if err := session.Query(query, values...).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour annonce: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	cache.InvalidateListingCache(listingID.String())

	// 🔄 Ré-indexation avec l'état à jour
	var l models.Listing
	l.ID = listingID
	if err := session.Query(`SELECT shop_id, kind, name, description, price, stock, sku, weight,
		category_id, image_urls, tags, is_active, has_variations, created_at, updated_at
		FROM listings WHERE listing_id = ?`, listingID).Scan(
		&l.ShopID, &l.Kind, &l.Name, &l.Description, &l.Price, &l.Stock, &l.SKU, &l.Weight,
		&l.CategoryID, &l.ImageURLs, &l.Tags, &l.IsActive, &l.HasVariations,
		&l.CreatedAt, &l.UpdatedAt); err == nil {
		go services.IndexListing(l)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Annonce mise à jour avec succès"})
}

// ❌ DELETE /api/seller/listings/:id
func DeleteListing(c *gin.Context) {
	shopID := c.GetString("shop_id")
	if shopID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Aucune boutique associée"})
		return
	}

	listingID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID annonce invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var ownerShop gocql.UUID
	var categoryID gocql.UUID
	if err := session.Query(`SELECT shop_id, category_id FROM listings WHERE listing_id = ?`, listingID).Scan(&ownerShop, &categoryID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return
	}
	if ownerShop.String() != shopID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette annonce n'appartient pas à votre boutique"})
		return
	}

	if err := session.Query(`DELETE FROM listings WHERE listing_id = ?`, listingID).Exec(); err != nil {
		log.Printf("❌ Erreur suppression annonce: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}
	if err := session.Query(`DELETE FROM listings_by_shop WHERE shop_id = ? AND listing_id = ?`,
		ownerShop, listingID).Exec(); err != nil {
		log.Printf("⚠️ Erreur suppression index boutique: %v", err)
	}
	if err := session.Query(`DELETE FROM listings_by_category WHERE category_id = ? AND listing_id = ?`,
		categoryID, listingID).Exec(); err != nil {
		log.Printf("⚠️ Erreur suppression index catégorie: %v", err)
	}
	if err := session.Query(`DELETE FROM variations WHERE listing_id = ?`, listingID).Exec(); err != nil {
		log.Printf("⚠️ Erreur suppression déclinaisons: %v", err)
	}

	cache.InvalidateListingCache(listingID.String())
	go services.RemoveListingFromIndex(listingID.String())

	c.JSON(http.StatusOK, gin.H{"message": "Annonce supprimée avec succès"})
}

// 📤 POST /api/seller/listings/:id/images
// Téléverse une image vers MinIO et l'ajoute à l'annonce.
func UploadListingImage(c *gin.Context) {
	shopID := c.GetString("shop_id")
	if shopID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Aucune boutique associée"})
		return
	}

	listingID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID annonce invalide"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image requis"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var ownerShop gocql.UUID
	var imageURLs []string
	if err := session.Query(`SELECT shop_id, image_urls FROM listings WHERE listing_id = ?`, listingID).Scan(&ownerShop, &imageURLs); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return
	}
	if ownerShop.String() != shopID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette annonce n'appartient pas à votre boutique"})
		return
	}

	url, err := services.UploadListingImage(c.Request.Context(), shopID, file)
	if err != nil {
		log.Printf("❌ Erreur upload MinIO: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du téléversement"})
		return
	}

	imageURLs = append(imageURLs, url)
	if err := session.Query(`UPDATE listings SET image_urls = ?, updated_at = ? WHERE listing_id = ?`,
		imageURLs, time.Now(), listingID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement image"})
		return
	}

	log.Printf("🪣 Image ajoutée à l'annonce %s: %s", listingID, url)
	c.JSON(http.StatusOK, gin.H{"url": url, "images": imageURLs})
}

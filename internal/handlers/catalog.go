package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"
	"vendora_back_end/internal/services"
)

//
// --- VITRINE (CATALOGUE PUBLIC) ---
//

// 🔎 GET /api/search?q=...&kind=...&shop_id=...
// Recherche plein texte dans Elasticsearch. kind restreint à "product"
// ou "service", shop_id à une boutique.
func SearchListings(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	kind := c.Query("kind")
	if kind != "" && kind != "product" && kind != "service" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind doit valoir 'product' ou 'service'"})
		return
	}

	results, err := services.SearchListings(query, kind, c.Query("shop_id"))
	if err != nil {
		log.Printf("❌ Erreur recherche Elasticsearch: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Recherche indisponible"})
		return
	}
	if results == nil {
		results = []map[string]interface{}{}
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "total": len(results)})
}

// 🟢 GET /api/categories
func GetCategories(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT category_id, name, slug FROM categories`).Iter()

	var categories []models.Category
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.Slug) {
		categories = append(categories, cat)
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// 🟢 GET /api/categories/:id/listings — parcours par rayon
func GetListingsByCategory(c *gin.Context) {
	categoryID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT listing_id, kind, name, price, stock
		FROM listings_by_category WHERE category_id = ?`, categoryID).Iter()

	var listings []gin.H
	var (
		listingID gocql.UUID
		kind      string
		name      string
		price     float64
		stock     int
	)
	for iter.Scan(&listingID, &kind, &name, &price, &stock) {
		listings = append(listings, gin.H{
			"id":    listingID,
			"kind":  kind,
			"name":  name,
			"price": price,
			"stock": stock,
		})
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture annonces"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings, "total": len(listings)})
}

// 🟢 GET /api/listings/:id — fiche détaillée, déclinaisons incluses
func GetListingByID(c *gin.Context) {
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

	var l models.Listing
	l.ID = listingID
	if err := session.Query(`SELECT shop_id, kind, name, description, price, stock, sku, weight,
		category_id, image_urls, tags, is_active, has_variations, created_at, updated_at
		FROM listings WHERE listing_id = ?`, listingID).Scan(
		&l.ShopID, &l.Kind, &l.Name, &l.Description, &l.Price, &l.Stock, &l.SKU, &l.Weight,
		&l.CategoryID, &l.ImageURLs, &l.Tags, &l.IsActive, &l.HasVariations,
		&l.CreatedAt, &l.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return
	}

	if !l.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return
	}

	if l.HasVariations {
		iter := session.Query(`SELECT variation_id, color, size, price, stock, sku
			FROM variations WHERE listing_id = ?`, listingID).Iter()
		var v models.Variation
		v.ListingID = listingID
		for iter.Scan(&v.ID, &v.Color, &v.Size, &v.Price, &v.Stock, &v.SKU) {
			l.Variations = append(l.Variations, v)
		}
		if err := iter.Close(); err != nil {
			log.Printf("⚠️ Erreur lecture déclinaisons: %v", err)
		}
	}

	c.JSON(http.StatusOK, l)
}

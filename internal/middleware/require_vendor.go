package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireVendor — l'utilisateur doit être vendeur et posséder une
// boutique. Place shop_id du token à disposition des handlers vendeur.
func RequireVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != "vendor" && role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux vendeurs"})
			c.Abort()
			return
		}

		if role == "vendor" && c.GetString("shop_id") == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Aucune boutique associée à ce compte"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin — réservé aux administrateurs de la marketplace.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
			c.Abort()
			return
		}
		c.Next()
	}
}

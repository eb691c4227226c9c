package pa

import (
	"context"
	"encoding/json"
	"time"

	"vendora_back_end/internal/checkout"
	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"
)

// Durée de vie d'une session de checkout en Redis. Abandonner l'onglet
// est la seule annulation : la clé expire d'elle-même.
const checkoutSessionTTL = 2 * time.Hour

func sessionKey(userID string) string { return "checkout:" + userID }

// loadSession récupère la session de checkout en cours, ou une session
// vierge s'il n'y en a pas.
func loadSession(ctx context.Context, userID string) *checkout.Session {
	data, err := database.Redis.Get(ctx, sessionKey(userID)).Result()
	if err != nil || data == "" {
		return checkout.NewSession()
	}
	var s checkout.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return checkout.NewSession()
	}
	return &s
}

func saveSession(ctx context.Context, userID string, s *checkout.Session) {
	data, _ := json.Marshal(s)
	database.Redis.Set(ctx, sessionKey(userID), data, checkoutSessionTTL)
}

func clearSession(ctx context.Context, userID string) {
	database.Redis.Del(ctx, sessionKey(userID))
}

// loadCartItems lit le panier Redis de l'utilisateur.
func loadCartItems(ctx context.Context, userID string) []models.CartItem {
	data, err := database.Redis.Get(ctx, "cart:"+userID).Result()
	if err != nil || data == "" {
		return nil
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil
	}
	return items
}

// calcTotal calcule le montant total d'un panier
func calcTotal(items []models.CartItem) float64 {
	return checkout.Subtotal(items)
}

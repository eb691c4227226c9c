package cache

import (
	"context"
	"encoding/json"
	"time"

	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const (
	UserCacheTTL    = 5 * time.Minute
	ListingCacheTTL = 10 * time.Minute
)

// GetUserFromCache récupère un utilisateur depuis Redis ou ScyllaDB
func GetUserFromCache(userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	userUUID := gocql.UUID(uid)

	var (
		email, name, role, provider string
		shopID                      *gocql.UUID
		shopName                    string
	)

	err = session.Query(`SELECT email, name, role, provider, shop_id, shop_name
		FROM users WHERE user_id = ?`, userUUID).Scan(
		&email, &name, &role, &provider, &shopID, &shopName)
	if err != nil {
		return nil, err
	}

	var shopIDStr *string
	if shopID != nil {
		s := shopID.String()
		shopIDStr = &s
	}

	user := &models.User{
		ID:       userID,
		Email:    email,
		Name:     name,
		Role:     role,
		Provider: provider,
		ShopID:   shopIDStr,
		ShopName: shopName,
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return user, nil
}

// InvalidateUserCache invalide le cache d'un utilisateur
func InvalidateUserCache(userID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "user:"+userID)
}

// GetListingNamesFromCache récupère plusieurs noms d'annonces
func GetListingNamesFromCache(listingIDs []string) map[string]string {
	ctx := context.Background()
	result := make(map[string]string)
	missingIDs := []string{}

	// 1. Essayer de récupérer depuis Redis
	for _, listingID := range listingIDs {
		key := "listing_name:" + listingID
		name, err := database.Redis.Get(ctx, key).Result()
		if err == nil {
			result[listingID] = name
		} else {
			missingIDs = append(missingIDs, listingID)
		}
	}

	// 2. Récupérer les annonces manquantes depuis ScyllaDB
	if len(missingIDs) > 0 {
		session, err := database.GetCatalogSession()
		if err == nil {
			for _, listingID := range missingIDs {
				lid, err := uuid.Parse(listingID)
				if err == nil {
					var name string
					err = session.Query("SELECT name FROM listings WHERE listing_id = ?", gocql.UUID(lid)).Scan(&name)
					if err == nil {
						result[listingID] = name
						database.Redis.Set(ctx, "listing_name:"+listingID, name, ListingCacheTTL)
					}
				}
			}
		}
	}

	return result
}

// InvalidateListingCache invalide le cache d'une annonce
func InvalidateListingCache(listingID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "listing:"+listingID, "listing_name:"+listingID)
}

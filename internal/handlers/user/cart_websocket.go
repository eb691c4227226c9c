package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket gère la synchronisation temps réel du panier
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	// S'abonner au canal Redis pour ce user
	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg := <-ch:
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}
			data, err := database.Redis.Get(ctx, "cart:"+userID).Result()

			var response map[string]interface{}
			if err != nil || data == "" {
				response = map[string]interface{}{
					"type":  "cart_updated",
					"items": []interface{}{},
					"total": 0,
					"count": 0,
				}
			} else {
				var cart []models.CartItem
				json.Unmarshal([]byte(data), &cart)

				total := 0.0
				for _, item := range cart {
					total += item.UnitPrice * float64(item.Quantity)
				}

				response = map[string]interface{}{
					"type":  "cart_updated",
					"items": cart,
					"total": total,
					"count": len(cart),
				}
			}

			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

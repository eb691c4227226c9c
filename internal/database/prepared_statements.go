package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les requêtes fréquentes
	stmtGetUserByEmail    *gocql.Query
	stmtGetUserByID       *gocql.Query
	stmtInsertUser        *gocql.Query
	stmtInsertUserByEmail *gocql.Query
	stmtUpdateUser        *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}

		stmtGetUserByEmail = session.Query("SELECT user_id FROM users_by_email WHERE email = ?")

		stmtGetUserByID = session.Query(`SELECT email, password, name, role, provider, provider_id, shop_id, shop_name
			FROM users WHERE user_id = ?`)

		stmtInsertUser = session.Query(`INSERT INTO users (user_id, email, password, name, role, provider, provider_id, shop_id, shop_name, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

		stmtInsertUserByEmail = session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)")

		stmtUpdateUser = session.Query("UPDATE users SET name = ?, role = ?, shop_id = ?, shop_name = ?, updated_at = ? WHERE user_id = ?")

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetUserByEmail() *gocql.Query {
	return stmtGetUserByEmail
}

func GetPreparedGetUserByID() *gocql.Query {
	return stmtGetUserByID
}

func GetPreparedInsertUser() *gocql.Query {
	return stmtInsertUser
}

func GetPreparedInsertUserByEmail() *gocql.Query {
	return stmtInsertUserByEmail
}

func GetPreparedUpdateUser() *gocql.Query {
	return stmtUpdateUser
}

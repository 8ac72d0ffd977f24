package dao

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(t.TempDir()+"/marketplace.db"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, money int) User {
	t.Helper()

	user := User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Money:    money,
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func seedPokemon(t *testing.T, db *gorm.DB, ownerID uint, name string) Pokemon {
	t.Helper()

	pokemon := Pokemon{
		UserID:    ownerID,
		PokeapiID: 25,
		Name:      name,
		Rarity:    3,
		Types:     []string{"electric"},
	}
	require.NoError(t, db.Create(&pokemon).Error)

	return pokemon
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []Notification {
	t.Helper()

	var notifications []Notification
	require.NoError(t, db.Where("user_id = ?", userID).Find(&notifications).Error)

	return notifications
}

package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Pokemon{},
		&MoneyTrade{},
		&BarterTrade{},
		&TradeRequest{},
		&TradeHistory{},
		&Notification{},
		&TradeReport{},
	)
}

// forUpdate applies a SELECT ... FOR UPDATE row lock. SQLite (used by the
// test suite) has no row-level locks and serializes writers on its own, so
// the clause is only emitted for postgres.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

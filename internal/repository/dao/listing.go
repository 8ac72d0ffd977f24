package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrAlreadyListed   = errors.New("pokemon already has an active listing")
	ErrInvalidAmount   = errors.New("asking price must be a positive integer")
	ErrListingNotFound = errors.New("listing not found")
)

const (
	ListingStatusActive    = "active"
	ListingStatusCompleted = "completed"
	ListingStatusFlagged   = "flagged"
	ListingStatusRemoved   = "removed"
)

type MoneyTrade struct {
	ID uint `gorm:"primaryKey"`

	PokemonID uint    `gorm:"not null;index"`
	Pokemon   Pokemon `gorm:"foreignKey:PokemonID"`

	AmountAsked int    `gorm:"not null"`
	Status      string `gorm:"not null;default:active;index"`
	IsFlagged   bool   `gorm:"not null;default:false"`
	FlagReason  string
	AdminNotes  string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BarterTrade struct {
	ID uint `gorm:"primaryKey"`

	PokemonID uint    `gorm:"not null;index"`
	Pokemon   Pokemon `gorm:"foreignKey:PokemonID"`

	TradePreferences string
	Status           string `gorm:"not null;default:active;index"`
	IsFlagged        bool   `gorm:"not null;default:false"`
	FlagReason       string
	AdminNotes       string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ListingDAO struct {
	db *gorm.DB
}

func NewListingDAO(db *gorm.DB) *ListingDAO {
	return &ListingDAO{
		db: db,
	}
}

// hasActiveListing reports whether the Pokémon carries an active listing of
// either kind. Must run inside the caller's transaction.
func hasActiveListing(tx *gorm.DB, pokemonID uint) (bool, error) {
	var count int64

	result := tx.Model(&MoneyTrade{}).
		Where("pokemon_id = ? AND status = ?", pokemonID, ListingStatusActive).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	if count > 0 {
		return true, nil
	}

	result = tx.Model(&BarterTrade{}).
		Where("pokemon_id = ? AND status = ?", pokemonID, ListingStatusActive).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *ListingDAO) CreateMoneyTrade(ctx context.Context, ownerID, pokemonID uint, amountAsked int) (MoneyTrade, error) {
	if amountAsked <= 0 {
		return MoneyTrade{}, ErrInvalidAmount
	}

	var created MoneyTrade

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pokemon Pokemon
		if err := forUpdate(tx).First(&pokemon, pokemonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPokemonNotFound
			}
			return err
		}
		if pokemon.UserID != ownerID {
			return ErrNotOwner
		}

		listed, err := hasActiveListing(tx, pokemonID)
		if err != nil {
			return err
		}
		if listed {
			return ErrAlreadyListed
		}

		created = MoneyTrade{
			PokemonID:   pokemonID,
			AmountAsked: amountAsked,
			Status:      ListingStatusActive,
		}

		return tx.Create(&created).Error
	})
	if err != nil {
		return MoneyTrade{}, err
	}

	return created, nil
}

func (d *ListingDAO) CreateBarterTrade(ctx context.Context, ownerID, pokemonID uint, preferences string) (BarterTrade, error) {
	var created BarterTrade

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pokemon Pokemon
		if err := forUpdate(tx).First(&pokemon, pokemonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPokemonNotFound
			}
			return err
		}
		if pokemon.UserID != ownerID {
			return ErrNotOwner
		}

		listed, err := hasActiveListing(tx, pokemonID)
		if err != nil {
			return err
		}
		if listed {
			return ErrAlreadyListed
		}

		created = BarterTrade{
			PokemonID:        pokemonID,
			TradePreferences: preferences,
			Status:           ListingStatusActive,
		}

		return tx.Create(&created).Error
	})
	if err != nil {
		return BarterTrade{}, err
	}

	return created, nil
}

// CancelActive removes any active listing of either kind that the owner
// holds for the Pokémon. A missing listing is a no-op, not an error;
// the returned flag tells whether anything was canceled.
func (d *ListingDAO) CancelActive(ctx context.Context, ownerID, pokemonID uint) (bool, error) {
	canceled := false

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pokemon Pokemon
		if err := forUpdate(tx).First(&pokemon, pokemonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPokemonNotFound
			}
			return err
		}
		if pokemon.UserID != ownerID {
			return ErrNotOwner
		}

		result := tx.Model(&MoneyTrade{}).
			Where("pokemon_id = ? AND status = ?", pokemonID, ListingStatusActive).
			Updates(map[string]any{"status": ListingStatusRemoved, "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			canceled = true
		}

		result = tx.Model(&BarterTrade{}).
			Where("pokemon_id = ? AND status = ?", pokemonID, ListingStatusActive).
			Updates(map[string]any{"status": ListingStatusRemoved, "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			canceled = true
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return canceled, nil
}

func (d *ListingDAO) FindActiveMoneyTradeByPokemonID(ctx context.Context, pokemonID uint) (MoneyTrade, error) {
	var trade MoneyTrade

	result := d.db.WithContext(ctx).
		Where("pokemon_id = ? AND status = ?", pokemonID, ListingStatusActive).
		First(&trade)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return MoneyTrade{}, ErrListingNotFound
		}

		return MoneyTrade{}, result.Error
	}

	return trade, nil
}

func (d *ListingDAO) FindActiveBarterTradeByPokemonID(ctx context.Context, pokemonID uint) (BarterTrade, error) {
	var trade BarterTrade

	result := d.db.WithContext(ctx).
		Where("pokemon_id = ? AND status = ?", pokemonID, ListingStatusActive).
		First(&trade)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BarterTrade{}, ErrListingNotFound
		}

		return BarterTrade{}, result.Error
	}

	return trade, nil
}

func (d *ListingDAO) FindMoneyTradeByID(ctx context.Context, id uint) (MoneyTrade, error) {
	var trade MoneyTrade

	result := d.db.WithContext(ctx).Preload("Pokemon").Preload("Pokemon.User").First(&trade, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return MoneyTrade{}, ErrListingNotFound
		}

		return MoneyTrade{}, result.Error
	}

	return trade, nil
}

func (d *ListingDAO) FindBarterTradeByID(ctx context.Context, id uint) (BarterTrade, error) {
	var trade BarterTrade

	result := d.db.WithContext(ctx).Preload("Pokemon").Preload("Pokemon.User").First(&trade, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BarterTrade{}, ErrListingNotFound
		}

		return BarterTrade{}, result.Error
	}

	return trade, nil
}

func (d *ListingDAO) FindActiveMoneyTrades(ctx context.Context) ([]MoneyTrade, error) {
	var trades []MoneyTrade

	result := d.db.WithContext(ctx).
		Preload("Pokemon").
		Preload("Pokemon.User").
		Where("status = ?", ListingStatusActive).
		Order("created_at DESC").
		Find(&trades)
	if result.Error != nil {
		return nil, result.Error
	}

	return trades, nil
}

func (d *ListingDAO) FindActiveBarterTrades(ctx context.Context) ([]BarterTrade, error) {
	var trades []BarterTrade

	result := d.db.WithContext(ctx).
		Preload("Pokemon").
		Preload("Pokemon.User").
		Where("status = ?", ListingStatusActive).
		Order("created_at DESC").
		Find(&trades)
	if result.Error != nil {
		return nil, result.Error
	}

	return trades, nil
}

// FindFeaturedMoneyTrades picks a random sample of active sale listings.
// RANDOM() is understood by both postgres and sqlite.
func (d *ListingDAO) FindFeaturedMoneyTrades(ctx context.Context, limit int) ([]MoneyTrade, error) {
	var trades []MoneyTrade

	result := d.db.WithContext(ctx).
		Preload("Pokemon").
		Preload("Pokemon.User").
		Where("status = ?", ListingStatusActive).
		Order("RANDOM()").
		Limit(limit).
		Find(&trades)
	if result.Error != nil {
		return nil, result.Error
	}

	return trades, nil
}

// SetModerationStatus applies a staff action to a listing of the given kind.
func (d *ListingDAO) SetModerationStatus(ctx context.Context, kind string, id uint, status string, isFlagged bool, flagReason string) error {
	updates := map[string]any{
		"status":      status,
		"is_flagged":  isFlagged,
		"flag_reason": flagReason,
		"updated_at":  time.Now(),
	}

	var result *gorm.DB
	switch kind {
	case "money":
		result = d.db.WithContext(ctx).Model(&MoneyTrade{}).Where("id = ?", id).Updates(updates)
	case "barter":
		result = d.db.WithContext(ctx).Model(&BarterTrade{}).Where("id = ?", id).Updates(updates)
	default:
		return ErrListingNotFound
	}

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}

	return nil
}

func (d *ListingDAO) CountActive(ctx context.Context) (money int64, barter int64, err error) {
	result := d.db.WithContext(ctx).Model(&MoneyTrade{}).
		Where("status = ?", ListingStatusActive).
		Count(&money)
	if result.Error != nil {
		return 0, 0, result.Error
	}

	result = d.db.WithContext(ctx).Model(&BarterTrade{}).
		Where("status = ?", ListingStatusActive).
		Count(&barter)
	if result.Error != nil {
		return 0, 0, result.Error
	}

	return money, barter, nil
}

func (d *ListingDAO) CountFlagged(ctx context.Context) (int64, error) {
	var money, barter int64

	result := d.db.WithContext(ctx).Model(&MoneyTrade{}).Where("is_flagged = ?", true).Count(&money)
	if result.Error != nil {
		return 0, result.Error
	}

	result = d.db.WithContext(ctx).Model(&BarterTrade{}).Where("is_flagged = ?", true).Count(&barter)
	if result.Error != nil {
		return 0, result.Error
	}

	return money + barter, nil
}

func (d *ListingDAO) FindFlaggedMoneyTrades(ctx context.Context) ([]MoneyTrade, error) {
	var trades []MoneyTrade

	result := d.db.WithContext(ctx).
		Preload("Pokemon").
		Preload("Pokemon.User").
		Where("is_flagged = ?", true).
		Order("updated_at DESC").
		Find(&trades)
	if result.Error != nil {
		return nil, result.Error
	}

	return trades, nil
}

func (d *ListingDAO) FindFlaggedBarterTrades(ctx context.Context) ([]BarterTrade, error) {
	var trades []BarterTrade

	result := d.db.WithContext(ctx).
		Preload("Pokemon").
		Preload("Pokemon.User").
		Where("is_flagged = ?", true).
		Order("updated_at DESC").
		Find(&trades)
	if result.Error != nil {
		return nil, result.Error
	}

	return trades, nil
}

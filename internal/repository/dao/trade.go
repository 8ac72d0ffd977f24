package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTradeNotFound     = errors.New("trade request not found")
	ErrSelfTrade         = errors.New("cannot trade with yourself")
	ErrNotForSale        = errors.New("pokemon is not for sale")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyPending    = errors.New("pokemon is already part of a pending trade request")
	ErrAlreadyResolved   = errors.New("trade request is already resolved")
	ErrNotAuthorized     = errors.New("user is not authorized to respond to this trade request")
)

const (
	TradeStatusPending  = "pending"
	TradeStatusAccepted = "accepted"
	TradeStatusDeclined = "declined"
)

type TradeRequest struct {
	ID uint `gorm:"primaryKey"`

	SenderID   uint `gorm:"not null;index"`
	Sender     User `gorm:"foreignKey:SenderID"`
	ReceiverID uint `gorm:"not null;index"`
	Receiver   User `gorm:"foreignKey:ReceiverID"`

	SenderPokemonID   uint    `gorm:"not null;index"`
	SenderPokemon     Pokemon `gorm:"foreignKey:SenderPokemonID"`
	ReceiverPokemonID uint    `gorm:"not null;index"`
	ReceiverPokemon   Pokemon `gorm:"foreignKey:ReceiverPokemonID"`

	Status    string    `gorm:"not null;default:pending;index"`
	CreatedAt time.Time `gorm:"not null"`
}

type TradeHistory struct {
	ID uint `gorm:"primaryKey"`

	BuyerID  uint `gorm:"not null;index"`
	Buyer    User `gorm:"foreignKey:BuyerID"`
	SellerID uint `gorm:"not null;index"`
	Seller   User `gorm:"foreignKey:SellerID"`

	PokemonID uint    `gorm:"not null;index"`
	Pokemon   Pokemon `gorm:"foreignKey:PokemonID"`

	Amount    int       `gorm:"not null"`
	Timestamp time.Time `gorm:"not null;index"`
}

func (TradeHistory) TableName() string {
	return "trade_histories"
}

type TradeDAO struct {
	db *gorm.DB
}

func NewTradeDAO(db *gorm.DB) *TradeDAO {
	return &TradeDAO{
		db: db,
	}
}

// countPendingReferencing counts pending trade requests that reference the
// Pokémon on either side, excluding the request with excludeID (0 for none).
// Must run inside the caller's transaction.
func countPendingReferencing(tx *gorm.DB, pokemonIDs []uint, excludeID uint) (int64, error) {
	var count int64

	result := tx.Model(&TradeRequest{}).
		Where("status = ?", TradeStatusPending).
		Where("sender_pokemon_id IN ? OR receiver_pokemon_id IN ?", pokemonIDs, pokemonIDs).
		Where("id <> ?", excludeID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Insert creates a pending trade request after re-checking, inside one
// transaction, that both Pokémon are still owned by their named parties and
// that neither is tied up in another pending request. The receiver is
// notified on success.
func (d *TradeDAO) Insert(ctx context.Context, request TradeRequest) (TradeRequest, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var senderPokemon, receiverPokemon Pokemon
		if err := forUpdate(tx).First(&senderPokemon, request.SenderPokemonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPokemonNotFound
			}
			return err
		}
		if err := forUpdate(tx).First(&receiverPokemon, request.ReceiverPokemonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPokemonNotFound
			}
			return err
		}

		if senderPokemon.UserID != request.SenderID || receiverPokemon.UserID != request.ReceiverID {
			return ErrNotOwner
		}

		pending, err := countPendingReferencing(tx, []uint{request.SenderPokemonID, request.ReceiverPokemonID}, 0)
		if err != nil {
			return err
		}
		if pending > 0 {
			return ErrAlreadyPending
		}

		request.Status = TradeStatusPending
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		var sender User
		if err := tx.First(&sender, request.SenderID).Error; err != nil {
			return err
		}

		message := fmt.Sprintf("%s wants to trade their %s for your %s.",
			sender.Username, senderPokemon.Name, receiverPokemon.Name)

		return insertNotification(tx, request.ReceiverID, message, fmt.Sprintf("/trade/%d", request.ID))
	})
	if err != nil {
		return TradeRequest{}, err
	}

	return d.FindByID(ctx, request.ID)
}

func (d *TradeDAO) FindByID(ctx context.Context, id uint) (TradeRequest, error) {
	var request TradeRequest

	result := d.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Preload("SenderPokemon").
		Preload("ReceiverPokemon").
		First(&request, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return TradeRequest{}, ErrTradeNotFound
		}

		return TradeRequest{}, result.Error
	}

	return request, nil
}

func (d *TradeDAO) FindPendingByReceiverID(ctx context.Context, receiverID uint) ([]TradeRequest, error) {
	var requests []TradeRequest

	result := d.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Preload("SenderPokemon").
		Preload("ReceiverPokemon").
		Where("receiver_id = ? AND status = ?", receiverID, TradeStatusPending).
		Order("created_at DESC").
		Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

func (d *TradeDAO) FindPendingByReceiverPokemonID(ctx context.Context, pokemonID uint) ([]TradeRequest, error) {
	var requests []TradeRequest

	result := d.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Preload("SenderPokemon").
		Preload("ReceiverPokemon").
		Where("receiver_pokemon_id = ? AND status = ?", pokemonID, TradeStatusPending).
		Order("created_at DESC").
		Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

func (d *TradeDAO) CountPending(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&TradeRequest{}).
		Where("status = ?", TradeStatusPending).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Decline transitions a pending request to declined and notifies the sender.
// No ownership changes.
func (d *TradeDAO) Decline(ctx context.Context, requestID, receiverID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request TradeRequest
		if err := forUpdate(tx).First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTradeNotFound
			}
			return err
		}

		if request.ReceiverID != receiverID {
			return ErrNotAuthorized
		}
		if request.Status != TradeStatusPending {
			return ErrAlreadyResolved
		}

		result := tx.Model(&TradeRequest{}).
			Where("id = ?", requestID).
			Update("status", TradeStatusDeclined)
		if result.Error != nil {
			return result.Error
		}

		var receiver User
		if err := tx.First(&receiver, request.ReceiverID).Error; err != nil {
			return err
		}
		var receiverPokemon Pokemon
		if err := tx.First(&receiverPokemon, request.ReceiverPokemonID).Error; err != nil {
			return err
		}

		message := fmt.Sprintf("%s declined your trade offer for %s.",
			receiver.Username, receiverPokemon.Name)

		return insertNotification(tx, request.SenderID, message, fmt.Sprintf("/trade/%d", request.ID))
	})
}

// Accept settles a pending trade request. In a single transaction it
// re-validates that both Pokémon are still owned by the recorded parties,
// completes any active listing of either kind on either Pokémon, swaps
// ownership,
// auto-declines every other pending request referencing either Pokémon
// (notifying the party outside the settled trade), writes two history rows
// with the same timestamp, and notifies both parties. Any failure rolls the
// whole settlement back.
func (d *TradeDAO) Accept(ctx context.Context, requestID, receiverID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request TradeRequest
		if err := forUpdate(tx).First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTradeNotFound
			}
			return err
		}

		if request.ReceiverID != receiverID {
			return ErrNotAuthorized
		}
		if request.Status != TradeStatusPending {
			return ErrAlreadyResolved
		}

		// Ownership may have drifted since the request was created. A
		// concurrent accept on either Pokémon is also caught here, under
		// the row locks.
		var senderPokemon, receiverPokemon Pokemon
		if err := forUpdate(tx).First(&senderPokemon, request.SenderPokemonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPokemonNotFound
			}
			return err
		}
		if err := forUpdate(tx).First(&receiverPokemon, request.ReceiverPokemonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPokemonNotFound
			}
			return err
		}
		if senderPokemon.UserID != request.SenderID || receiverPokemon.UserID != request.ReceiverID {
			return ErrNotOwner
		}

		// Both Pokémon leave the market entirely. A sale listing must not
		// survive the owner change either, or the old owner's price would
		// still sell the Pokémon out of the new owner's collection.
		result := tx.Model(&BarterTrade{}).
			Where("pokemon_id IN ? AND status = ?",
				[]uint{senderPokemon.ID, receiverPokemon.ID}, ListingStatusActive).
			Updates(map[string]any{"status": ListingStatusCompleted, "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		result = tx.Model(&MoneyTrade{}).
			Where("pokemon_id IN ? AND status = ?",
				[]uint{senderPokemon.ID, receiverPokemon.ID}, ListingStatusActive).
			Updates(map[string]any{"status": ListingStatusCompleted, "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}

		// Swap ownership.
		if err := tx.Model(&Pokemon{}).Where("id = ?", senderPokemon.ID).
			Updates(map[string]any{"user_id": request.ReceiverID, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		if err := tx.Model(&Pokemon{}).Where("id = ?", receiverPokemon.ID).
			Updates(map[string]any{"user_id": request.SenderID, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		// Every other pending request touching either Pokémon is now void.
		var conflicting []TradeRequest
		if err := forUpdate(tx).
			Where("status = ?", TradeStatusPending).
			Where("sender_pokemon_id IN ? OR receiver_pokemon_id IN ?",
				[]uint{senderPokemon.ID, receiverPokemon.ID},
				[]uint{senderPokemon.ID, receiverPokemon.ID}).
			Where("id <> ?", request.ID).
			Find(&conflicting).Error; err != nil {
			return err
		}

		for _, other := range conflicting {
			result := tx.Model(&TradeRequest{}).
				Where("id = ?", other.ID).
				Update("status", TradeStatusDeclined)
			if result.Error != nil {
				return result.Error
			}

			// Notify whichever party of the voided request is not part of
			// the settled trade; when both are, the sender learns their
			// offer died.
			notifyID := other.SenderID
			if other.SenderID == request.SenderID || other.SenderID == request.ReceiverID {
				if other.ReceiverID != request.SenderID && other.ReceiverID != request.ReceiverID {
					notifyID = other.ReceiverID
				}
			}

			message := "A trade request involving one of the Pokémon was declined because the Pokémon was traded elsewhere."
			if err := insertNotification(tx, notifyID, message, fmt.Sprintf("/trade/%d", other.ID)); err != nil {
				return err
			}
		}

		if err := tx.Model(&TradeRequest{}).
			Where("id = ?", request.ID).
			Update("status", TradeStatusAccepted).Error; err != nil {
			return err
		}

		// One history row per direction, sharing a timestamp. The sender
		// "buys" the receiver's Pokémon and vice versa, both for nothing.
		now := time.Now()
		rows := []TradeHistory{
			{
				BuyerID:   request.SenderID,
				SellerID:  request.ReceiverID,
				PokemonID: receiverPokemon.ID,
				Amount:    0,
				Timestamp: now,
			},
			{
				BuyerID:   request.ReceiverID,
				SellerID:  request.SenderID,
				PokemonID: senderPokemon.ID,
				Amount:    0,
				Timestamp: now,
			},
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		senderMsg := fmt.Sprintf("Your trade was accepted! %s is now yours.", receiverPokemon.Name)
		if err := insertNotification(tx, request.SenderID, senderMsg, fmt.Sprintf("/pokemon/%d", receiverPokemon.ID)); err != nil {
			return err
		}

		receiverMsg := fmt.Sprintf("Trade complete! %s is now yours.", senderPokemon.Name)
		return insertNotification(tx, request.ReceiverID, receiverMsg, fmt.Sprintf("/pokemon/%d", senderPokemon.ID))
	})
}

// BuyPokemon settles a direct sale. In a single transaction it debits the
// buyer, credits the seller, transfers ownership, completes the listing,
// appends one history row and notifies both parties. Preconditions are
// checked in order and each failure leaves all state untouched.
func (d *TradeDAO) BuyPokemon(ctx context.Context, buyerID, pokemonID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pokemon Pokemon
		if err := forUpdate(tx).First(&pokemon, pokemonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPokemonNotFound
			}
			return err
		}

		if pokemon.UserID == buyerID {
			return ErrSelfTrade
		}

		var listing MoneyTrade
		if err := forUpdate(tx).
			Where("pokemon_id = ? AND status = ?", pokemonID, ListingStatusActive).
			First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotForSale
			}
			return err
		}

		var buyer User
		if err := forUpdate(tx).First(&buyer, buyerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if buyer.Money < listing.AmountAsked {
			return ErrInsufficientFunds
		}

		var seller User
		if err := forUpdate(tx).First(&seller, pokemon.UserID).Error; err != nil {
			return err
		}

		if err := tx.Model(&User{}).Where("id = ?", buyer.ID).
			Update("money", gorm.Expr("money - ?", listing.AmountAsked)).Error; err != nil {
			return err
		}
		if err := tx.Model(&User{}).Where("id = ?", seller.ID).
			Update("money", gorm.Expr("money + ?", listing.AmountAsked)).Error; err != nil {
			return err
		}

		if err := tx.Model(&Pokemon{}).Where("id = ?", pokemon.ID).
			Updates(map[string]any{"user_id": buyer.ID, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		if err := tx.Model(&MoneyTrade{}).Where("id = ?", listing.ID).
			Updates(map[string]any{"status": ListingStatusCompleted, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		history := TradeHistory{
			BuyerID:   buyer.ID,
			SellerID:  seller.ID,
			PokemonID: pokemon.ID,
			Amount:    listing.AmountAsked,
			Timestamp: time.Now(),
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		sellerMsg := fmt.Sprintf("Your %s was sold to %s for %d coins.",
			pokemon.Name, buyer.Username, listing.AmountAsked)
		if err := insertNotification(tx, seller.ID, sellerMsg, fmt.Sprintf("/pokemon/%d", pokemon.ID)); err != nil {
			return err
		}

		buyerMsg := fmt.Sprintf("You bought %s from %s for %d coins.",
			pokemon.Name, seller.Username, listing.AmountAsked)
		return insertNotification(tx, buyer.ID, buyerMsg, fmt.Sprintf("/pokemon/%d", pokemon.ID))
	})
}

func (d *TradeDAO) FindHistoryByUserID(ctx context.Context, userID uint) ([]TradeHistory, error) {
	var history []TradeHistory

	result := d.db.WithContext(ctx).
		Preload("Buyer").
		Preload("Seller").
		Preload("Pokemon").
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("timestamp DESC").
		Find(&history)
	if result.Error != nil {
		return nil, result.Error
	}

	return history, nil
}

func (d *TradeDAO) FindRecentHistory(ctx context.Context, limit int) ([]TradeHistory, error) {
	var history []TradeHistory

	result := d.db.WithContext(ctx).
		Preload("Buyer").
		Preload("Seller").
		Preload("Pokemon").
		Order("timestamp DESC").
		Limit(limit).
		Find(&history)
	if result.Error != nil {
		return nil, result.Error
	}

	return history, nil
}

func (d *TradeDAO) CountHistory(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&TradeHistory{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

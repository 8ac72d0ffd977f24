package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func userMoney(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()

	var user User
	require.NoError(t, db.First(&user, id).Error)

	return user.Money
}

func pokemonOwner(t *testing.T, db *gorm.DB, id uint) uint {
	t.Helper()

	var pokemon Pokemon
	require.NoError(t, db.First(&pokemon, id).Error)

	return pokemon.UserID
}

func TestTradeDAO_BuyPokemon(t *testing.T) {
	db := newTestDB(t)
	listings := NewListingDAO(db)
	trades := NewTradeDAO(db)

	seller := seedUser(t, db, "ash", 100)
	buyer := seedUser(t, db, "misty", 100)
	pokemon := seedPokemon(t, db, seller.ID, "pikachu")

	_, err := listings.CreateMoneyTrade(context.Background(), seller.ID, pokemon.ID, 50)
	require.NoError(t, err)

	require.NoError(t, trades.BuyPokemon(context.Background(), buyer.ID, pokemon.ID))

	// Money moved both ways and ownership transferred.
	assert.Equal(t, 50, userMoney(t, db, buyer.ID))
	assert.Equal(t, 150, userMoney(t, db, seller.ID))
	assert.Equal(t, buyer.ID, pokemonOwner(t, db, pokemon.ID))

	// The listing is completed, not deleted.
	var listing MoneyTrade
	require.NoError(t, db.Where("pokemon_id = ?", pokemon.ID).First(&listing).Error)
	assert.Equal(t, ListingStatusCompleted, listing.Status)

	// One history row records the sale.
	history, err := trades.FindHistoryByUserID(context.Background(), buyer.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, buyer.ID, history[0].BuyerID)
	assert.Equal(t, seller.ID, history[0].SellerID)
	assert.Equal(t, 50, history[0].Amount)

	// Both parties were notified.
	assert.Len(t, notificationsFor(t, db, seller.ID), 1)
	assert.Len(t, notificationsFor(t, db, buyer.ID), 1)
}

func TestTradeDAO_BuyPokemon_PreconditionOrder(t *testing.T) {
	db := newTestDB(t)
	listings := NewListingDAO(db)
	trades := NewTradeDAO(db)

	seller := seedUser(t, db, "ash", 100)
	buyer := seedUser(t, db, "misty", 10)
	pokemon := seedPokemon(t, db, seller.ID, "pikachu")

	t.Run("unknown pokemon", func(t *testing.T) {
		err := trades.BuyPokemon(context.Background(), buyer.ID, 9999)
		assert.ErrorIs(t, err, ErrPokemonNotFound)
	})

	t.Run("own pokemon", func(t *testing.T) {
		err := trades.BuyPokemon(context.Background(), seller.ID, pokemon.ID)
		assert.ErrorIs(t, err, ErrSelfTrade)
	})

	t.Run("not listed for sale", func(t *testing.T) {
		err := trades.BuyPokemon(context.Background(), buyer.ID, pokemon.ID)
		assert.ErrorIs(t, err, ErrNotForSale)

		// A barter listing is not a sale.
		_, err = listings.CreateBarterTrade(context.Background(), seller.ID, pokemon.ID, "")
		require.NoError(t, err)
		err = trades.BuyPokemon(context.Background(), buyer.ID, pokemon.ID)
		assert.ErrorIs(t, err, ErrNotForSale)

		_, err = listings.CancelActive(context.Background(), seller.ID, pokemon.ID)
		require.NoError(t, err)
	})

	t.Run("insufficient funds leaves everything untouched", func(t *testing.T) {
		_, err := listings.CreateMoneyTrade(context.Background(), seller.ID, pokemon.ID, 50)
		require.NoError(t, err)

		err = trades.BuyPokemon(context.Background(), buyer.ID, pokemon.ID)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		assert.Equal(t, 10, userMoney(t, db, buyer.ID))
		assert.Equal(t, 100, userMoney(t, db, seller.ID))
		assert.Equal(t, seller.ID, pokemonOwner(t, db, pokemon.ID))

		var listing MoneyTrade
		require.NoError(t, db.Where("pokemon_id = ? AND status = ?", pokemon.ID, ListingStatusActive).First(&listing).Error)

		count, err := trades.CountHistory(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, notificationsFor(t, db, seller.ID))
	})
}

func TestTradeDAO_Insert(t *testing.T) {
	db := newTestDB(t)
	trades := NewTradeDAO(db)

	sender := seedUser(t, db, "ash", 100)
	receiver := seedUser(t, db, "misty", 100)
	senderPokemon := seedPokemon(t, db, sender.ID, "pikachu")
	receiverPokemon := seedPokemon(t, db, receiver.ID, "staryu")

	created, err := trades.Insert(context.Background(), TradeRequest{
		SenderID:          sender.ID,
		ReceiverID:        receiver.ID,
		SenderPokemonID:   senderPokemon.ID,
		ReceiverPokemonID: receiverPokemon.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, TradeStatusPending, created.Status)
	assert.Equal(t, "ash", created.Sender.Username)
	assert.Equal(t, "staryu", created.ReceiverPokemon.Name)

	// The receiver learns about the offer.
	notifications := notificationsFor(t, db, receiver.ID)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "ash")

	t.Run("rejects overlap with a pending request", func(t *testing.T) {
		third := seedUser(t, db, "brock", 100)
		thirdPokemon := seedPokemon(t, db, third.ID, "onix")

		// receiverPokemon is already wanted by the pending request above.
		_, err := trades.Insert(context.Background(), TradeRequest{
			SenderID:          third.ID,
			ReceiverID:        receiver.ID,
			SenderPokemonID:   thirdPokemon.ID,
			ReceiverPokemonID: receiverPokemon.ID,
		})
		assert.ErrorIs(t, err, ErrAlreadyPending)
	})

	t.Run("rejects stale ownership", func(t *testing.T) {
		stranger := seedUser(t, db, "gary", 100)

		_, err := trades.Insert(context.Background(), TradeRequest{
			SenderID:          stranger.ID,
			ReceiverID:        receiver.ID,
			SenderPokemonID:   senderPokemon.ID, // owned by ash, not gary
			ReceiverPokemonID: receiverPokemon.ID,
		})
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestTradeDAO_Accept(t *testing.T) {
	db := newTestDB(t)
	listings := NewListingDAO(db)
	trades := NewTradeDAO(db)

	sender := seedUser(t, db, "ash", 100)
	receiver := seedUser(t, db, "misty", 100)
	senderPokemon := seedPokemon(t, db, sender.ID, "pikachu")
	receiverPokemon := seedPokemon(t, db, receiver.ID, "staryu")

	// The receiver's Pokémon was offered for barter; accepting must retire
	// that listing.
	_, err := listings.CreateBarterTrade(context.Background(), receiver.ID, receiverPokemon.ID, "electric types")
	require.NoError(t, err)

	request, err := trades.Insert(context.Background(), TradeRequest{
		SenderID:          sender.ID,
		ReceiverID:        receiver.ID,
		SenderPokemonID:   senderPokemon.ID,
		ReceiverPokemonID: receiverPokemon.ID,
	})
	require.NoError(t, err)

	require.NoError(t, trades.Accept(context.Background(), request.ID, receiver.ID))

	// Owners swapped.
	assert.Equal(t, receiver.ID, pokemonOwner(t, db, senderPokemon.ID))
	assert.Equal(t, sender.ID, pokemonOwner(t, db, receiverPokemon.ID))

	// The barter listing left the market.
	var barter BarterTrade
	require.NoError(t, db.Where("pokemon_id = ?", receiverPokemon.ID).First(&barter).Error)
	assert.Equal(t, ListingStatusCompleted, barter.Status)

	// Two history rows, amount zero, sharing one timestamp.
	var history []TradeHistory
	require.NoError(t, db.Order("id ASC").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Zero(t, history[0].Amount)
	assert.Zero(t, history[1].Amount)
	assert.Equal(t, history[0].Timestamp, history[1].Timestamp)

	found, err := trades.FindByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, TradeStatusAccepted, found.Status)

	// Settlement notifications on top of the initial offer notification.
	assert.Len(t, notificationsFor(t, db, sender.ID), 1)
	assert.Len(t, notificationsFor(t, db, receiver.ID), 2)

	t.Run("second respond is rejected", func(t *testing.T) {
		err := trades.Accept(context.Background(), request.ID, receiver.ID)
		assert.ErrorIs(t, err, ErrAlreadyResolved)

		err = trades.Decline(context.Background(), request.ID, receiver.ID)
		assert.ErrorIs(t, err, ErrAlreadyResolved)
	})
}

func TestTradeDAO_Accept_CompletesMoneyListings(t *testing.T) {
	db := newTestDB(t)
	listings := NewListingDAO(db)
	trades := NewTradeDAO(db)

	sender := seedUser(t, db, "ash", 100)
	receiver := seedUser(t, db, "misty", 100)
	third := seedUser(t, db, "gary", 100)
	senderPokemon := seedPokemon(t, db, sender.ID, "pikachu")
	receiverPokemon := seedPokemon(t, db, receiver.ID, "staryu")

	// The sender's Pokémon is also up for sale.
	_, err := listings.CreateMoneyTrade(context.Background(), sender.ID, senderPokemon.ID, 10)
	require.NoError(t, err)

	request, err := trades.Insert(context.Background(), TradeRequest{
		SenderID:          sender.ID,
		ReceiverID:        receiver.ID,
		SenderPokemonID:   senderPokemon.ID,
		ReceiverPokemonID: receiverPokemon.ID,
	})
	require.NoError(t, err)

	require.NoError(t, trades.Accept(context.Background(), request.ID, receiver.ID))

	// The sale listing must not outlive the owner change, or the old
	// owner's price would sell the Pokémon out of the new owner's hands.
	var listing MoneyTrade
	require.NoError(t, db.Where("pokemon_id = ?", senderPokemon.ID).First(&listing).Error)
	assert.Equal(t, ListingStatusCompleted, listing.Status)

	err = trades.BuyPokemon(context.Background(), third.ID, senderPokemon.ID)
	assert.ErrorIs(t, err, ErrNotForSale)
	assert.Equal(t, receiver.ID, pokemonOwner(t, db, senderPokemon.ID))
	assert.Equal(t, 100, userMoney(t, db, receiver.ID))
}

func TestTradeDAO_Accept_AutoDeclinesConflicts(t *testing.T) {
	db := newTestDB(t)
	trades := NewTradeDAO(db)

	sender := seedUser(t, db, "ash", 100)
	receiver := seedUser(t, db, "misty", 100)
	rival := seedUser(t, db, "gary", 100)
	senderPokemon := seedPokemon(t, db, sender.ID, "pikachu")
	receiverPokemon := seedPokemon(t, db, receiver.ID, "staryu")
	rivalPokemon := seedPokemon(t, db, rival.ID, "eevee")

	accepted, err := trades.Insert(context.Background(), TradeRequest{
		SenderID:          sender.ID,
		ReceiverID:        receiver.ID,
		SenderPokemonID:   senderPokemon.ID,
		ReceiverPokemonID: receiverPokemon.ID,
	})
	require.NoError(t, err)

	// A rival also wants the sender's Pokémon. Insert refuses the overlap
	// up front, so force the row in directly to simulate two requests that
	// became pending concurrently.
	_, err = trades.Insert(context.Background(), TradeRequest{
		SenderID:          rival.ID,
		ReceiverID:        sender.ID,
		SenderPokemonID:   rivalPokemon.ID,
		ReceiverPokemonID: senderPokemon.ID,
	})
	require.ErrorIs(t, err, ErrAlreadyPending)

	forced := TradeRequest{
		SenderID:          rival.ID,
		ReceiverID:        sender.ID,
		SenderPokemonID:   rivalPokemon.ID,
		ReceiverPokemonID: senderPokemon.ID,
		Status:            TradeStatusPending,
	}
	require.NoError(t, db.Create(&forced).Error)

	require.NoError(t, trades.Accept(context.Background(), accepted.ID, receiver.ID))

	// The conflicting request was auto-declined without applying its swap.
	var declined TradeRequest
	require.NoError(t, db.First(&declined, forced.ID).Error)
	assert.Equal(t, TradeStatusDeclined, declined.Status)

	// Its swap never applied: the settled trade moved the contested Pokémon
	// to the receiver, and the rival keeps their own.
	assert.Equal(t, receiver.ID, pokemonOwner(t, db, senderPokemon.ID))
	assert.Equal(t, rival.ID, pokemonOwner(t, db, rivalPokemon.ID))

	// The rival, the party outside the settled trade, was told.
	notifications := notificationsFor(t, db, rival.ID)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "traded elsewhere")
}

func TestTradeDAO_Accept_Authorization(t *testing.T) {
	db := newTestDB(t)
	trades := NewTradeDAO(db)

	sender := seedUser(t, db, "ash", 100)
	receiver := seedUser(t, db, "misty", 100)
	senderPokemon := seedPokemon(t, db, sender.ID, "pikachu")
	receiverPokemon := seedPokemon(t, db, receiver.ID, "staryu")

	request, err := trades.Insert(context.Background(), TradeRequest{
		SenderID:          sender.ID,
		ReceiverID:        receiver.ID,
		SenderPokemonID:   senderPokemon.ID,
		ReceiverPokemonID: receiverPokemon.ID,
	})
	require.NoError(t, err)

	err = trades.Accept(context.Background(), request.ID, sender.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	err = trades.Accept(context.Background(), 9999, receiver.ID)
	assert.ErrorIs(t, err, ErrTradeNotFound)

	t.Run("stale ownership aborts the settlement", func(t *testing.T) {
		// The sender's Pokémon changed hands since the request was made.
		require.NoError(t, db.Model(&Pokemon{}).
			Where("id = ?", senderPokemon.ID).
			Update("user_id", receiver.ID).Error)

		err := trades.Accept(context.Background(), request.ID, receiver.ID)
		assert.ErrorIs(t, err, ErrNotOwner)

		// Rolled back: still pending, no history.
		found, err := trades.FindByID(context.Background(), request.ID)
		require.NoError(t, err)
		assert.Equal(t, TradeStatusPending, found.Status)

		count, err := trades.CountHistory(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestTradeDAO_Decline(t *testing.T) {
	db := newTestDB(t)
	trades := NewTradeDAO(db)

	sender := seedUser(t, db, "ash", 100)
	receiver := seedUser(t, db, "misty", 100)
	senderPokemon := seedPokemon(t, db, sender.ID, "pikachu")
	receiverPokemon := seedPokemon(t, db, receiver.ID, "staryu")

	request, err := trades.Insert(context.Background(), TradeRequest{
		SenderID:          sender.ID,
		ReceiverID:        receiver.ID,
		SenderPokemonID:   senderPokemon.ID,
		ReceiverPokemonID: receiverPokemon.ID,
	})
	require.NoError(t, err)

	require.NoError(t, trades.Decline(context.Background(), request.ID, receiver.ID))

	// Nothing moved.
	assert.Equal(t, sender.ID, pokemonOwner(t, db, senderPokemon.ID))
	assert.Equal(t, receiver.ID, pokemonOwner(t, db, receiverPokemon.ID))

	found, err := trades.FindByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, TradeStatusDeclined, found.Status)

	// The sender was told.
	notifications := notificationsFor(t, db, sender.ID)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "declined")
}

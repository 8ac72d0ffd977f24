package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingDAO_CreateMoneyTrade(t *testing.T) {
	db := newTestDB(t)
	d := NewListingDAO(db)

	owner := seedUser(t, db, "ash", 100)
	other := seedUser(t, db, "misty", 100)
	pokemon := seedPokemon(t, db, owner.ID, "pikachu")

	t.Run("creates an active listing", func(t *testing.T) {
		created, err := d.CreateMoneyTrade(context.Background(), owner.ID, pokemon.ID, 50)
		require.NoError(t, err)
		assert.Equal(t, ListingStatusActive, created.Status)
		assert.Equal(t, 50, created.AmountAsked)

		_, err = d.CancelActive(context.Background(), owner.ID, pokemon.ID)
		require.NoError(t, err)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := d.CreateMoneyTrade(context.Background(), owner.ID, pokemon.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = d.CreateMoneyTrade(context.Background(), owner.ID, pokemon.ID, -5)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rejects unknown pokemon", func(t *testing.T) {
		_, err := d.CreateMoneyTrade(context.Background(), owner.ID, 9999, 50)
		assert.ErrorIs(t, err, ErrPokemonNotFound)
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		_, err := d.CreateMoneyTrade(context.Background(), other.ID, pokemon.ID, 50)
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestListingDAO_SingleActiveListing(t *testing.T) {
	db := newTestDB(t)
	d := NewListingDAO(db)

	owner := seedUser(t, db, "ash", 100)
	pokemon := seedPokemon(t, db, owner.ID, "pikachu")

	_, err := d.CreateMoneyTrade(context.Background(), owner.ID, pokemon.ID, 50)
	require.NoError(t, err)

	// A second listing of either kind is rejected while one is active.
	_, err = d.CreateMoneyTrade(context.Background(), owner.ID, pokemon.ID, 60)
	assert.ErrorIs(t, err, ErrAlreadyListed)

	_, err = d.CreateBarterTrade(context.Background(), owner.ID, pokemon.ID, "any water type")
	assert.ErrorIs(t, err, ErrAlreadyListed)

	// Once canceled, relisting works.
	canceled, err := d.CancelActive(context.Background(), owner.ID, pokemon.ID)
	require.NoError(t, err)
	assert.True(t, canceled)

	_, err = d.CreateBarterTrade(context.Background(), owner.ID, pokemon.ID, "any water type")
	require.NoError(t, err)
}

func TestListingDAO_CancelActive_Idempotent(t *testing.T) {
	db := newTestDB(t)
	d := NewListingDAO(db)

	owner := seedUser(t, db, "ash", 100)
	pokemon := seedPokemon(t, db, owner.ID, "pikachu")

	// Nothing listed: a no-op, not an error.
	canceled, err := d.CancelActive(context.Background(), owner.ID, pokemon.ID)
	require.NoError(t, err)
	assert.False(t, canceled)

	_, err = d.CreateMoneyTrade(context.Background(), owner.ID, pokemon.ID, 50)
	require.NoError(t, err)

	canceled, err = d.CancelActive(context.Background(), owner.ID, pokemon.ID)
	require.NoError(t, err)
	assert.True(t, canceled)

	canceled, err = d.CancelActive(context.Background(), owner.ID, pokemon.ID)
	require.NoError(t, err)
	assert.False(t, canceled)

	// The canceled listing is kept as removed, not deleted.
	var trade MoneyTrade
	require.NoError(t, db.Where("pokemon_id = ?", pokemon.ID).First(&trade).Error)
	assert.Equal(t, ListingStatusRemoved, trade.Status)
}

func TestListingDAO_SetModerationStatus(t *testing.T) {
	db := newTestDB(t)
	d := NewListingDAO(db)

	owner := seedUser(t, db, "ash", 100)
	pokemon := seedPokemon(t, db, owner.ID, "pikachu")

	created, err := d.CreateMoneyTrade(context.Background(), owner.ID, pokemon.ID, 50)
	require.NoError(t, err)

	err = d.SetModerationStatus(context.Background(), "money", created.ID, ListingStatusFlagged, true, "suspicious pricing")
	require.NoError(t, err)

	found, err := d.FindMoneyTradeByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, ListingStatusFlagged, found.Status)
	assert.True(t, found.IsFlagged)
	assert.Equal(t, "suspicious pricing", found.FlagReason)

	err = d.SetModerationStatus(context.Background(), "money", 9999, ListingStatusRemoved, false, "")
	assert.ErrorIs(t, err, ErrListingNotFound)

	err = d.SetModerationStatus(context.Background(), "bogus", created.ID, ListingStatusRemoved, false, "")
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestListingDAO_FindActiveListings(t *testing.T) {
	db := newTestDB(t)
	d := NewListingDAO(db)

	owner := seedUser(t, db, "ash", 100)
	first := seedPokemon(t, db, owner.ID, "pikachu")
	second := seedPokemon(t, db, owner.ID, "bulbasaur")

	_, err := d.CreateMoneyTrade(context.Background(), owner.ID, first.ID, 50)
	require.NoError(t, err)
	_, err = d.CreateBarterTrade(context.Background(), owner.ID, second.ID, "fire types")
	require.NoError(t, err)

	moneyTrades, err := d.FindActiveMoneyTrades(context.Background())
	require.NoError(t, err)
	require.Len(t, moneyTrades, 1)
	assert.Equal(t, "pikachu", moneyTrades[0].Pokemon.Name)
	assert.Equal(t, "ash", moneyTrades[0].Pokemon.User.Username)

	barterTrades, err := d.FindActiveBarterTrades(context.Background())
	require.NoError(t, err)
	require.Len(t, barterTrades, 1)
	assert.Equal(t, "bulbasaur", barterTrades[0].Pokemon.Name)

	featured, err := d.FindFeaturedMoneyTrades(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, featured, 1)
}

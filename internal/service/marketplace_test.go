package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poketrade/marketplace-api/internal/domain"
)

func moneyEntry(name string, rarity, price int) domain.MarketplaceEntry {
	return domain.MarketplaceEntry{
		Pokemon:    domain.Pokemon{Name: name, Rarity: rarity},
		MoneyTrade: &domain.MoneyTrade{AmountAsked: price},
	}
}

func barterEntry(name string, rarity int) domain.MarketplaceEntry {
	return domain.MarketplaceEntry{
		Pokemon:     domain.Pokemon{Name: name, Rarity: rarity},
		BarterTrade: &domain.BarterTrade{},
	}
}

func TestMatchesFilter(t *testing.T) {
	sale := moneyEntry("pikachu", 2, 50)
	swap := barterEntry("mewtwo", 5)

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.True(t, matchesFilter(sale, domain.MarketplaceFilter{}))
		assert.True(t, matchesFilter(swap, domain.MarketplaceFilter{}))
	})

	t.Run("kind", func(t *testing.T) {
		assert.True(t, matchesFilter(sale, domain.MarketplaceFilter{Kind: domain.ListingKindMoney}))
		assert.False(t, matchesFilter(sale, domain.MarketplaceFilter{Kind: domain.ListingKindBarter}))
		assert.True(t, matchesFilter(swap, domain.MarketplaceFilter{Kind: domain.ListingKindBarter}))
		assert.False(t, matchesFilter(swap, domain.MarketplaceFilter{Kind: domain.ListingKindMoney}))
	})

	t.Run("rarity", func(t *testing.T) {
		assert.True(t, matchesFilter(swap, domain.MarketplaceFilter{Rarity: 5}))
		assert.False(t, matchesFilter(swap, domain.MarketplaceFilter{Rarity: 1}))
	})

	t.Run("price bounds", func(t *testing.T) {
		assert.True(t, matchesFilter(sale, domain.MarketplaceFilter{MinPrice: 10, MaxPrice: 60}))
		assert.False(t, matchesFilter(sale, domain.MarketplaceFilter{MinPrice: 60}))
		assert.False(t, matchesFilter(sale, domain.MarketplaceFilter{MaxPrice: 40}))

		// Barter listings carry no price, so price bounds exclude them.
		assert.False(t, matchesFilter(swap, domain.MarketplaceFilter{MinPrice: 1}))
	})

	t.Run("name is a case-insensitive substring", func(t *testing.T) {
		assert.True(t, matchesFilter(sale, domain.MarketplaceFilter{Name: "PIKA"}))
		assert.True(t, matchesFilter(sale, domain.MarketplaceFilter{Name: "chu"}))
		assert.False(t, matchesFilter(sale, domain.MarketplaceFilter{Name: "eevee"}))
	})
}

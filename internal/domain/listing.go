package domain

import "time"

type ListingStatus string

const (
	ListingActive    ListingStatus = "active"
	ListingCompleted ListingStatus = "completed"
	ListingFlagged   ListingStatus = "flagged"
	ListingRemoved   ListingStatus = "removed"
)

// MoneyTrade is a direct-sale listing: a Pokémon offered for currency.
type MoneyTrade struct {
	ID          uint          `json:"id"`
	PokemonID   uint          `json:"pokemon_id"`
	AmountAsked int           `json:"amount_asked"`
	Status      ListingStatus `json:"status"`
	IsFlagged   bool          `json:"is_flagged"`
	FlagReason  string        `json:"flag_reason,omitempty"`
	AdminNotes  string        `json:"admin_notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BarterTrade is a swap listing: a Pokémon offered for another Pokémon.
type BarterTrade struct {
	ID               uint          `json:"id"`
	PokemonID        uint          `json:"pokemon_id"`
	TradePreferences string        `json:"trade_preferences"`
	Status           ListingStatus `json:"status"`
	IsFlagged        bool          `json:"is_flagged"`
	FlagReason       string        `json:"flag_reason,omitempty"`
	AdminNotes       string        `json:"admin_notes,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type ListingKind string

const (
	ListingKindMoney  ListingKind = "money"
	ListingKindBarter ListingKind = "barter"
)

// ListingRef is a tagged reference to either listing table. It replaces the
// dual-nullable foreign keys of a polymorphic schema with an explicit
// variant.
type ListingRef struct {
	Kind ListingKind `json:"kind"`
	ID   uint        `json:"id"`
}

// MarketplaceEntry is a Pokémon together with whichever listing put it on
// the market.
type MarketplaceEntry struct {
	Pokemon     Pokemon      `json:"pokemon"`
	MoneyTrade  *MoneyTrade  `json:"money_trade,omitempty"`
	BarterTrade *BarterTrade `json:"barter_trade,omitempty"`
}

// MarketplaceFilter narrows the marketplace view. Zero values mean
// "no constraint".
type MarketplaceFilter struct {
	Kind     ListingKind
	Rarity   int
	MinPrice int
	MaxPrice int
	Name     string
}

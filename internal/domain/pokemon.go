package domain

import "time"

type Pokemon struct {
	ID        uint       `json:"id"`
	PokeapiID int        `json:"pokeapi_id"`
	Name      string     `json:"name"`
	Rarity    int        `json:"rarity"`
	ImageURL  string     `json:"image_url,omitempty"`
	Types     []string   `json:"types"`
	Owner     SimpleUser `json:"owner"`

	// Active listings, nil when the Pokémon is not on the market.
	MoneyTrade  *MoneyTrade  `json:"money_trade"`
	BarterTrade *BarterTrade `json:"barter_trade"`

	IsOwner   bool      `json:"is_owner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

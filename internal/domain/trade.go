package domain

import "time"

type TradeRequestStatus string

const (
	TradePending  TradeRequestStatus = "pending"
	TradeAccepted TradeRequestStatus = "accepted"
	TradeDeclined TradeRequestStatus = "declined"
)

type TradeAction string

const (
	TradeActionAccept  TradeAction = "accept"
	TradeActionDecline TradeAction = "decline"
)

// PokemonRef is the reduced Pokémon identity carried inside trade payloads.
type PokemonRef struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// TradeRequest is a proposed swap of two specific Pokémon between two
// users. It is immutable once its status leaves pending.
type TradeRequest struct {
	ID              uint               `json:"id"`
	Sender          SimpleUser         `json:"sender"`
	Receiver        SimpleUser         `json:"receiver"`
	SenderPokemon   PokemonRef         `json:"sender_pokemon"`
	ReceiverPokemon PokemonRef         `json:"receiver_pokemon"`
	Status          TradeRequestStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
}

// TradeHistory is one settlement record. A sale produces one row with the
// amount paid; an accepted barter produces two rows with amount zero, one
// per direction.
type TradeHistory struct {
	ID        uint       `json:"id"`
	Buyer     SimpleUser `json:"buyer"`
	Seller    SimpleUser `json:"seller"`
	Pokemon   PokemonRef `json:"pokemon"`
	Amount    int        `json:"amount"`
	Timestamp time.Time  `json:"timestamp"`
}

// TradeType derives the presentation type from the amount.
func (h TradeHistory) TradeType() string {
	if h.Amount > 0 {
		return "money"
	}
	return "barter"
}

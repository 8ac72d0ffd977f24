package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTradeRequest struct {
	SenderPokemonID   uint `json:"sender_pokemon_id"`
	ReceiverPokemonID uint `json:"receiver_pokemon_id"`
}

func (req *CreateTradeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SenderPokemonID, validation.Required),
		validation.Field(&req.ReceiverPokemonID, validation.Required),
	)
}

type RespondTradeRequest struct {
	Action string `json:"action"`
}

func (req *RespondTradeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Action, validation.Required, validation.In("accept", "decline")),
	)
}

type FileReportRequest struct {
	Reason string `json:"reason"`
}

func (req *FileReportRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Required, validation.Length(3, 500)),
	)
}

package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateMoneyListingRequest struct {
	AmountAsked int `json:"amount_asked"`
}

func (req *CreateMoneyListingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AmountAsked, validation.Required, validation.Min(1)),
	)
}

type CreateBarterListingRequest struct {
	TradePreferences string `json:"trade_preferences"`
}

func (req *CreateBarterListingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TradePreferences, validation.Length(0, 500)),
	)
}

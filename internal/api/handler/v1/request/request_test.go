package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Username:        "ash",
		Email:           "ash@example.com",
		Password:        "pikachu123",
		ConfirmPassword: "pikachu123",
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("username too short", func(t *testing.T) {
		req := valid
		req.Username = "as"
		assert.Error(t, req.Validate())
	})

	t.Run("username not alphanumeric", func(t *testing.T) {
		req := valid
		req.Username = "ash ketchum"
		assert.Error(t, req.Validate())
	})

	t.Run("invalid email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("password too short", func(t *testing.T) {
		req := valid
		req.Password = "pika1"
		req.ConfirmPassword = "pika1"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without a number", func(t *testing.T) {
		req := valid
		req.Password = "pikachuuu"
		req.ConfirmPassword = "pikachuuu"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without a letter", func(t *testing.T) {
		req := valid
		req.Password = "12345678"
		req.ConfirmPassword = "12345678"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("confirm mismatch", func(t *testing.T) {
		req := valid
		req.ConfirmPassword = "raichu123"
		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})
}

func TestRespondTradeRequest_Validate(t *testing.T) {
	assert.NoError(t, (&RespondTradeRequest{Action: "accept"}).Validate())
	assert.NoError(t, (&RespondTradeRequest{Action: "decline"}).Validate())
	assert.Error(t, (&RespondTradeRequest{Action: "maybe"}).Validate())
	assert.Error(t, (&RespondTradeRequest{}).Validate())
}

func TestCreateMoneyListingRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreateMoneyListingRequest{AmountAsked: 50}).Validate())
	assert.Error(t, (&CreateMoneyListingRequest{}).Validate())
	assert.Error(t, (&CreateMoneyListingRequest{AmountAsked: -5}).Validate())
}

func TestModerateListingRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ModerateListingRequest{Action: "flag", Reason: "spam"}).Validate())
	assert.NoError(t, (&ModerateListingRequest{Action: "remove"}).Validate())
	assert.Error(t, (&ModerateListingRequest{Action: "ban"}).Validate())
}

func TestResolveReportRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ResolveReportRequest{Status: "resolved", AdminNotes: "done"}).Validate())
	assert.Error(t, (&ResolveReportRequest{Status: "closed"}).Validate())
}

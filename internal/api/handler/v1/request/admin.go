package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ResolveReportRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

func (req *ResolveReportRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("pending", "investigating", "resolved", "dismissed")),
		validation.Field(&req.AdminNotes, validation.Length(0, 1000)),
	)
}

type ModerateListingRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

func (req *ModerateListingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Action, validation.Required, validation.In("flag", "unflag", "remove")),
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}

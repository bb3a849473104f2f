package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/eventfesta/eventfesta-api/internal/domain"
)

type UpdateOrganizationRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Since    int    `json:"since"`
	About    string `json:"about"`
	Contact  string `json:"contact"`
}

func (req *UpdateOrganizationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Type, validation.Required, validation.In(
			domain.OrgTypeEducational,
			domain.OrgTypeGovernment,
			domain.OrgTypeCorporate,
			domain.OrgTypeOther,
		)),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.Since, validation.Required, validation.Min(1800)),
	)
}

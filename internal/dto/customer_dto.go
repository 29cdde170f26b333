package dto

import "github.com/chihoangvnn/sss-sub001/internal/model"

type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

func CustomerToResponse(c model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:    c.ID.String(),
		Name:  c.Name,
		Phone: c.Phone,
	}
}

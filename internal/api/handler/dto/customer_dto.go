package dto

import (
	"customer-service/internal/domain/customer"
	"time"
)

type RegisterCustomerRequest struct {
	PersonID int64  `json:"personId" validate:"required,gt=0"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type VerifyPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// UpdateStatusRequest uses a pointer so an omitted "active" is rejected instead of read as false.
type UpdateStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type CustomerResponse struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"personId"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		ID:        cust.ID,
		PersonID:  cust.PersonID,
		Status:    cust.Status,
		CreatedAt: cust.CreatedAt,
		UpdatedAt: cust.UpdatedAt,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, NewCustomerResponse(c))
	}
	return resp
}

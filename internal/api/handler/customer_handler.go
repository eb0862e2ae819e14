package handler

import (
	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

type CustomerHandler struct {
	service  customer.CustomerService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service:  s,
		validate: newValidator(),
		logger:   l.With("component", "CustomerHandler"),
	}
}

// logServiceError logs expected client-side failures at warn and everything else at error.
func (h *CustomerHandler) logServiceError(r *http.Request, msg string, err error) {
	level := slog.LevelError
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrAlreadyExists),
		errors.Is(err, apperrors.ErrUnauthorized):
		level = slog.LevelWarn
	}
	h.logger.Log(r.Context(), level, msg, slog.Any("error", err))
}

// CreateCustomer handles POST /customers
//
// @Summary Register a customer
// @Description Registers a customer for an existing person. The password is hashed before it is stored and is never returned.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.RegisterCustomerRequest true "Customer registration payload"
// @Success 201 {object} dto.CustomerResponse "Customer successfully registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload, weak password or unknown person"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 409 {object} dto.ErrorResponse "Person already has a customer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received register customer request")

	var req dto.RegisterCustomerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	created, err := h.service.RegisterCustomer(r.Context(), req.PersonID, req.Password)
	if err != nil {
		h.logServiceError(r, "Service failed to register customer", err)
		respondError(w, err)
		return
	}

	resp := dto.NewCustomerResponse(created)
	h.logger.InfoContext(r.Context(), "Customer registered successfully", slog.Int64("customerID", resp.ID))
	w.Header().Set("Location", fmt.Sprintf("/customers/%d", resp.ID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetCustomer handles GET /customers/{customerID}
//
// @Summary Retrieve a customer
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer found"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	cust, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logServiceError(r, "Service failed to get customer", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// ListCustomers handles GET /customers, optionally filtered by ?active=true or narrowed to ?person_id=N.
// Both filters combine: an inactive customer is left out of an active=true lookup by person.
//
// @Summary List customers
// @Description Lists customers. With person_id the result holds at most the customer of that person. With active=true only active customers are returned.
// @Tags Customers
// @Produce json
// @Param active query bool false "Only return active customers"
// @Param person_id query int false "Find the customer of this person"
// @Success 200 {array} dto.CustomerResponse "Customers"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameter"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 404 {object} dto.ErrorResponse "No customer for person_id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	activeOnly := false
	if raw := query.Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, apperrors.NewValidationError("active", "must be a boolean"))
			return
		}
		activeOnly = parsed
	}

	if raw := query.Get("person_id"); raw != "" {
		h.findByPerson(w, r, raw, activeOnly)
		return
	}

	customers, err := h.service.ListCustomers(r.Context(), activeOnly)
	if err != nil {
		h.logServiceError(r, "Service failed to list customers", err)
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Customers listed", slog.Int("count", len(customers)), slog.Bool("activeOnly", activeOnly))
	respondJSON(w, http.StatusOK, dto.NewCustomerListResponse(customers))
}

func (h *CustomerHandler) findByPerson(w http.ResponseWriter, r *http.Request, raw string, activeOnly bool) {
	personID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || personID <= 0 {
		respondError(w, apperrors.NewValidationError("person_id", "must be a positive number"))
		return
	}

	cust, err := h.service.FindCustomerByPerson(r.Context(), personID)
	if err != nil {
		h.logServiceError(r, "Service failed to find customer by person", err)
		respondError(w, err)
		return
	}

	if activeOnly && !cust.Status {
		respondJSON(w, http.StatusOK, []dto.CustomerResponse{})
		return
	}
	respondJSON(w, http.StatusOK, []dto.CustomerResponse{dto.NewCustomerResponse(cust)})
}

// ChangePassword handles PUT /customers/{customerID}/password
//
// @Summary Change a customer's password
// @Tags Customers
// @Accept json
// @Param customerID path int true "Customer ID"
// @Param request body dto.ChangePasswordRequest true "New password"
// @Success 204 "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or weak password"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/password [put]
// @Security BearerAuth
func (h *CustomerHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.ChangePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), customerID, req.Password); err != nil {
		h.logServiceError(r, "Service failed to change password", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer password changed", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusNoContent, nil)
}

// VerifyPassword handles POST /customers/{customerID}/password/verify
//
// @Summary Verify a customer's password
// @Description Returns 204 when the password matches the stored hash and 401 when it does not.
// @Tags Customers
// @Accept json
// @Param customerID path int true "Customer ID"
// @Param request body dto.VerifyPasswordRequest true "Password to check"
// @Success 204 "Password matches"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 401 {object} dto.ErrorResponse "Password does not match or token is invalid"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/password/verify [post]
// @Security BearerAuth
func (h *CustomerHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.VerifyPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.VerifyPassword(r.Context(), customerID, req.Password); err != nil {
		h.logServiceError(r, "Password verification failed", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// UpdateStatus handles PUT /customers/{customerID}/status
//
// @Summary Activate or deactivate a customer
// @Tags Customers
// @Accept json
// @Param customerID path int true "Customer ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 204 "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/status [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, err)
		return
	}

	if *req.Active {
		err = h.service.ActivateCustomer(r.Context(), customerID)
	} else {
		err = h.service.DeactivateCustomer(r.Context(), customerID)
	}
	if err != nil {
		h.logServiceError(r, "Service failed to update customer status", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer status updated", slog.Int64("customerID", customerID), slog.Bool("active", *req.Active))
	respondJSON(w, http.StatusNoContent, nil)
}

// DeleteCustomer handles DELETE /customers/{customerID}
//
// @Summary Delete a customer
// @Tags Customers
// @Param customerID path int true "Customer ID"
// @Success 204 "Customer deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		h.logServiceError(r, "Service failed to delete customer", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusNoContent, nil)
}

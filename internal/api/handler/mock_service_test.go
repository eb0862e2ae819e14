package handler_test

import (
	"context"
	"customer-service/internal/domain/customer"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockCustomerService struct {
	mock.Mock
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

func customerOrNil(v any) *customer.Customer {
	if v == nil {
		return nil
	}
	return v.(*customer.Customer)
}

func (_m *MockCustomerService) RegisterCustomer(ctx context.Context, personID int64, password string) (*customer.Customer, error) {
	ret := _m.Called(ctx, personID, password)
	return customerOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)
	return customerOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockCustomerService) FindCustomerByPerson(ctx context.Context, personID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, personID)
	return customerOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockCustomerService) ListCustomers(ctx context.Context, activeOnly bool) ([]*customer.Customer, error) {
	ret := _m.Called(ctx, activeOnly)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) ChangePassword(ctx context.Context, customerID int64, newPassword string) error {
	return _m.Called(ctx, customerID, newPassword).Error(0)
}

func (_m *MockCustomerService) VerifyPassword(ctx context.Context, customerID int64, password string) error {
	return _m.Called(ctx, customerID, password).Error(0)
}

func (_m *MockCustomerService) ActivateCustomer(ctx context.Context, customerID int64) error {
	return _m.Called(ctx, customerID).Error(0)
}

func (_m *MockCustomerService) DeactivateCustomer(ctx context.Context, customerID int64) error {
	return _m.Called(ctx, customerID).Error(0)
}

func (_m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	return _m.Called(ctx, customerID).Error(0)
}

func (_m *MockCustomerService) PurgeInactiveCustomers(ctx context.Context, cutoff time.Time) (int64, error) {
	ret := _m.Called(ctx, cutoff)
	return ret.Get(0).(int64), ret.Error(1)
}

package customer

import (
	"context"
	"customer-service/internal/event"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) Save(ctx context.Context, customer *Customer) error {
	ret := _m.Called(ctx, customer)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Customer) error); ok {
		r0 = rf(ctx, customer)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	ret := _m.Called(ctx, customerID)
	return customerResult(ret.Get(0)), ret.Error(1)
}

func (_m *MockCustomerRepository) FindByPersonID(ctx context.Context, personID int64) (*Customer, error) {
	ret := _m.Called(ctx, personID)
	return customerResult(ret.Get(0)), ret.Error(1)
}

func (_m *MockCustomerRepository) FindAll(ctx context.Context, activeOnly bool) ([]*Customer, error) {
	ret := _m.Called(ctx, activeOnly)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) SetStatus(ctx context.Context, customerID int64, active bool) (*Customer, error) {
	ret := _m.Called(ctx, customerID, active)
	return customerResult(ret.Get(0)), ret.Error(1)
}

func (_m *MockCustomerRepository) UpdatePassword(ctx context.Context, customerID int64, passwordHash string) (*Customer, error) {
	ret := _m.Called(ctx, customerID, passwordHash)
	return customerResult(ret.Get(0)), ret.Error(1)
}

func (_m *MockCustomerRepository) Delete(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ret := _m.Called(ctx, cutoff)

	var r0 int64
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) int64); ok {
		r0 = rf(ctx, cutoff)
	} else {
		r0 = ret.Get(0).(int64)
	}

	return r0, ret.Error(1)
}

func customerResult(v any) *Customer {
	if v == nil {
		return nil
	}
	return v.(*Customer)
}

type MockPersonLookup struct {
	mock.Mock
}

func (_m *MockPersonLookup) PersonExists(ctx context.Context, personID int64) (bool, error) {
	ret := _m.Called(ctx, personID)
	return ret.Bool(0), ret.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, ev event.CustomerCreatedEvent) error {
	return _m.Called(ctx, ev).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, ev event.CustomerUpdatedEvent) error {
	return _m.Called(ctx, ev).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerDeleted(ctx context.Context, ev event.CustomerDeletedEvent) error {
	return _m.Called(ctx, ev).Error(0)
}

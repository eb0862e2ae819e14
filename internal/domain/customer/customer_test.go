package customer_test

import (
	"bytes"
	"customer-service/internal/domain/customer"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func TestNewCustomer(t *testing.T) {
	cust := customer.New(1, 42, "x", true, t0, t0)

	require.NotNil(t, cust)
	assert.Equal(t, int64(1), cust.ID)
	assert.Equal(t, int64(42), cust.PersonID, "PersonID is a plain scalar key")
	assert.Equal(t, "x", cust.Password)
	assert.True(t, cust.Status)
	assert.Equal(t, t0, cust.CreatedAt)
	assert.Equal(t, t0, cust.UpdatedAt)
	assert.False(t, cust.IsNew())
}

func TestNewCustomerAcceptsZeroValues(t *testing.T) {
	cust := customer.New(0, 0, "", false, time.Time{}, time.Time{})

	assert.True(t, cust.Equal(&customer.Customer{}))
	assert.True(t, cust.IsNew())
}

func TestZeroValueCustomer(t *testing.T) {
	var cust customer.Customer

	assert.Equal(t, int64(0), cust.ID)
	assert.Equal(t, int64(0), cust.PersonID)
	assert.Equal(t, "", cust.Password)
	assert.False(t, cust.Status)
	assert.True(t, cust.CreatedAt.IsZero())
	assert.True(t, cust.UpdatedAt.IsZero())
	assert.True(t, cust.IsNew())
}

func TestCustomerRoundTrip(t *testing.T) {
	cases := []struct {
		id, personID int64
		password     string
		status       bool
		created      time.Time
		updated      time.Time
	}{
		{1, 42, "x", true, t0, t0},
		{9_223_372_036_854_775_807, 1, "$2a$12$abcdefghijklmnopqrstuv", false, t0, t0.Add(time.Hour)},
		{-5, -7, "pässwörd", true, time.Time{}, t0},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			cust := customer.New(tc.id, tc.personID, tc.password, tc.status, tc.created, tc.updated)

			assert.Equal(t, tc.id, cust.ID)
			assert.Equal(t, tc.personID, cust.PersonID)
			assert.Equal(t, tc.password, cust.Password)
			assert.Equal(t, tc.status, cust.Status)
			assert.Equal(t, tc.created, cust.CreatedAt)
			assert.Equal(t, tc.updated, cust.UpdatedAt)
		})
	}
}

func TestCustomer_Equal(t *testing.T) {
	base := func() *customer.Customer { return customer.New(1, 42, "x", true, t0, t0) }

	assert.True(t, base().Equal(base()))

	mutations := map[string]func(c *customer.Customer){
		"id":        func(c *customer.Customer) { c.ID = 2 },
		"personId":  func(c *customer.Customer) { c.PersonID = 43 },
		"password":  func(c *customer.Customer) { c.Password = "y" },
		"status":    func(c *customer.Customer) { c.Status = false },
		"createdAt": func(c *customer.Customer) { c.CreatedAt = t0.Add(time.Second) },
		"updatedAt": func(c *customer.Customer) { c.UpdatedAt = t0.Add(time.Second) },
	}
	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			other := base()
			mutate(other)
			assert.False(t, base().Equal(other))
			assert.False(t, other.Equal(base()))
		})
	}

	t.Run("same instant in another location", func(t *testing.T) {
		other := base()
		other.CreatedAt = t0.In(time.FixedZone("UTC+2", 2*60*60))
		assert.True(t, base().Equal(other))
	})

	t.Run("nil handling", func(t *testing.T) {
		var a, b *customer.Customer
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(base()))
		assert.False(t, base().Equal(nil))
	})
}

func TestCustomer_MutatingOneFieldLeavesOthers(t *testing.T) {
	cust := customer.New(1, 42, "x", true, t0, t0)

	cust.Status = false

	assert.Equal(t, int64(1), cust.ID)
	assert.Equal(t, int64(42), cust.PersonID)
	assert.Equal(t, "x", cust.Password)
	assert.False(t, cust.Status)
	assert.Equal(t, t0, cust.CreatedAt)
	assert.Equal(t, t0, cust.UpdatedAt)
}

func TestCustomer_String(t *testing.T) {
	cust := customer.New(1, 42, "secret", true, t0, t0)

	s := cust.String()
	assert.Contains(t, s, "ID:1")
	assert.Contains(t, s, "PersonID:42")
	assert.Contains(t, s, "Password:[REDACTED]")
	assert.Contains(t, s, "Status:true")
	assert.Contains(t, s, "CreatedAt:2024-03-15T09:30:00Z")
	assert.Contains(t, s, "UpdatedAt:2024-03-15T09:30:00Z")
	assert.NotContains(t, s, "secret")

	assert.Equal(t, "Customer<nil>", (*customer.Customer)(nil).String())
	assert.Contains(t, (&customer.Customer{}).String(), "Password:,")
}

func TestCustomer_JSONOmitsPassword(t *testing.T) {
	body, err := json.Marshal(customer.New(1, 42, "secret", true, t0, t0))
	require.NoError(t, err)

	assert.NotContains(t, string(body), "secret")
	assert.NotContains(t, string(body), "password")
	assert.Contains(t, string(body), `"personId":42`)
}

func TestCustomer_LogValueRedactsPassword(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logger.Info("saved", slog.Any("customer", customer.New(1, 42, "secret", true, t0, t0)))

	assert.NotContains(t, buf.String(), "secret")
	assert.Contains(t, buf.String(), `"personId":42`)
}

func TestBuilder(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		built := customer.NewBuilder().
			ID(1).
			PersonID(42).
			Password("x").
			Status(true).
			CreatedAt(t0).
			UpdatedAt(t0).
			Build()

		assert.True(t, built.Equal(customer.New(1, 42, "x", true, t0, t0)))
	})

	t.Run("subset keeps zero values", func(t *testing.T) {
		built := customer.NewBuilder().PersonID(42).Build()

		assert.True(t, built.Equal(&customer.Customer{PersonID: 42}))
		assert.True(t, built.IsNew())
	})

	t.Run("built instances are independent", func(t *testing.T) {
		b := customer.NewBuilder().PersonID(1)
		first := b.Build()
		second := b.PersonID(2).Build()

		assert.Equal(t, int64(1), first.PersonID)
		assert.Equal(t, int64(2), second.PersonID)
	})
}

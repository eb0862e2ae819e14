package customer

import (
	"fmt"
	"log/slog"
	"time"
)

const redactedPassword = "[REDACTED]"

// Customer is one row of the customers table. PersonID is a plain lookup key
// into the persons table; the Person itself is owned and resolved elsewhere.
//
// The zero value is an unsaved customer with every field unset.
type Customer struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"personId"`
	Password  string    `json:"-"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New returns a customer with every field supplied. No value is checked.
func New(id, personID int64, password string, status bool, createdAt, updatedAt time.Time) *Customer {
	return &Customer{
		ID:        id,
		PersonID:  personID,
		Password:  password,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// IsNew reports whether the customer has not been assigned an ID by storage yet.
func (c *Customer) IsNew() bool {
	return c.ID == 0
}

// Equal compares all six fields. Timestamps are compared as instants.
func (c *Customer) Equal(other *Customer) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.ID == other.ID &&
		c.PersonID == other.PersonID &&
		c.Password == other.Password &&
		c.Status == other.Status &&
		c.CreatedAt.Equal(other.CreatedAt) &&
		c.UpdatedAt.Equal(other.UpdatedAt)
}

func (c *Customer) String() string {
	if c == nil {
		return "Customer<nil>"
	}
	return fmt.Sprintf("Customer{ID:%d, PersonID:%d, Password:%s, Status:%t, CreatedAt:%s, UpdatedAt:%s}",
		c.ID,
		c.PersonID,
		maskPassword(c.Password),
		c.Status,
		c.CreatedAt.Format(time.RFC3339Nano),
		c.UpdatedAt.Format(time.RFC3339Nano),
	)
}

// LogValue keeps credential material out of structured logs.
func (c *Customer) LogValue() slog.Value {
	if c == nil {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.Int64("id", c.ID),
		slog.Int64("personId", c.PersonID),
		slog.String("password", maskPassword(c.Password)),
		slog.Bool("status", c.Status),
		slog.Time("createdAt", c.CreatedAt),
		slog.Time("updatedAt", c.UpdatedAt),
	)
}

func maskPassword(p string) string {
	if p == "" {
		return ""
	}
	return redactedPassword
}

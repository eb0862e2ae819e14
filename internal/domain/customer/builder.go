package customer

import "time"

// Builder stages a Customer field by field. Fields never set keep their zero value.
type Builder struct {
	c Customer
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) ID(id int64) *Builder {
	b.c.ID = id
	return b
}

func (b *Builder) PersonID(personID int64) *Builder {
	b.c.PersonID = personID
	return b
}

func (b *Builder) Password(password string) *Builder {
	b.c.Password = password
	return b
}

func (b *Builder) Status(status bool) *Builder {
	b.c.Status = status
	return b
}

func (b *Builder) CreatedAt(t time.Time) *Builder {
	b.c.CreatedAt = t
	return b
}

func (b *Builder) UpdatedAt(t time.Time) *Builder {
	b.c.UpdatedAt = t
	return b
}

// Build returns a new Customer; later builder calls do not affect it.
func (b *Builder) Build() *Customer {
	c := b.c
	return &c
}

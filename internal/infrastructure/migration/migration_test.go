package migration

import (
	"bytes"
	"customer-service/migrations"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	return m.Called().Error(0)
}

func (m *MockMigrator) Steps(n int) error {
	return m.Called(n).Error(0)
}

func (m *MockMigrator) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *MockMigrator) Force(version int) error {
	return m.Called(version).Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	m.Called()
	return nil, nil
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func openerFor(m *MockMigrator) OpenFunc {
	return func() (Migrator, error) { return m, nil }
}

func runCommand(t *testing.T, open OpenFunc, args ...string) (string, error) {
	t.Helper()
	cmd := MigrateCommand(open, testLogger)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestToDriverURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/db?sslmode=disable": "pgx5://u:p@localhost:5432/db?sslmode=disable",
		"postgresql://u@db/customers":                      "pgx5://u@db/customers",
		"pgx5://already/converted":                         "pgx5://already/converted",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToDriverURL(in), in)
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrations.FS, "*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))

	body, err := fs.ReadFile(migrations.FS, "000001_create_customers.up.sql")
	require.NoError(t, err)
	for _, column := range []string{"person_id", "password", "status", "created_at", "updated_at"} {
		assert.Contains(t, string(body), column)
	}
}

func TestCustomersStatusHasNoDefault(t *testing.T) {
	body, err := fs.ReadFile(migrations.FS, "000001_create_customers.up.sql")
	require.NoError(t, err)

	var statusLine string
	for _, line := range strings.Split(string(body), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "status ") {
			statusLine = line
			break
		}
	}
	require.NotEmpty(t, statusLine, "status column not declared")
	assert.Contains(t, statusLine, "NOT NULL")
	assert.NotContains(t, strings.ToUpper(statusLine), "DEFAULT")
}

func TestNew_EmptyURL(t *testing.T) {
	_, err := New("", testLogger)
	assert.ErrorContains(t, err, "database URL is empty")
}

func TestUp(t *testing.T) {
	t.Run("applies and reports version", func(t *testing.T) {
		m := new(MockMigrator)
		m.On("Up").Return(nil).Once()
		m.On("Version").Return(uint(1), false, nil).Once()

		assert.NoError(t, Up(m, testLogger))
		m.AssertExpectations(t)
	})

	t.Run("no change is success", func(t *testing.T) {
		m := new(MockMigrator)
		m.On("Up").Return(migrate.ErrNoChange).Once()

		assert.NoError(t, Up(m, testLogger))
		m.AssertNotCalled(t, "Version")
	})

	t.Run("failure is wrapped", func(t *testing.T) {
		m := new(MockMigrator)
		dirty := errors.New("dirty database")
		m.On("Up").Return(dirty).Once()

		err := Up(m, testLogger)
		assert.ErrorIs(t, err, dirty)
		assert.ErrorContains(t, err, "failed to apply migrations")
	})
}

func TestMigrateCommand(t *testing.T) {
	t.Run("up", func(t *testing.T) {
		m := new(MockMigrator)
		m.On("Up").Return(migrate.ErrNoChange).Once()
		m.On("Close").Once()

		_, err := runCommand(t, openerFor(m), "up")

		assert.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("down defaults to one step", func(t *testing.T) {
		m := new(MockMigrator)
		m.On("Steps", -1).Return(nil).Once()
		m.On("Close").Once()

		_, err := runCommand(t, openerFor(m), "down")

		assert.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("down n", func(t *testing.T) {
		m := new(MockMigrator)
		m.On("Steps", -3).Return(nil).Once()
		m.On("Close").Once()

		_, err := runCommand(t, openerFor(m), "down", "3")

		assert.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("down rejects bad count without opening", func(t *testing.T) {
		opened := false
		open := func() (Migrator, error) {
			opened = true
			return nil, errors.New("should not open")
		}

		_, err := runCommand(t, open, "down", "zero")

		assert.ErrorContains(t, err, "invalid step count")
		assert.False(t, opened)
	})

	t.Run("version", func(t *testing.T) {
		m := new(MockMigrator)
		m.On("Version").Return(uint(1), true, nil).Once()
		m.On("Close").Once()

		out, err := runCommand(t, openerFor(m), "version")

		assert.NoError(t, err)
		assert.Contains(t, out, "version=1 dirty=true")
	})

	t.Run("force", func(t *testing.T) {
		m := new(MockMigrator)
		m.On("Force", 1).Return(nil).Once()
		m.On("Close").Once()

		_, err := runCommand(t, openerFor(m), "force", "1")

		assert.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("force requires a version", func(t *testing.T) {
		_, err := runCommand(t, openerFor(new(MockMigrator)), "force")
		assert.Error(t, err)
	})

	t.Run("open failure is returned", func(t *testing.T) {
		open := func() (Migrator, error) { return nil, errors.New("connection refused") }

		_, err := runCommand(t, open, "up")

		assert.ErrorContains(t, err, "connection refused")
	})
}

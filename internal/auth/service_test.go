package auth

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/firedesk/timecard/internal/employee"
	"github.com/firedesk/timecard/internal/shared"
)

type memEmployees struct {
	byID map[string]employee.Employee
}

func (m *memEmployees) GetByEmployeeID(_ context.Context, employeeID string) (employee.Employee, error) {
	e, ok := m.byID[employeeID]
	if !ok {
		return employee.Employee{}, shared.ErrNotFound
	}
	return e, nil
}

func (m *memEmployees) SetPassword(_ context.Context, employeeID, passwordHash string) error {
	e, ok := m.byID[employeeID]
	if !ok {
		return shared.ErrNotFound
	}
	e.PasswordHash = passwordHash
	m.byID[employeeID] = e
	return nil
}

func (m *memEmployees) List(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.byID {
		out = append(out, e)
	}
	return out, nil
}

func (m *memEmployees) UpsertRoster(_ context.Context, roster []employee.Employee) (int64, error) {
	for _, e := range roster {
		m.byID[e.EmployeeID] = e
	}
	return int64(len(roster)), nil
}

func newTestService(t *testing.T) (*Service, *memEmployees, *CodeStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	employees := &memEmployees{byID: map[string]employee.Employee{
		"891": {
			EmployeeID:   "891",
			Name:         "J. Smith",
			Rank:         "Captain",
			Email:        "jsmith@firedesk.local",
			PasswordHash: string(hash),
		},
	}}
	codes, _ := newTestCodeStore(t)
	tokens := NewTokenManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(employees, codes, tokens, nil, logger), employees, codes
}

func TestVerify2FAIssuesToken(t *testing.T) {
	svc, _, codes := newTestService(t)
	ctx := context.Background()

	code, err := codes.Issue(ctx, "891")
	require.NoError(t, err)

	token, err := svc.Verify2FA(ctx, "891", code)
	require.NoError(t, err)

	id, err := svc.tokens.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "891", id.EmployeeID)
	require.Equal(t, "J. Smith", id.Name)
	require.Equal(t, "Captain", id.Rank)
	require.False(t, id.Admin)
}

func TestVerify2FAWrongCode(t *testing.T) {
	svc, _, codes := newTestService(t)
	ctx := context.Background()

	code, err := codes.Issue(ctx, "891")
	require.NoError(t, err)

	wrong := "999999"
	if wrong == code {
		wrong = "999998"
	}
	_, err = svc.Verify2FA(ctx, "891", wrong)
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestSetPassword(t *testing.T) {
	svc, employees, _ := newTestService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.SetPassword(ctx, "891", "short"), shared.ErrInvalidCredentials)

	require.NoError(t, svc.SetPassword(ctx, "891", "much-better-password"))
	stored := employees.byID["891"].PasswordHash
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("much-better-password")))
}

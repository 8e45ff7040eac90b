package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/firedesk/timecard/internal/employee"
	"github.com/firedesk/timecard/internal/shared"
	"github.com/firedesk/timecard/jobs"
)

// Service implements the login, 2FA and password flows.
type Service struct {
	employees employee.Repository
	codes     *CodeStore
	tokens    *TokenManager
	queue     *jobs.Client
	logger    *slog.Logger
}

// NewService constructs the auth service.
func NewService(employees employee.Repository, codes *CodeStore, tokens *TokenManager, queue *jobs.Client, logger *slog.Logger) *Service {
	return &Service{employees: employees, codes: codes, tokens: tokens, queue: queue, logger: logger}
}

// Login checks credentials and emails a 2FA code to the employee's address.
// The code is delivered out of band; the response only confirms issuance.
func (s *Service) Login(ctx context.Context, employeeID, password string) error {
	emp, err := s.employees.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		// Same failure for unknown and wrong-password logins.
		return fmt.Errorf("auth: login: %w", shared.ErrInvalidCredentials)
	}
	if emp.PasswordHash == "" {
		return fmt.Errorf("auth: password not set: %w", shared.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)); err != nil {
		return fmt.Errorf("auth: login: %w", shared.ErrInvalidCredentials)
	}

	code, err := s.codes.Issue(ctx, employeeID)
	if err != nil {
		return err
	}
	task, err := jobs.NewSendMailTask(jobs.SendMailPayload{
		To:      emp.Email,
		Subject: "Your verification code",
		Text:    fmt.Sprintf("Your timecard verification code is %s. It expires shortly.", code),
	})
	if err != nil {
		return err
	}
	if err := s.queue.Enqueue(ctx, task); err != nil {
		return err
	}
	s.logger.Info("2fa code issued", slog.String("employee_id", employeeID))
	return nil
}

// Verify2FA consumes the emailed code and returns a signed bearer token.
func (s *Service) Verify2FA(ctx context.Context, employeeID, code string) (string, error) {
	if err := s.codes.Verify(ctx, employeeID, code); err != nil {
		return "", err
	}
	emp, err := s.employees.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(shared.Identity{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Rank:       emp.Rank,
		Admin:      emp.Admin,
	})
}

// SetPassword stores a bcrypt hash of the employee's chosen password.
func (s *Service) SetPassword(ctx context.Context, employeeID, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("auth: password too short: %w", shared.ErrInvalidCredentials)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	return s.employees.SetPassword(ctx, employeeID, string(hash))
}

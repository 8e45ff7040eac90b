package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/firedesk/timecard/internal/shared"
)

// CodeStore keeps 2FA verification codes in Redis with a TTL, so codes
// survive process restarts and are shared across instances.
type CodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCodeStore constructs a CodeStore with the given code lifetime.
func NewCodeStore(client *redis.Client, ttl time.Duration) *CodeStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CodeStore{client: client, ttl: ttl}
}

func codeKey(employeeID string) string {
	return fmt.Sprintf("twofa:%s", employeeID)
}

// Issue generates a fresh six-digit code for employeeID, replacing any
// outstanding one, and stores it under the configured TTL.
func (s *CodeStore) Issue(ctx context.Context, employeeID string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("auth: generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())
	if err := s.client.Set(ctx, codeKey(employeeID), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("auth: store code: %w", err)
	}
	return code, nil
}

// Verify consumes the outstanding code for employeeID. A code verifies at
// most once; expired or mismatched codes fail with ErrInvalidCredentials.
func (s *CodeStore) Verify(ctx context.Context, employeeID, code string) error {
	stored, err := s.client.GetDel(ctx, codeKey(employeeID)).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("auth: no outstanding code: %w", shared.ErrInvalidCredentials)
		}
		return fmt.Errorf("auth: verify code: %w", err)
	}
	if stored != code {
		return fmt.Errorf("auth: code mismatch: %w", shared.ErrInvalidCredentials)
	}
	return nil
}

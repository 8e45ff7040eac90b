package submission

import (
	"time"

	"github.com/google/uuid"
)

// Record is a completed finance hand-off for a pay period. Rows are
// append-only; "already sent" means the latest row by sent_at exists.
type Record struct {
	ID             int64     `json:"id"`
	Reference      uuid.UUID `json:"reference"`
	PayPeriod      string    `json:"payPeriod"`
	SentBy         string    `json:"sentBy"`
	SentAt         time.Time `json:"sentAt"`
	ValidatedCount int       `json:"validatedCount"`
	FinanceEmail   string    `json:"financeEmail"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Status answers the "has this pay period already been sent" query.
type Status struct {
	AlreadySent bool       `json:"alreadySent"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	SentBy      string     `json:"sentBy,omitempty"`
}

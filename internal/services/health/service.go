package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the payload of the health endpoint.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
	Store    string `json:"store"`
	Variants int    `json:"variants"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB        Pinger
	StoreType string
	Variants  int
	Timeout   time.Duration
}

// NewService constructs a new health service. db may be nil when running on
// in-memory repositories.
func NewService(db Pinger, storeType string, variants int) *Service {
	return &Service{DB: db, StoreType: storeType, Variants: variants, Timeout: 2 * time.Second}
}

// Status reports whether the service can generate resumes.
func (s *Service) Status(ctx context.Context) Status {
	status := Status{OK: s.Variants > 0, Database: "memory", Store: s.StoreType, Variants: s.Variants}
	if s.DB == nil {
		return status
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		status.OK = false
		status.Database = "down"
		return status
	}
	status.Database = "up"
	return status
}

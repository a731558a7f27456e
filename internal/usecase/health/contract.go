package health

import "context"

// DBPinger checks directory store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ExtractionChecker checks extraction capability availability.
type ExtractionChecker interface {
	HealthCheck(ctx context.Context) error
}

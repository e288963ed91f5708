package health

import "context"

// CatalogPinger checks case catalog availability.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// OccurrencePinger checks occurrence store availability.
type OccurrencePinger interface {
	Ping(ctx context.Context) error
}

package repositories

import "context"

// Repository aggregates the per-collection repositories backed by the
// document store. There is no cross-document transaction support: every
// mutation is an independent round trip and the store is the sole arbiter
// of consistency.
type Repository interface {
	User() UserRepository
	Course() CourseRepository

	// Health check against the backing store.
	Ping(ctx context.Context) error

	// Close connections.
	Close(ctx context.Context) error
}

// RepositoryManager handles repository lifecycle.
type RepositoryManager interface {
	Initialize(ctx context.Context) error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

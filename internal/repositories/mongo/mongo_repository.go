// Package mongo implements the repository interfaces on top of the hosted
// document store. Collections mirror the shapes the web client has always
// written: users/{id} and courses/{id} with the embedded students array.
package mongo

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edubase/school-service/internal/repositories"
)

// RepositoryConfig holds dependencies for repository initialization.
type RepositoryConfig struct {
	DB          *mongo.Database
	RedisClient *redis.Client
}

// MongoRepository implements the aggregate Repository interface.
type MongoRepository struct {
	db *mongo.Database

	user   repositories.UserRepository
	course repositories.CourseRepository
}

// NewMongoRepository wires the per-collection repositories. The optional
// Redis client enables directory lookup caching.
func NewMongoRepository(config RepositoryConfig) repositories.Repository {
	return &MongoRepository{
		db:     config.DB,
		user:   NewUserMongo(config.DB, config.RedisClient),
		course: NewCourseMongo(config.DB),
	}
}

func (r *MongoRepository) User() repositories.UserRepository { return r.user }

func (r *MongoRepository) Course() repositories.CourseRepository { return r.course }

func (r *MongoRepository) Ping(ctx context.Context) error {
	if err := r.db.Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (r *MongoRepository) Close(ctx context.Context) error {
	return r.db.Client().Disconnect(ctx)
}

// Manager implements repositories.RepositoryManager.
type Manager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) *Manager {
	return &Manager{config: config}
}

func (m *Manager) Initialize(ctx context.Context) error {
	m.repo = NewMongoRepository(m.config)
	return m.repo.Ping(ctx)
}

func (m *Manager) GetRepository() repositories.Repository { return m.repo }

func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repositories not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close(ctx)
}

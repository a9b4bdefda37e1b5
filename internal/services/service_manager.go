package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/edubase/school-service/internal/events"
	"github.com/edubase/school-service/internal/repositories"
	"github.com/edubase/school-service/internal/validator"
)

// ServiceManagerConfig carries the policy switches the services honor.
type ServiceManagerConfig struct {
	// AllowSelfDemotion lets an admin change their own role to a non-admin
	// role. Enabled by default; deployments that want a last-admin guard
	// turn it off.
	AllowSelfDemotion bool
}

// ServiceManager wires the service layer and owns its lifecycle.
type ServiceManager interface {
	Directory() DirectoryService
	Roster() RosterService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type serviceManager struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	directoryService DirectoryService
	rosterService    RosterService
	exportService    ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager", "allow_self_demotion", sm.config.AllowSelfDemotion)

	sm.directoryService = NewDirectoryService(sm.repo, sm.publisher, sm.logger, sm.config.AllowSelfDemotion)
	sm.rosterService = NewRosterService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.exportService = NewExportService(sm.rosterService, sm.logger)

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")
	return nil
}

func (sm *serviceManager) Directory() DirectoryService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.directoryService
}

func (sm *serviceManager) Roster() RosterService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.rosterService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.exportService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.shutdown {
		return fmt.Errorf("service manager not ready")
	}
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")
	if err := sm.publisher.Close(); err != nil {
		sm.logger.Warn("Failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	return nil
}

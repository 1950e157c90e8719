package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/adapters/out/postgres/workerrepo"
	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the application graph. The session store, room router
// and gateway are singletons shared by every adapter; repositories are
// stateless and shared too.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *slog.Logger

	sessions *tracking.Store
	rooms    *ws.Rooms
	gateway  *ws.Gateway

	jobRepository      *jobrepo.GormJobRepository
	workerRepository   *workerrepo.GormWorkerRepository
	locationRepository *locationrepo.GormLocationRepository
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		config:             config,
		gormDB:             gormDB,
		logger:             logger,
		sessions:           tracking.NewStore(),
		rooms:              ws.NewRooms(),
		jobRepository:      jobrepo.NewGormJobRepository(gormDB),
		workerRepository:   workerrepo.NewGormWorkerRepository(gormDB),
		locationRepository: locationrepo.NewGormLocationRepository(gormDB),
	}

	root.gateway = ws.NewGateway(root.rooms, root.sessions, ws.Handlers{
		AcceptJob:      commands.NewAcceptJobCommandHandler(root.jobRepository, root.workerRepository, root.sessions),
		DeclineJob:     commands.NewDeclineJobCommandHandler(logger),
		StartJob:       commands.NewStartJobCommandHandler(root.jobRepository),
		CompleteJob:    commands.NewCompleteJobCommandHandler(root.jobRepository, root.sessions),
		UpdateLocation: commands.NewUpdateLocationCommandHandler(root.locationRepository, root.sessions),
		Heartbeat:      commands.NewHeartbeatCommandHandler(root.workerRepository, root.locationRepository),
		GoLive:         commands.NewGoLiveCommandHandler(root.workerRepository),
		GoOffline:      commands.NewGoOfflineCommandHandler(root.workerRepository),
		JoinTracking:   queries.NewJoinTrackingQueryHandler(root.jobRepository, root.workerRepository, root.locationRepository, logger),
	}, logger)

	return root
}

// Gateway returns the shared websocket event gateway.
func (c *CompositionRoot) Gateway() *ws.Gateway {
	return c.gateway
}

// JobRepository returns the shared job repository.
func (c *CompositionRoot) JobRepository() ports.JobRepository {
	return c.jobRepository
}

// WorkerRepository returns the shared worker repository.
func (c *CompositionRoot) WorkerRepository() ports.WorkerRepository {
	return c.workerRepository
}

// LocationRepository returns the shared location repository.
func (c *CompositionRoot) LocationRepository() ports.LocationRepository {
	return c.locationRepository
}

// CreateWebSocketServer creates the websocket upgrade endpoint.
func (c *CompositionRoot) CreateWebSocketServer() *ws.Server {
	return ws.NewServer(c.gateway, c.logger)
}

// CreateHTTPServer creates the operational REST server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(c.CreateGetActiveSessionsQueryHandler(), c.gateway)
}

func (c *CompositionRoot) CreateGetActiveSessionsQueryHandler() queries.GetActiveSessionsQueryHandler {
	return queries.NewGetActiveSessionsQueryHandler(c.sessions)
}

// CreateJobManager creates the scheduled background sweeps.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.gateway, c.workerRepository, jobs.Schedules{
		SessionReaperSchedule:  c.config.SessionReaperSchedule,
		SessionIdleTimeout:     c.config.SessionIdleTimeout,
		PresenceExpirySchedule: c.config.PresenceExpirySchedule,
		PresenceTTL:            c.config.PresenceTTL,
	}, c.logger)
}

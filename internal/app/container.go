package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	"skill-matrix/internal/database/migration"
	dbpostgres "skill-matrix/internal/database/postgres"
	"skill-matrix/internal/database/seeder"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/pkg/metrics"
	"skill-matrix/internal/pkg/tracing"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/usecase"
	"skill-matrix/internal/ws"
	"skill-matrix/migrations"

	"go.uber.org/zap"
)

var errDatabaseNotConfigured = errors.New("database is not configured: set DB_HOST and DB_NAME")

type Repositories struct {
	Skills       repository.SkillRepository
	Employees    repository.EmployeeRepository
	Records      repository.SkillRecordRepository
	Requirements repository.BandRequirementRepository
	Courses      repository.CourseRepository
	Assignments  repository.CourseAssignmentRepository
}

type Usecases struct {
	Skills        *usecase.Skill
	EmployeeMatch *usecase.EmployeeMatch
	SkillRecords  *usecase.SkillRecords
	GapReports    *usecase.GapReporter
	GapExport     *usecase.GapExporter
	AutoAssign    *usecase.AutoAssigner
	Assignments   *usecase.Assignments
}

type Container struct {
	Config   config.Config
	Log      *zap.Logger
	DB       database.DB
	Cache    *cache.Redis
	Metrics  *metrics.Metrics
	Hub      *ws.Hub
	Repos    Repositories
	Usecases Usecases

	stopTracing func(context.Context) error
	stopHub     chan struct{}
}

// NewContainer connects to the database, applies migrations and wires every
// repository and usecase. Close releases what it opened.
func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Database.Enabled() {
		return nil, errDatabaseNotConfigured
	}

	c := &Container{Config: cfg, Log: log, Metrics: metrics.New(), stopHub: make(chan struct{})}

	stop, err := tracing.Init(cfg.Tracing, log)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	c.stopTracing = stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	if err := c.prepareSchema(); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Cache = cache.NewRedis(cfg.Redis, log)
	c.Hub = ws.NewHub(log.Named("ws"))
	go c.Hub.Run(c.stopHub)

	c.Repos = Repositories{
		Skills:       repository.NewPostgresSkillRepository(db),
		Employees:    repository.NewPostgresEmployeeRepository(db),
		Records:      repository.NewPostgresSkillRecordRepository(db),
		Requirements: repository.NewPostgresBandRequirementRepository(db),
		Courses:      repository.NewPostgresCourseRepository(db),
		Assignments:  repository.NewPostgresCourseAssignmentRepository(db),
	}
	c.Usecases = newUsecases(cfg, log, c.Repos, c.Cache, c.Hub, c.Metrics)
	return c, nil
}

func (c *Container) prepareSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Log: c.Log.Named("migration")}
	if r.Dir == "" {
		r.FS = migrations.FS
	}
	applied, err := r.Run(ctx, c.DB.SQLDB())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	c.Log.Info("migrations up to date", zap.Int("applied", applied))

	if !c.Config.Database.RunSeeders {
		return nil
	}
	s := seeder.Runner{Seeders: seeder.Defaults(), Log: c.Log.Named("seeder")}
	if err := s.Run(ctx, c.DB); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func newUsecases(cfg config.Config, log *zap.Logger, repos Repositories, rc *cache.Redis, hub *ws.Hub, m *metrics.Metrics) Usecases {
	gaps := usecase.NewGapReportUsecase(repos.Employees, repos.Records, repos.Requirements, repos.Courses, log)

	var notifier usecase.AssignmentNotifier
	if hub != nil {
		notifier = hub
	}

	return Usecases{
		Skills:        usecase.NewSkillUsecase(repos.Skills, rc, m, log, cfg.Matching),
		EmployeeMatch: usecase.NewEmployeeMatchUsecase(repos.Employees, repos.Records, m, log, cfg.Matching),
		SkillRecords:  usecase.NewSkillRecordUsecase(repos.Employees, repos.Skills, repos.Records, log),
		GapReports:    gaps,
		GapExport:     usecase.NewGapExportUsecase(gaps, log),
		AutoAssign: usecase.NewAutoAssignUsecase(usecase.AutoAssignDeps{
			Employees:    repos.Employees,
			Records:      repos.Records,
			Requirements: repos.Requirements,
			Courses:      repos.Courses,
			Assignments:  repos.Assignments,
			Lock:         rc,
			Notifier:     notifier,
			Metrics:      m,
			Log:          log.Named("autoassign"),
			Matching:     cfg.Matching,
		}),
		Assignments: usecase.NewAssignmentUsecase(repos.Employees, repos.Assignments, log),
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.stopHub != nil && c.Hub != nil {
		close(c.stopHub)
		c.stopHub = nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.stopTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.stopTracing(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

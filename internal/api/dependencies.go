package api

import (
	"errors"
	"time"

	"motofibra/catalog/internal/common"
	"motofibra/catalog/internal/db/repositories"
	"motofibra/catalog/internal/metrics"
	"motofibra/catalog/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	Parts *repositories.PartRepository
}

type Services struct {
	Cache   common.CacheInterface
	Catalog *services.CatalogService
	Reports *services.ReportService
	Export  *services.ExportService
}

type Dependencies struct {
	DB       *gorm.DB
	ReadDB   *sqlx.DB
	Metrics  *metrics.MetricsRegistry
	Repo     *Repositories
	Services *Services
}

// DependencyOptions carries the already opened resources. Cache and Metrics
// may be nil.
type DependencyOptions struct {
	DB          *gorm.DB
	ReadDB      *sqlx.DB
	Cache       common.CacheInterface
	CacheTTL    time.Duration
	MergePolicy services.DetailMergePolicy
	Metrics     *metrics.MetricsRegistry
}

func InitDependencies(opts DependencyOptions) (*Dependencies, error) {
	if opts.DB == nil || opts.ReadDB == nil {
		return nil, errors.New("api: database handles are required")
	}

	repos := &Repositories{
		Parts: repositories.NewPartRepository(opts.DB, opts.Metrics),
	}

	svcs := &Services{
		Cache:   opts.Cache,
		Catalog: services.NewCatalogService(repos.Parts, opts.Cache, opts.CacheTTL, opts.MergePolicy, opts.Metrics),
		Reports: services.NewReportService(opts.ReadDB),
		Export:  services.NewExportService(repos.Parts),
	}

	return &Dependencies{
		DB:       opts.DB,
		ReadDB:   opts.ReadDB,
		Metrics:  opts.Metrics,
		Repo:     repos,
		Services: svcs,
	}, nil
}

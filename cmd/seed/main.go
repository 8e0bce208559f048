package main

import (
	"context"
	"flag"
	"log"

	"motofibra/catalog/internal/config"
	"motofibra/catalog/internal/db"
	"motofibra/catalog/internal/db/repositories"
	"motofibra/catalog/internal/logging"
	"motofibra/catalog/internal/services"

	"github.com/brianvoe/gofakeit/v7"
)

// seed fills the configured database with generated parts for local use.
func main() {
	count := flag.Int("n", 25, "number of parts to create")
	seed := flag.Uint64("seed", 0, "random seed, 0 for a random one")
	withDetails := flag.Float64("details", 0.6, "share of parts that also get full details")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	policy, err := services.ParseMergePolicy(cfg.DetailsMergeMode)
	if err != nil {
		log.Fatalf("merge mode: %v", err)
	}

	gormDB, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close(gormDB)

	faker := gofakeit.New(*seed)
	catalog := services.NewCatalogService(repositories.NewPartRepository(gormDB, nil), nil, 0, policy, nil)

	created, err := services.SeedCatalog(context.Background(), catalog, faker, *count, *withDetails)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("Created %d parts in %s", created, cfg.Database.DSN)
}

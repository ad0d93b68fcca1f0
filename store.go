package main

import (
	"context"
	"fmt"
	"log"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// store bundles the repositories of one backend with its shutdown hook.
type store struct {
	users    repositories.UserRepository
	products repositories.ProductRepository
	reviews  repositories.ReviewRepository
	close    func() error
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := database.NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDBName)
		if err := repositories.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			users:    repositories.NewMongoUserRepository(db),
			products: repositories.NewMongoProductRepository(db),
			reviews:  repositories.NewMongoReviewRepository(db),
			close:    func() error { return client.Disconnect(context.Background()) },
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		dsn := cfg.DatabaseDSN
		if cfg.DBDriver == config.DriverSQLite {
			dsn = cfg.SQLitePath
		}
		db, err := database.NewGORM(cfg.DBDriver, dsn)
		if err != nil {
			return nil, err
		}
		return &store{
			users:    repositories.NewGORMUserRepository(db),
			products: repositories.NewGORMProductRepository(db),
			reviews:  repositories.NewGORMReviewRepository(db),
			close:    func() error { return database.CloseGORM(db) },
		}, nil

	case config.DriverMemory:
		products := repositories.NewMemoryProductRepository()
		seedProducts(ctx, products)
		return &store{
			users:    repositories.NewMemoryUserRepository(),
			products: products,
			reviews:  repositories.NewMemoryReviewRepository(),
			close:    func() error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.DBDriver)
}

// seedProducts gives the in-memory store a small catalog to browse.
func seedProducts(ctx context.Context, repo repositories.ProductRepository) {
	products := []models.Product{
		{Name: "Pixel 9", Description: "6.3 inch OLED, 128GB", Price: 799, MRP: 899, Discount: 11, Category: models.CategorySmartphone},
		{Name: "Noise Cancelling Headphones", Description: "Over-ear, 30h battery", Price: 249, MRP: 299, Discount: 17, Category: models.CategoryElectronics},
		{Name: "Air Fryer", Description: "4.2L, 1500W", Price: 89, MRP: 120, Discount: 26, Category: models.CategoryHomeAppliance},
	}

	for i := range products {
		products[i].ApplyDefaults()
		if err := repo.Create(ctx, &products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		} else {
			log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
		}
	}
}

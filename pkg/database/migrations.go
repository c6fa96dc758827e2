package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
	Down        func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	err := m.createMigrationsCollection()
	if err != nil {
		return err
	}

	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			err := migration.Up(m.db)
			if err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			err = m.updateVersion(migration.Version)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d completed successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) Down(targetVersion int) error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version <= currentVersion && migration.Version > targetVersion {
			log.Printf("Reverting migration %d: %s", migration.Version, migration.Description)

			err := migration.Down(m.db)
			if err != nil {
				return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
			}

			previousVersion := targetVersion
			if i > 0 {
				previousVersion = m.migrations[i-1].Version
			}

			err = m.updateVersion(previousVersion)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d reverted successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) createMigrationsCollection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collections, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}

	for _, name := range collections {
		if name == "migrations" {
			return nil
		}
	}

	return m.db.CreateCollection(ctx, "migrations")
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection("migrations").FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := m.db.Collection("migrations").ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)

	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create pricing_configurations indexes",
			Up: func(db *mongo.Database) error {
				return createIndexes(db, "pricing_configurations", []mongo.IndexModel{
					{
						Keys:    bson.D{{Key: "service_type", Value: 1}, {Key: "region", Value: 1}, {Key: "is_active", Value: 1}},
						Options: options.Index().SetName("service_region_active"),
					},
				})
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("pricing_configurations").Drop(context.Background())
			},
		},
		{
			Version:     2,
			Description: "Create availability_rules indexes",
			Up: func(db *mongo.Database) error {
				return createIndexes(db, "availability_rules", []mongo.IndexModel{
					{
						Keys:    bson.D{{Key: "service_type", Value: 1}, {Key: "region", Value: 1}, {Key: "is_active", Value: 1}},
						Options: options.Index().SetName("service_region_active"),
					},
				})
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("availability_rules").Drop(context.Background())
			},
		},
		{
			Version:     3,
			Description: "Create rides indexes",
			Up: func(db *mongo.Database) error {
				return createIndexes(db, "rides", []mongo.IndexModel{
					{
						Keys:    bson.D{{Key: "driver_id", Value: 1}, {Key: "status", Value: 1}},
						Options: options.Index().SetName("driver_status"),
					},
					{
						Keys:    bson.D{{Key: "created_at", Value: -1}},
						Options: options.Index().SetName("created_desc"),
					},
				})
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("rides").Drop(context.Background())
			},
		},
		{
			Version:     4,
			Description: "Create payout_requests indexes",
			Up: func(db *mongo.Database) error {
				return createIndexes(db, "payout_requests", []mongo.IndexModel{
					{
						Keys:    bson.D{{Key: "driver_id", Value: 1}, {Key: "status", Value: 1}},
						Options: options.Index().SetName("driver_status"),
					},
					{
						Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
						Options: options.Index().SetName("status_created"),
					},
				})
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("payout_requests").Drop(context.Background())
			},
		},
		{
			Version:     5,
			Description: "Create fee_payments indexes",
			Up: func(db *mongo.Database) error {
				return createIndexes(db, "fee_payments", []mongo.IndexModel{
					{
						Keys:    bson.D{{Key: "driver_id", Value: 1}, {Key: "status", Value: 1}},
						Options: options.Index().SetName("driver_status"),
					},
					{
						// The expiry sweep scans pending payments by due date.
						Keys:    bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}},
						Options: options.Index().SetName("status_due"),
					},
				})
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("fee_payments").Drop(context.Background())
			},
		},
	}
}

func createIndexes(db *mongo.Database, collection string, indexes []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes)
	return err
}

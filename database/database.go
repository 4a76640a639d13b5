package database

import (
	"fmt"

	"catalog-app/internal/domain/works"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NotifyChannel carries one notification per committed statement on a watched table.
// The payload is the table name.
const NotifyChannel = "catalog_changes"

const notifyFunction = `
CREATE OR REPLACE FUNCTION catalog_notify() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('` + NotifyChannel + `', TG_TABLE_NAME);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;`

var watchedTables = []string{"artworks", "settings"}

func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates the tables and installs the change-notification triggers.
func Migrate(db *gorm.DB) error {
	// REQUIRED for UUID generation
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&works.Artwork{},
		&works.Setting{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := db.Exec(notifyFunction).Error; err != nil {
		return fmt.Errorf("install notify function: %w", err)
	}
	for _, table := range watchedTables {
		for _, stmt := range triggerStatements(table) {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("install trigger on %s: %w", table, err)
			}
		}
	}
	return nil
}

// statement-level, so a bulk write produces one notification
func triggerStatements(table string) []string {
	trigger := table + "_notify"
	return []string{
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s;`, trigger, table),
		fmt.Sprintf(`CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s FOR EACH STATEMENT EXECUTE FUNCTION catalog_notify();`, trigger, table),
	}
}

package models

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Model tooling.

  AUTO_MIGRATE=true            migrate the schema at startup (Migrate)
  GENERATE_MODELS=true         migrate, report drift and emit typed query code to ./generated, then exit
  GENERATE_COLUMN_REPORT=true  only report drift, then exit

The drift report lists, per table, database columns that no model field maps to.
*/

// All returns every persisted model in dependency order.
func All() []any {
	return []any{
		&Author{},
		&Category{},
		&Tag{},
		&Post{},
		&Comment{},
		&PostLike{},
		&AIGeneration{},
	}
}

// Migrate enables the extensions the schema relies on and auto-migrates every model.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("enable pgcrypto: %w", err)
	}

	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func GenerateModels(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}
	log.Info().Msg("database migration completed")

	report, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}
	logReport(report)

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	log.Info().Msg("model generation complete")
	return nil
}

// ColumnMismatchReport maps table name to the columns present in the database but unknown to the model.
// Tables that do not exist yet are skipped.
func ColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)
	cache := &sync.Map{}

	for _, model := range All() {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parse schema of %T: %w", model, err)
		}

		if !db.Migrator().HasTable(s.Table) {
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("columns of %s: %w", s.Table, err)
		}

		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		if missing := findColumnMismatches(dbColumns, s.DBNames); len(missing) > 0 {
			report[s.Table] = missing
		}
	}

	return report, nil
}

// findColumnMismatches returns the dbColumns not found in modelColumns, sorted.
func findColumnMismatches(dbColumns, modelColumns []string) []string {
	known := make(map[string]struct{}, len(modelColumns))
	for _, c := range modelColumns {
		known[strings.ToLower(c)] = struct{}{}
	}

	var mismatches []string
	for _, c := range dbColumns {
		if _, ok := known[strings.ToLower(c)]; !ok {
			mismatches = append(mismatches, c)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}

// GenerateColumnMismatchReportStandalone logs the drift report without migrating.
func GenerateColumnMismatchReportStandalone(db *gorm.DB) error {
	report, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}
	logReport(report)
	return nil
}

func logReport(report map[string][]string) {
	total := 0
	for table, columns := range report {
		total += len(columns)
		log.Warn().Str("table", table).Strs("columns", columns).Msg("columns not accounted for in model")
	}
	log.Info().Int("mismatchedColumns", total).Msg("column mismatch report complete")
}

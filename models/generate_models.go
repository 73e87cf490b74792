package models

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report Usage:

Set GENERATE_COLUMN_REPORT=true and start the binary. For every model table the
report lists columns that exist in the database but have no field in the Go
model, which usually means a manual migration was never mirrored in code.

Example output:
	table=sections mismatches=["legacy_css"]
	total=1 msg="column mismatch report done"
*/

// All lists every persisted model, in migration order.
func All() []any {
	return []any{&Section{}}
}

// GenerateModels migrates the schema, prints the column report and writes the
// gorm/gen query helpers to ./generated.
func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	verbose := db.Session(&gorm.Session{
		Logger:                 db.Logger.LogMode(logger.Info),
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	if err := verbose.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("enabling pgcrypto: %w", err)
	}

	log.Info().Msg("migrating models")
	if err := verbose.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("migrating models: %w", err)
	}

	if _, err := GenerateColumnMismatchReport(db); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(verbose)
	g.ApplyBasic(All()...)
	g.Execute()

	log.Info().Msg("model generation complete")
	return nil
}

// GenerateColumnMismatchReport logs, per table, the database columns no model
// field maps to, and returns the total.
func GenerateColumnMismatchReport(db *gorm.DB) (int, error) {
	total := 0
	cache := &sync.Map{}

	for _, model := range All() {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return total, fmt.Errorf("parsing model %T: %w", model, err)
		}

		columns, err := tableColumns(db, s.Table)
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") {
				log.Warn().Str("table", s.Table).Msg("table does not exist yet, it will be created by the migration")
				continue
			}
			return total, err
		}

		mismatches := findColumnMismatches(columns, modelColumns(s))
		total += len(mismatches)
		log.Info().Str("table", s.Table).Strs("mismatches", mismatches).Msg("column report")
	}

	log.Info().Int("total", total).Msg("column mismatch report done")
	return total, nil
}

func tableColumns(db *gorm.DB, table string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, table).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("querying columns of %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", table)
	}
	return columns, nil
}

func modelColumns(s *schema.Schema) []string {
	var out []string
	for _, f := range s.Fields {
		if f.DBName != "" {
			out = append(out, f.DBName)
		}
	}
	return out
}

// findColumnMismatches returns the columns of dbColumns missing from modelColumns, sorted.
func findColumnMismatches(dbColumns, modelColumns []string) []string {
	known := make(map[string]bool, len(modelColumns))
	for _, c := range modelColumns {
		known[c] = true
	}

	var mismatches []string
	for _, c := range dbColumns {
		if !known[c] {
			mismatches = append(mismatches, c)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}

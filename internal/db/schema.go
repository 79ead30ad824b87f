package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Column type placeholders replaced per dialect.
const (
	pkAuto = "{{PK_AUTO}}"
	suffix = "{{TABLE_SUFFIX}}"
)

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS buses (
	bus_id ` + pkAuto + `,
	bus_number VARCHAR(50) NOT NULL,
	total_seats INTEGER NOT NULL DEFAULT 0
)` + suffix,
	`CREATE TABLE IF NOT EXISTS seats (
	bus_id BIGINT NOT NULL PRIMARY KEY,
	available_seats INTEGER NOT NULL DEFAULT 0
)` + suffix,
	`CREATE TABLE IF NOT EXISTS routes (
	id ` + pkAuto + `,
	bus_id BIGINT NOT NULL,
	stop_name VARCHAR(255) NOT NULL,
	stop_time VARCHAR(20) NOT NULL
)` + suffix,
	`CREATE TABLE IF NOT EXISTS intent_to_travel (
	id ` + pkAuto + `,
	student_id VARCHAR(100) NOT NULL,
	bus_id BIGINT NOT NULL,
	seat_reserved BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)` + suffix,
	`CREATE TABLE IF NOT EXISTS occupancy (
	id ` + pkAuto + `,
	bus_id BIGINT NOT NULL,
	user_name VARCHAR(255) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)` + suffix,
	`CREATE TABLE IF NOT EXISTS admins (
	id ` + pkAuto + `,
	username VARCHAR(100) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)` + suffix,
}

// SchemaStatements returns the bootstrap DDL rendered for driver.
func SchemaStatements(driver string) []string {
	pk := "BIGINT AUTO_INCREMENT PRIMARY KEY"
	tail := " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci"
	if driver == "sqlite" {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
		tail = ""
	}
	out := make([]string, 0, len(schemaDDL))
	for _, stmt := range schemaDDL {
		stmt = strings.ReplaceAll(stmt, pkAuto, pk)
		stmt = strings.ReplaceAll(stmt, suffix, tail)
		out = append(out, stmt)
	}
	return out
}

// EnsureSchema creates the shuttle tables when they are missing. Existing
// tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	if db == nil {
		return fmt.Errorf("db tidak tersedia")
	}
	for _, stmt := range SchemaStatements(driver) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

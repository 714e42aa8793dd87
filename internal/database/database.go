package database

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"time"

	"yatube/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type DB struct {
	*sqlx.DB
}

// DSN builds the lib/pq connection string for cfg.
func DSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.DbHOST,
		cfg.DB.DbPORT,
		cfg.DB.DbUSER,
		cfg.DB.DbPASSWORD,
		cfg.DB.DbNAME,
		cfg.DB.DbSSLMODE,
	)
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	slog.Info("подключаемся к БД", "host", cfg.DB.DbHOST, "dbname", cfg.DB.DbNAME)
	return Open(DSN(cfg))
}

// Open connects to dsn, applies the embedded migrations and checks the connection.
func Open(dsn string) (*DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}

	if err := dbStruct.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("проверка БД не пройдена: %w", err)
	}

	slog.Info("успешное подключение к PostgreSQL")
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations executes every embedded migration in file name order.
// The scripts are idempotent, so running them on each start is safe.
func (db *DB) RunMigrations() error {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("ошибка при поиске миграций: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		migrationSQL, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("ошибка при чтении файла миграций %s: %w", name, err)
		}

		slog.Info("применяем миграции", "file", name)

		if _, err := db.Exec(string(migrationSQL)); err != nil {
			return fmt.Errorf("ошибка при выполнении миграций %s: %w", name, err)
		}
	}

	slog.Info("миграции успешно применены", "count", len(names))
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("подключение к БД не инициализировано")
	}

	return db.Ping()
}

package repository

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/quickretail/qpos/internal/config"

	_ "github.com/lib/pq"
)

// Repositories bundles every Postgres-backed repository behind one database
// handle. The cart repository lives in Redis and is constructed separately.
type Repositories struct {
	DB       *sql.DB
	Product  ProductRepository
	Order    OrderRepository
	StockLog StockLogRepository
	Customer CustomerRepository
	User     UserRepository
}

func New(cfg *config.Config) (*Repositories, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:       db,
		Product:  NewProductRepo(db),
		Order:    NewOrderRepo(db),
		StockLog: NewStockLogRepo(db),
		Customer: NewCustomerRepo(db),
		User:     NewUserRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

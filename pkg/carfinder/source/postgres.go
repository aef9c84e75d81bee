package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/retry"
)

// Postgres reads the catalog from a cars table. Brand, fuel type and price
// bounds are pushed down into the WHERE clause.
type Postgres struct {
	db     *sql.DB
	policy retry.Policy
}

// NewPostgres connects to PostgreSQL, runs schema migrations and returns a
// ready-to-use source.
func NewPostgres(ctx context.Context, dsn string, policy retry.Policy) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	err = policy.Do(ctx, "postgres ping", func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	p := &Postgres{db: db, policy: policy}
	if err := p.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cars (
			id          INTEGER       PRIMARY KEY CHECK (id > 0),
			name        TEXT          NOT NULL,
			brand       TEXT          NOT NULL,
			price       NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
			fuel_type   VARCHAR(16)   NOT NULL,
			seats       INTEGER       NOT NULL CHECK (seats > 0),
			image       TEXT          NOT NULL DEFAULT '',
			description TEXT          NOT NULL DEFAULT '',
			features    TEXT[]        NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_cars_brand     ON cars(brand);
		CREATE INDEX IF NOT EXISTS idx_cars_fuel_type ON cars(fuel_type);
		CREATE INDEX IF NOT EXISTS idx_cars_price     ON cars(price);
	`)
	return err
}

const carColumns = "id, name, brand, price, fuel_type, seats, image, description, features"

func (p *Postgres) List(ctx context.Context, spec dal.FilterSpec) ([]dal.Car, error) {
	stmt, args := listQuery(spec)

	var cars []dal.Car
	err := p.policy.Do(ctx, "list cars", func(ctx context.Context) error {
		rows, err := p.db.QueryContext(ctx, stmt, args...)
		if err != nil {
			return fmt.Errorf("postgres: list cars: %w", err)
		}
		defer rows.Close()

		cars = cars[:0]
		for rows.Next() {
			car, err := scanCar(rows)
			if err != nil {
				return fmt.Errorf("postgres: scan row: %w", err)
			}
			cars = append(cars, car.Summary())
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func (p *Postgres) Get(ctx context.Context, id int) (dal.Car, error) {
	var car dal.Car
	err := p.policy.Do(ctx, "get car", func(ctx context.Context) error {
		row := p.db.QueryRowContext(ctx, "SELECT "+carColumns+" FROM cars WHERE id = $1;", id)
		var err error
		car, err = scanCar(row)
		if errors.Is(err, sql.ErrNoRows) {
			return retry.Stop(fmt.Errorf("car %d: %w", id, dal.ErrNotFound))
		}
		if err != nil {
			return fmt.Errorf("postgres: get car %d: %w", id, err)
		}
		return nil
	})
	return car, err
}

// Import upserts cars in a single transaction.
func (p *Postgres) Import(ctx context.Context, cars []dal.Car) (err error) {
	if err := validate(cars); err != nil {
		return err
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cars (`+carColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, brand = EXCLUDED.brand, price = EXCLUDED.price,
			fuel_type = EXCLUDED.fuel_type, seats = EXCLUDED.seats, image = EXCLUDED.image,
			description = EXCLUDED.description, features = EXCLUDED.features;
	`)
	if err != nil {
		return fmt.Errorf("postgres: prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range cars {
		features := c.Features
		if features == nil {
			features = []string{}
		}
		if _, err = stmt.ExecContext(ctx, c.ID, c.Name, c.Brand, c.Price, string(c.FuelType),
			c.Seats, c.Image, c.Description, pq.Array(features)); err != nil {
			return fmt.Errorf("postgres: insert car %d: %w", c.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// listQuery builds the pushed-down part of spec. Free-text search and
// ordering stay with the query engine so results match every other source.
func listQuery(spec dal.FilterSpec) (string, []any) {
	var where []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if spec.Brand != "" {
		add("brand = $%d", spec.Brand)
	}
	if spec.FuelType != "" {
		add("fuel_type = $%d", string(spec.FuelType))
	}
	if spec.MinPrice > 0 {
		add("price >= $%d", spec.MinPrice)
	}
	if spec.Bounded() {
		add("price <= $%d", spec.MaxPrice)
	}

	stmt := "SELECT " + carColumns + " FROM cars"
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	return stmt + " ORDER BY id ASC;", args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCar(row rowScanner) (dal.Car, error) {
	var car dal.Car
	var fuel string
	var features pq.StringArray
	if err := row.Scan(&car.ID, &car.Name, &car.Brand, &car.Price, &fuel,
		&car.Seats, &car.Image, &car.Description, &features); err != nil {
		return dal.Car{}, err
	}
	car.FuelType = dal.FuelType(fuel)
	if len(features) > 0 {
		car.Features = []string(features)
	}
	return car, nil
}

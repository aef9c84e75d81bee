// Package source supplies the car catalog to the views.
package source

import (
	"context"
	"fmt"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

// Source fetches the catalog.
type Source interface {
	// List returns the catalog. Sources may pre-filter with spec; callers
	// still run the query engine over the result.
	List(ctx context.Context, spec dal.FilterSpec) ([]dal.Car, error)
	// Get returns a single car with its detail fields, or dal.ErrNotFound.
	Get(ctx context.Context, id int) (dal.Car, error)
}

// find looks id up in cars.
func find(cars []dal.Car, id int) (dal.Car, error) {
	for _, c := range cars {
		if c.ID == id {
			return c, nil
		}
	}
	return dal.Car{}, fmt.Errorf("car %d: %w", id, dal.ErrNotFound)
}

// validate checks every record and rejects duplicate ids.
func validate(cars []dal.Car) error {
	seen := make(map[int]struct{}, len(cars))
	for _, c := range cars {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("duplicate car id %d", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

package source

import (
	"context"
	"time"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

// DefaultDelay simulates the latency of a remote catalog.
const DefaultDelay = time.Second

// Static serves a fixed in-memory catalog after an artificial delay.
type Static struct {
	cars  []dal.Car
	delay time.Duration
}

// NewStatic returns a source serving cars. A nil slice serves the built-in
// dataset.
func NewStatic(cars []dal.Car, delay time.Duration) *Static {
	if cars == nil {
		cars = dal.CarsDataset
	}
	return &Static{cars: cars, delay: delay}
}

func (s *Static) List(ctx context.Context, _ dal.FilterSpec) ([]dal.Car, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return append([]dal.Car(nil), s.cars...), nil
}

func (s *Static) Get(ctx context.Context, id int) (dal.Car, error) {
	if err := s.wait(ctx); err != nil {
		return dal.Car{}, err
	}
	return find(s.cars, id)
}

func (s *Static) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package dal

import (
	"fmt"
	"strings"
)

// PlaceholderImage is served for cars without an image reference.
const PlaceholderImage = "/placeholder-car.jpg"

// FuelType enumerates the propulsion of a car.
type FuelType string

const (
	Petrol   FuelType = "Petrol"
	Diesel   FuelType = "Diesel"
	Electric FuelType = "Electric"
	Hybrid   FuelType = "Hybrid"
)

// FuelTypes lists every known fuel type in display order.
var FuelTypes = []FuelType{Petrol, Diesel, Electric, Hybrid}

// ParseFuelType matches s case-insensitively against the known fuel types.
func ParseFuelType(s string) (FuelType, error) {
	s = strings.TrimSpace(s)
	for _, f := range FuelTypes {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown fuel type %q", s)
}

// Car defines a car struct
type Car struct {
	ID          int      `json:"id" yaml:"id" parquet:"id"`
	Name        string   `json:"name" yaml:"name" parquet:"name"`
	Brand       string   `json:"brand" yaml:"brand" parquet:"brand"`
	Price       float64  `json:"price" yaml:"price" parquet:"price"`
	FuelType    FuelType `json:"fuelType" yaml:"fuelType" parquet:"fuel_type"`
	Seats       int      `json:"seats" yaml:"seats" parquet:"seats"`
	Image       string   `json:"image,omitempty" yaml:"image,omitempty" parquet:"image,optional"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" parquet:"description,optional"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty" parquet:"features,list"`
}

// ImageURL returns the image reference or the placeholder when it is absent.
func (c Car) ImageURL() string {
	if strings.TrimSpace(c.Image) == "" {
		return PlaceholderImage
	}
	return c.Image
}

// Summary strips the detail-only fields.
func (c Car) Summary() Car {
	c.Description = ""
	c.Features = nil
	return c
}

// Validate reports the first violated record constraint.
func (c Car) Validate() error {
	switch {
	case c.ID <= 0:
		return fmt.Errorf("car %q: id must be positive, got %d", c.Name, c.ID)
	case c.Price < 0:
		return fmt.Errorf("car %d: price must not be negative, got %v", c.ID, c.Price)
	case c.Seats <= 0:
		return fmt.Errorf("car %d: seats must be positive, got %d", c.ID, c.Seats)
	}
	if _, err := ParseFuelType(string(c.FuelType)); err != nil {
		return fmt.Errorf("car %d: %w", c.ID, err)
	}
	return nil
}

// CarView is a car as rendered by the views, with its wishlist membership
// and a resolved image reference.
type CarView struct {
	Car
	ImageURL string `json:"imageUrl"`
	Wished   bool   `json:"wished"`
}

// NewCarView builds the view of c.
func NewCarView(c Car, wished bool) CarView {
	return CarView{Car: c, ImageURL: c.ImageURL(), Wished: wished}
}

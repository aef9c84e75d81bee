// Package query turns a catalog and a FilterSpec into the ordered
// list of cars to display.
package query

import (
	"strings"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

// Run filters catalog by spec and orders the result. Every active predicate
// must hold for a car to be included. The catalog is never modified.
func Run(catalog []dal.Car, spec dal.FilterSpec) []dal.Car {
	search := strings.ToLower(spec.Search)

	result := make([]dal.Car, 0, len(catalog))
	for _, car := range catalog {
		if !brandMatch(car, spec.Brand) ||
			!fuelMatch(car, spec.FuelType) ||
			!budgetMatch(car, spec.MinPrice, spec.MaxPrice) ||
			!searchMatch(car, search) {
			continue
		}
		result = append(result, car)
	}

	switch spec.Sort {
	case dal.SortPriceAsc:
		return MergeSort(result, byPriceAsc)
	case dal.SortPriceDesc:
		return MergeSort(result, byPriceDesc)
	}
	return result
}

// Matches reports whether car passes every active predicate of spec.
func Matches(car dal.Car, spec dal.FilterSpec) bool {
	return brandMatch(car, spec.Brand) &&
		fuelMatch(car, spec.FuelType) &&
		budgetMatch(car, spec.MinPrice, spec.MaxPrice) &&
		searchMatch(car, strings.ToLower(spec.Search))
}

// Brands returns the distinct brands of catalog in first-seen order.
func Brands(catalog []dal.Car) []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, car := range catalog {
		if _, ok := seen[car.Brand]; ok {
			continue
		}
		seen[car.Brand] = struct{}{}
		brands = append(brands, car.Brand)
	}
	return brands
}

func brandMatch(car dal.Car, brand string) bool {
	return brand == "" || car.Brand == brand
}

func fuelMatch(car dal.Car, fuel dal.FuelType) bool {
	return fuel == "" || car.FuelType == fuel
}

func budgetMatch(car dal.Car, lo, hi float64) bool {
	return car.Price >= lo && car.Price <= hi
}

// searchMatch expects term to be lower-cased already.
func searchMatch(car dal.Car, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(car.Name), term) ||
		strings.Contains(strings.ToLower(car.Brand), term)
}

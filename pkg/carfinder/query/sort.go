package query

import "github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"

// Less reports whether a must be ordered strictly before b.
type Less func(a, b dal.Car) bool

func byPriceAsc(a, b dal.Car) bool  { return a.Price < b.Price }
func byPriceDesc(a, b dal.Car) bool { return a.Price > b.Price }

// MergeSort returns a new slice holding cars ordered by less. Equal elements
// keep their relative order.
func MergeSort(cars []dal.Car, less Less) []dal.Car {
	if len(cars) <= 1 {
		return append([]dal.Car(nil), cars...)
	}

	middle := len(cars) / 2
	left := MergeSort(cars[:middle], less)
	right := MergeSort(cars[middle:], less)
	return merge(left, right, less)
}

func merge(left, right []dal.Car, less Less) []dal.Car {
	result := make([]dal.Car, len(left)+len(right))
	for i := 0; len(left) > 0 || len(right) > 0; i++ {
		switch {
		case len(left) > 0 && len(right) > 0:
			// take from the right only when it is strictly smaller
			if less(right[0], left[0]) {
				result[i] = right[0]
				right = right[1:]
			} else {
				result[i] = left[0]
				left = left[1:]
			}
		case len(left) > 0:
			result[i] = left[0]
			left = left[1:]
		default:
			result[i] = right[0]
			right = right[1:]
		}
	}
	return result
}

package query

import "github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"

// DefaultPageSize is the number of cars shown per listing page.
const DefaultPageSize = 10

// Paginate slices the 1-based page of the given size out of cars. A page
// past the end yields an empty window rather than an error.
func Paginate(cars []dal.Car, size, page int) dal.Page {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(cars)
	p := dal.Page{
		Cars:       []dal.Car{},
		Number:     page,
		Size:       size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}

	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	p.Cars = append(p.Cars, cars[start:end]...)
	return p
}

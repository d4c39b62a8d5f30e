package catalog

import "errors"

var ErrNotFound = errors.New("product not found")

// Product is reference data for the point of sale. Prices are whole Rupiah.
type Product struct {
	ID       string
	Name     string
	Price    int64
	Stock    int
	Category string
}

package csvload

import (
	"bytes"
	_ "embed"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
)

//go:embed sample_products.csv
var sampleCSV []byte

// Sample returns the demo catalog bundled with the binary.
func Sample() ([]catalog.Product, error) {
	return Parse(bytes.NewReader(sampleCSV))
}

// Package csvload reads product catalogs exported from spreadsheets or
// other point-of-sale systems.
package csvload

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
)

// Parse reads a catalog CSV. The layout is detected from the header row;
// rows with an empty code or an unreadable price are skipped.
func Parse(r io.Reader) ([]catalog.Product, error) {
	utf8r, err := toUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	comma, err := sniffComma(br)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	profile, cols, headerIdx := detectProfile(rows, comma)
	if profile == nil {
		return nil, fmt.Errorf("no matching catalog format: expected code, name and price columns")
	}

	return parseRows(profile, cols, rows[headerIdx+1:]), nil
}

// LoadFile parses the catalog stored at path.
func LoadFile(path string) ([]catalog.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	products, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return products, nil
}

// sniffComma picks ';' or ',' by counting them on the first line.
func sniffComma(br *bufio.Reader) (rune, error) {
	line, err := br.Peek(br.Size())
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, fmt.Errorf("peek: %w", err)
	}

	if i := strings.IndexByte(string(line), '\n'); i >= 0 {
		line = line[:i]
	}

	if strings.Count(string(line), ";") > strings.Count(string(line), ",") {
		return ';', nil
	}

	return ',', nil
}

type colIndex map[string]int

func detectProfile(rows [][]string, comma rune) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex, len(row))

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].Comma == comma && matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string) []catalog.Product {
	products := make([]catalog.Product, 0, len(rows))

	for _, row := range rows {
		code := cell(row, cols, p.CodeCol)
		if code == "" {
			continue
		}

		price, err := parsePrice(cell(row, cols, p.PriceCol), *p)
		if err != nil {
			continue
		}

		stock, _ := strconv.Atoi(cell(row, cols, p.StockCol))

		products = append(products, catalog.Product{
			ID:       code,
			Name:     cell(row, cols, p.NameCol),
			Price:    price,
			Stock:    stock,
			Category: cell(row, cols, p.CategoryCol),
		})
	}

	return products
}

func cell(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

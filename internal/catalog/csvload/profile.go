package csvload

// Profile describes one catalog export layout. Header matching ignores case.
type Profile struct {
	Name        string
	Comma       rune
	Thousands   string
	Decimal     string
	CodeCol     string
	NameCol     string
	PriceCol    string
	StockCol    string
	CategoryCol string
}

func (p Profile) requiredCols() []string {
	return []string{p.CodeCol, p.NameCol, p.PriceCol}
}

// profiles is tried in order; the first whose required headers are all present wins.
var profiles = []Profile{
	{
		Name:        "indonesia",
		Comma:       ';',
		Thousands:   ".",
		Decimal:     ",",
		CodeCol:     "kode",
		NameCol:     "nama",
		PriceCol:    "harga",
		StockCol:    "stok",
		CategoryCol: "kategori",
	},
	{
		Name:        "english",
		Comma:       ',',
		Thousands:   ",",
		Decimal:     ".",
		CodeCol:     "code",
		NameCol:     "name",
		PriceCol:    "price",
		StockCol:    "stock",
		CategoryCol: "category",
	},
}

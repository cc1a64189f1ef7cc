package entity

import "time"

// Stock markers used in the catalog sheet. Anything else in the stock
// column is either a count or a free-text status shown verbatim.
const (
	StockHave = "have"
	StockNone = "none"
)

// Product is one catalog row. Immutable after fetch.
type Product struct {
	Code       string
	Name       string
	Price      float64
	Stock      string
	RestockEta string
	Remarks    string
}

// InStock reports whether the stock column indicates availability.
func (p Product) InStock() bool {
	switch p.Stock {
	case "", StockNone, "0":
		return false
	case StockHave:
		return true
	}
	// Numeric counts: positive means available. Free text ("on backorder")
	// is shown verbatim but does not count as plainly available.
	n := 0
	for _, r := range p.Stock {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
	}
	return n > 0
}

// ProductCatalog is a full snapshot of the catalog for one request.
type ProductCatalog struct {
	Products  []Product
	UpdatedAt time.Time
	Source    string
}

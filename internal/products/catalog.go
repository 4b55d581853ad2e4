// Package products holds the static catalog of downloadable goods.
package products

import (
	"path/filepath"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	PriceUSD decimal.Decimal `json:"price_usd"`
	FileName string          `json:"-"`
}

// FilePath resolves the product archive inside the configured files dir.
func (p Product) FilePath(dir string) string {
	return filepath.Join(dir, p.FileName)
}

// Catalog is a read-only product lookup. Entries are fixed for the process
// lifetime; nothing is created or removed at runtime.
type Catalog struct {
	byID  map[string]Product
	order []string
}

func NewCatalog(ps ...Product) *Catalog {
	c := &Catalog{byID: make(map[string]Product, len(ps))}
	for _, p := range ps {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) List() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func usd(amount int64) decimal.Decimal { return decimal.NewFromInt(amount) }

// Default returns the catalog the service ships with.
func Default() *Catalog {
	return NewCatalog(
		Product{ID: "1xbet-crash", Name: "1xbet Crash Hack", PriceUSD: usd(100), FileName: "1xbet-crash.zip"},
		Product{ID: "1win-aviator-spribe", Name: "1WIN Aviator Hack", PriceUSD: usd(100), FileName: "1win-aviator-spribe.zip"},
		Product{ID: "luckyjet", Name: "LuckyJet Hack", PriceUSD: usd(100), FileName: "luckyjet.zip"},
		Product{ID: "mostbet-aviator-spribe", Name: "Mostbet Aviator Hack", PriceUSD: usd(100), FileName: "mostbet-aviator-spribe.zip"},
		Product{ID: "apple-of-fortune", Name: "Apple Of Fortune Hack", PriceUSD: usd(100), FileName: "apple-of-fortune.zip"},
		Product{ID: "thimbles", Name: "Thimbles Hack", PriceUSD: usd(100), FileName: "thimbles.zip"},
		Product{ID: "wild-west-gold", Name: "Wild West Gold Hack", PriceUSD: usd(100), FileName: "wild-west-gold.zip"},
		Product{ID: "higher-vs-lower", Name: "Higher VS Lower Hack", PriceUSD: usd(100), FileName: "higher-vs-lower.zip"},
		Product{ID: "dragons-gold", Name: "Dragons Gold Hack", PriceUSD: usd(100), FileName: "dragons-gold.zip"},
	)
}

package dashboard

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// DefaultProductPageSize is the number of product rows per page.
const DefaultProductPageSize = 10

// maxPopularity maps to a full popularity bar.
const maxPopularity = 35.0

// Product is one row of the top products table.
type Product struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Category   string  `json:"category" yaml:"category"`
	Rating     float64 `json:"rating" yaml:"rating"`
	Sales      int     `json:"sales" yaml:"sales"`
	Popularity float64 `json:"popularity" yaml:"popularity"`
}

// ProductColumn describes a table column.
type ProductColumn struct {
	Key      string `json:"key"`
	Header   string `json:"header"`
	Sortable bool   `json:"sortable"`
	Numeric  bool   `json:"numeric"`
}

var productColumns = []ProductColumn{
	{Key: "id", Header: "#"},
	{Key: "name", Header: "Name"},
	{Key: "category", Header: "Category"},
	{Key: "rating", Header: "Rating", Sortable: true, Numeric: true},
	{Key: "sales", Header: "Sales", Sortable: true, Numeric: true},
	{Key: "popularity", Header: "Popularity", Sortable: true, Numeric: true},
}

// ProductColumns lists every products table column in display order.
func ProductColumns() []ProductColumn {
	return append([]ProductColumn(nil), productColumns...)
}

// ProductQuery selects the sorting, filtering, visibility and page of the table.
type ProductQuery struct {
	SortBy   string            `json:"sort_by,omitempty"`
	Desc     bool              `json:"desc,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
	Hidden   []string          `json:"hidden,omitempty"`
	Page     int               `json:"page,omitempty"`
	PageSize int               `json:"page_size,omitempty"`
}

// ProductRow is a product plus its computed badge and bar classes.
type ProductRow struct {
	Product
	RatingPercent     int    `json:"rating_percent"`
	RatingClass       string `json:"rating_class"`
	PopularityPercent int    `json:"popularity_percent"`
	PopularityClass   string `json:"popularity_class"`
}

// ProductPage is the result of applying a ProductQuery.
type ProductPage struct {
	Columns   []ProductColumn `json:"columns"`
	Rows      []ProductRow    `json:"rows"`
	Page      int             `json:"page"`
	PageSize  int             `json:"page_size"`
	PageCount int             `json:"page_count"`
	Total     int             `json:"total"`
	SortBy    string          `json:"sort_by,omitempty"`
	Desc      bool            `json:"desc,omitempty"`
}

// Empty reports whether no rows matched.
func (p ProductPage) Empty() bool { return len(p.Rows) == 0 }

// HasPrev reports whether an earlier page exists.
func (p ProductPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p ProductPage) HasNext() bool { return p.Page < p.PageCount }

// ProductTable holds the product rows shown on the dashboard.
type ProductTable struct {
	products []Product
}

// NewProductTable copies products into a table.
func NewProductTable(products []Product) *ProductTable {
	return &ProductTable{products: append([]Product(nil), products...)}
}

// DefaultProducts returns the sample top products.
func DefaultProducts() []Product {
	return []Product{
		{ID: "01", Name: "iPhone 15 Pro", Category: "SmartPhones", Rating: 4.9, Sales: 1200, Popularity: 35},
		{ID: "02", Name: "MacBook Air M2", Category: "Laptops", Rating: 4.7, Sales: 850, Popularity: 24},
		{ID: "03", Name: "AirPods Pro", Category: "Audio", Rating: 4.6, Sales: 1500, Popularity: 19},
		{ID: "04", Name: "iPad Pro", Category: "Tablets", Rating: 4.5, Sales: 650, Popularity: 15},
	}
}

// Query filters, sorts and paginates the table. Unknown sort or filter
// columns are rejected.
func (t *ProductTable) Query(q ProductQuery) (ProductPage, error) {
	if q.SortBy != "" {
		col, ok := productColumn(q.SortBy)
		if !ok || !col.Sortable {
			return ProductPage{}, fmt.Errorf("dashboard: products cannot sort by %q", q.SortBy)
		}
	}
	for key := range q.Filters {
		if _, ok := productColumn(key); !ok {
			return ProductPage{}, fmt.Errorf("dashboard: products cannot filter by %q", key)
		}
	}

	rows := make([]Product, 0, len(t.products))
	for _, p := range t.products {
		if matchesFilters(p, q.Filters) {
			rows = append(rows, p)
		}
	}
	if q.SortBy != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			cmp := compareProducts(rows[i], rows[j], q.SortBy)
			if q.Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultProductPageSize
	}
	pageCount := (len(rows) + size - 1) / size
	if pageCount == 0 {
		pageCount = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}
	start := (page - 1) * size
	end := min(start+size, len(rows))

	out := ProductPage{
		Columns:   visibleColumns(q.Hidden),
		Rows:      make([]ProductRow, 0, end-start),
		Page:      page,
		PageSize:  size,
		PageCount: pageCount,
		Total:     len(rows),
		SortBy:    q.SortBy,
		Desc:      q.Desc,
	}
	for _, p := range rows[start:end] {
		out.Rows = append(out.Rows, newProductRow(p))
	}
	return out, nil
}

func newProductRow(p Product) ProductRow {
	rating := int(math.Round(p.Rating / 5 * 100))
	popularity := min(100, int(math.Round(p.Popularity/maxPopularity*100)))
	return ProductRow{
		Product:           p,
		RatingPercent:     rating,
		RatingClass:       PercentageLightBGWithBorder(float64(rating)),
		PopularityPercent: popularity,
		PopularityClass:   PercentageBGColor(float64(popularity)),
	}
}

// PercentageBGColor maps a percentage to a solid bar color class, green for
// high values down to red.
func PercentageBGColor(pct float64) string {
	switch {
	case pct > 80:
		return "bg-green-500"
	case pct > 60:
		return "bg-green-400"
	case pct > 40:
		return "bg-amber-400"
	case pct > 20:
		return "bg-orange-400"
	default:
		return "bg-red-400"
	}
}

// PercentageLightBGWithBorder maps a percentage to a light badge class with a
// matching border.
func PercentageLightBGWithBorder(pct float64) string {
	switch {
	case pct > 80:
		return "bg-green-100 text-gray-700 border-green-500 dark:bg-green-900/30 dark:text-gray-200 dark:border-green-600"
	case pct > 60:
		return "bg-green-50 text-gray-700 border-green-400 dark:bg-green-800/30 dark:text-gray-200 dark:border-green-500"
	case pct > 40:
		return "bg-amber-100 text-gray-700 border-amber-400 dark:bg-amber-900/30 dark:text-gray-200 dark:border-amber-500"
	case pct > 20:
		return "bg-orange-100 text-gray-700 border-orange-400 dark:bg-orange-900/30 dark:text-gray-200 dark:border-orange-500"
	default:
		return "bg-red-100 text-gray-700 border-red-400 dark:bg-red-900/30 dark:text-gray-200 dark:border-red-500"
	}
}

func productColumn(key string) (ProductColumn, bool) {
	for _, col := range productColumns {
		if col.Key == key {
			return col, true
		}
	}
	return ProductColumn{}, false
}

func visibleColumns(hidden []string) []ProductColumn {
	out := make([]ProductColumn, 0, len(productColumns))
	for _, col := range productColumns {
		if slices.Contains(hidden, col.Key) {
			continue
		}
		out = append(out, col)
	}
	return out
}

func matchesFilters(p Product, filters map[string]string) bool {
	for key, needle := range filters {
		needle = strings.TrimSpace(needle)
		if needle == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(productField(p, key)), strings.ToLower(needle)) {
			return false
		}
	}
	return true
}

func productField(p Product, key string) string {
	switch key {
	case "id":
		return p.ID
	case "name":
		return p.Name
	case "category":
		return p.Category
	case "rating":
		return strconv.FormatFloat(p.Rating, 'f', -1, 64)
	case "sales":
		return strconv.Itoa(p.Sales)
	case "popularity":
		return strconv.FormatFloat(p.Popularity, 'f', -1, 64)
	}
	return ""
}

func compareProducts(a, b Product, key string) int {
	var x, y float64
	switch key {
	case "rating":
		x, y = a.Rating, b.Rating
	case "sales":
		x, y = float64(a.Sales), float64(b.Sales)
	case "popularity":
		x, y = a.Popularity, b.Popularity
	default:
		return strings.Compare(strings.ToLower(productField(a, key)), strings.ToLower(productField(b, key)))
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

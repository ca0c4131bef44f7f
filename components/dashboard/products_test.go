package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productNames(page ProductPage) []string {
	out := make([]string, len(page.Rows))
	for i, row := range page.Rows {
		out[i] = row.Name
	}
	return out
}

func TestProductTableDefaultQuery(t *testing.T) {
	page, err := NewProductTable(DefaultProducts()).Query(ProductQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{"iPhone 15 Pro", "MacBook Air M2", "AirPods Pro", "iPad Pro"}, productNames(page))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.PageCount)
	assert.Equal(t, DefaultProductPageSize, page.PageSize)
	assert.Len(t, page.Columns, 6)
	assert.False(t, page.HasPrev())
	assert.False(t, page.HasNext())
}

func TestProductTableSortsNumericColumns(t *testing.T) {
	table := NewProductTable(DefaultProducts())

	page, err := table.Query(ProductQuery{SortBy: "sales", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"AirPods Pro", "iPhone 15 Pro", "MacBook Air M2", "iPad Pro"}, productNames(page))

	page, err = table.Query(ProductQuery{SortBy: "rating"})
	require.NoError(t, err)
	assert.Equal(t, []string{"iPad Pro", "AirPods Pro", "MacBook Air M2", "iPhone 15 Pro"}, productNames(page))
}

func TestProductTableFiltersAndHidesColumns(t *testing.T) {
	table := NewProductTable(DefaultProducts())

	page, err := table.Query(ProductQuery{Filters: map[string]string{"name": "PRO", "category": "aud"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"AirPods Pro"}, productNames(page))

	page, err = table.Query(ProductQuery{Filters: map[string]string{"name": "pixel"}, Hidden: []string{"category", "id"}})
	require.NoError(t, err)
	assert.True(t, page.Empty())
	assert.Equal(t, 1, page.PageCount)
	require.Len(t, page.Columns, 4)
	assert.Equal(t, "name", page.Columns[0].Key)
}

func TestProductTablePaginates(t *testing.T) {
	table := NewProductTable(DefaultProducts())

	page, err := table.Query(ProductQuery{PageSize: 3, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"iPad Pro"}, productNames(page))
	assert.Equal(t, 2, page.PageCount)
	assert.True(t, page.HasPrev())
	assert.False(t, page.HasNext())

	page, err = table.Query(ProductQuery{PageSize: 3, Page: 9})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)

	page, err = table.Query(ProductQuery{PageSize: 3, Page: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.True(t, page.HasNext())
}

func TestProductTableRejectsUnknownColumns(t *testing.T) {
	table := NewProductTable(DefaultProducts())
	_, err := table.Query(ProductQuery{SortBy: "name"})
	assert.Error(t, err)
	_, err = table.Query(ProductQuery{SortBy: "price"})
	assert.Error(t, err)
	_, err = table.Query(ProductQuery{Filters: map[string]string{"price": "1"}})
	assert.Error(t, err)
}

func TestProductRowClasses(t *testing.T) {
	page, err := NewProductTable(DefaultProducts()).Query(ProductQuery{})
	require.NoError(t, err)

	iphone := page.Rows[0]
	assert.Equal(t, 98, iphone.RatingPercent)
	assert.Equal(t, 100, iphone.PopularityPercent)
	assert.Equal(t, "bg-green-500", iphone.PopularityClass)
	assert.Contains(t, iphone.RatingClass, "bg-green-100")

	ipad := page.Rows[3]
	assert.Equal(t, 43, ipad.PopularityPercent)
	assert.Equal(t, "bg-amber-400", ipad.PopularityClass)
}

func TestPercentageClasses(t *testing.T) {
	cases := []struct {
		pct   float64
		solid string
	}{
		{pct: 95, solid: "bg-green-500"},
		{pct: 80, solid: "bg-green-400"},
		{pct: 61, solid: "bg-green-400"},
		{pct: 50, solid: "bg-amber-400"},
		{pct: 21, solid: "bg-orange-400"},
		{pct: 20, solid: "bg-red-400"},
		{pct: 0, solid: "bg-red-400"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.solid, PercentageBGColor(tc.pct), "pct %v", tc.pct)
	}
	assert.Contains(t, PercentageLightBGWithBorder(10), "border-red-400")
	assert.Contains(t, PercentageLightBGWithBorder(45), "border-amber-400")
}

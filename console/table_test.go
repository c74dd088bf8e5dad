package console_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/courier-admin/catalog"
	"github.com/jrsteele09/courier-admin/console"
	"github.com/jrsteele09/courier-admin/sorting"
	"github.com/stretchr/testify/require"
)

var testColumns = []console.Column[catalog.Category]{
	{Key: "name", Label: "Name", Sortable: true},
	{Key: "subcategoriesCount", Label: "Subcategories"},
}

func TestNewTableEmpty(t *testing.T) {
	table := console.NewTable[catalog.Category](nil, testColumns, nil, nil)
	require.True(t, table.Empty())
	require.Equal(t, console.EmptyText, table.EmptyText)
	require.Equal(t, 3, table.Span())
	require.NotNil(t, table.Rows)
}

func TestNewTableHeaders(t *testing.T) {
	records := []catalog.Category{
		{ID: "1", Name: "b", SubcategoriesCount: 2},
		{ID: "2", Name: "a"},
	}

	table := console.NewTable(records, testColumns, &sorting.Config{Key: "name", Direction: sorting.Ascending}, url.Values{"q": {"x"}})
	require.Equal(t, "▲", table.Headers[0].Indicator)
	require.Equal(t, "?dir=desc&q=x&sort=name", table.Headers[0].Link)
	require.Empty(t, table.Headers[1].Indicator)
	require.Empty(t, table.Headers[1].Link)

	require.Equal(t, []console.Row{
		{ID: "2", Cells: []console.Cell{{Text: "a"}, {Text: "0"}}},
		{ID: "1", Cells: []console.Cell{{Text: "b"}, {Text: "2"}}},
	}, table.Rows)

	require.Equal(t, "b", records[0].Name)
}

func TestNewTableUnsortedKeepsOrder(t *testing.T) {
	records := []catalog.Category{{ID: "1", Name: "b"}, {ID: "2", Name: "a"}}

	table := console.NewTable(records, testColumns, nil, nil)
	require.Equal(t, "1", table.Rows[0].ID)
	require.Empty(t, table.Headers[0].Indicator)
	require.Equal(t, "?dir=asc&sort=name", table.Headers[0].Link)

	table = console.NewTable(records, testColumns, &sorting.Config{Key: "name", Direction: sorting.Descending}, nil)
	require.Equal(t, "▼", table.Headers[0].Indicator)
	require.Equal(t, "?dir=asc&sort=name", table.Headers[0].Link)
	require.Equal(t, "1", table.Rows[0].ID)
}

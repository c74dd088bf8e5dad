package console

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jrsteele09/courier-admin/sorting"
)

const (
	indicatorAscending  = "▲"
	indicatorDescending = "▼"
	EmptyText           = "No data"
)

// Cell is one rendered table cell. Text is always shown; ImageURL and Badges are optional.
type Cell struct {
	Text     string
	ImageURL string
	Badges   []string
}

// Column describes how one field of T appears in a table.
type Column[T sorting.Fielder] struct {
	Key      string
	Label    string
	Sortable bool
	// Render overrides the default cell, which prints SortField(Key).
	Render func(T) Cell
}

type Header struct {
	Key       string
	Label     string
	Sortable  bool
	Indicator string
	// Link is the query string that applies the next sort for this column.
	Link string
}

type Row struct {
	ID    string
	Cells []Cell
}

// Table is the view model rendered by the dashboard templates.
type Table struct {
	Headers   []Header
	Rows      []Row
	Sort      *sorting.Config
	EmptyText string
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Span is the column count including the actions column.
func (t Table) Span() int {
	return len(t.Headers) + 1
}

// NewTable sorts records by cfg and renders each one through columns.
// extra is merged into every header link so page state such as a search term survives a sort.
func NewTable[T sorting.Fielder](records []T, columns []Column[T], cfg *sorting.Config, extra url.Values) Table {
	t := Table{
		Headers:   make([]Header, 0, len(columns)),
		Rows:      make([]Row, 0, len(records)),
		Sort:      cfg,
		EmptyText: EmptyText,
	}

	for _, col := range columns {
		h := Header{Key: col.Key, Label: col.Label, Sortable: col.Sortable}
		if col.Sortable {
			h.Indicator = indicator(cfg, col.Key)
			h.Link = sortLink(sorting.Next(cfg, col.Key), extra)
		}
		t.Headers = append(t.Headers, h)
	}

	for _, r := range sorting.Sort(records, cfg) {
		row := Row{ID: formatValue(r.SortField("id")), Cells: make([]Cell, 0, len(columns))}
		for _, col := range columns {
			if col.Render != nil {
				row.Cells = append(row.Cells, col.Render(r))
				continue
			}
			row.Cells = append(row.Cells, Cell{Text: formatValue(r.SortField(col.Key))})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func indicator(cfg *sorting.Config, key string) string {
	if cfg == nil || cfg.Key != key {
		return ""
	}
	if cfg.Direction == sorting.Descending {
		return indicatorDescending
	}
	return indicatorAscending
}

func sortLink(next sorting.Config, extra url.Values) string {
	q := url.Values{}
	for k, vs := range extra {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	q.Set("sort", next.Key)
	q.Set("dir", string(next.Direction))
	return "?" + q.Encode()
}

func formatValue(v any, ok bool) string {
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case time.Time:
		return val.Format(time.DateTime)
	}
	return fmt.Sprint(v)
}

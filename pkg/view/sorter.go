package view

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/goliatone/go-plantilla/pkg/model"
)

// Column indexes of the sortable persona table.
const (
	ColumnName = 1
	ColumnTeam = 4
)

// ParseColumn accepts "nombre", "equipo" or a numeric column index below
// the persona field count.
func ParseColumn(raw string) (int, bool) {
	switch raw = strings.ToLower(strings.TrimSpace(raw)); raw {
	case "nombre":
		return ColumnName, true
	case "equipo":
		return ColumnTeam, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n >= len(model.Fields) {
		return 0, false
	}
	return n, true
}

// ErrNoTable is returned when the page holds no table to sort.
var ErrNoTable = errors.New("view: table not found")

// SortOrder returns the permutation that sorts rows by the cell at column.
// Comparison is byte-wise and case sensitive; a row without the cell sorts
// as the empty string; equal keys keep their original order.
func SortOrder(rows [][]string, column int) []int {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	key := func(row []string) string {
		if column < 0 || column >= len(row) {
			return ""
		}
		return row[column]
	}
	sort.SliceStable(order, func(a, b int) bool {
		return key(rows[order[a]]) < key(rows[order[b]])
	})
	return order
}

// SortByNameColumn sorts the persona table by name.
func (v *View) SortByNameColumn() Outcome {
	return v.SortByColumn(ColumnName)
}

// SortByTeamColumn sorts the persona table by team.
func (v *View) SortByTeamColumn() Outcome {
	return v.SortByColumn(ColumnTeam)
}

// SortByColumn reorders the body rows of the persona table in place. The
// first row is the header and stays put. Zero or one body rows is a no-op.
func (v *View) SortByColumn(column int) Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()

	moved, err := sortTable(v.page.Find("table"), v.tableID, column)
	if err != nil {
		v.logger.Warn("view: sort skipped", zap.Int("column", column), zap.Error(err))
		return degraded(ReasonNoTable, err)
	}
	v.logger.Debug("view: sorted table", zap.Int("column", column), zap.Int("rows", moved))
	return succeeded()
}

// sortTable sorts the rows of the table with id among tables and returns
// the number of body rows.
func sortTable(tables *goquery.Selection, id string, column int) (int, error) {
	table := tables.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == id
	}).First()
	if table.Length() == 0 {
		return 0, fmt.Errorf("%w: #%s", ErrNoTable, id)
	}

	rows := table.Find("tr")
	if rows.Length() <= 2 {
		return max(rows.Length()-1, 0), nil
	}
	body := rows.Slice(1, rows.Length())

	cells := make([][]string, body.Length())
	body.Each(func(i int, row *goquery.Selection) {
		row.ChildrenFiltered("td").Each(func(_ int, cell *goquery.Selection) {
			cells[i] = append(cells[i], cell.Text())
		})
	})

	order := SortOrder(cells, column)
	for _, idx := range order {
		row := body.Eq(idx)
		row.Parent().AppendSelection(row)
	}
	return body.Length(), nil
}

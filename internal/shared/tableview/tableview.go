// Package tableview adalah implementasi tunggal pipeline
// search -> filter -> sort -> paginate untuk semua list endpoint.
// Kolom dideskripsikan lewat Column descriptor dan handler tinggal
// memanggil Apply.
package tableview

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	DirectionNone Direction = ""
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// PageSizes adalah pilihan page size yang valid; nilai lain jatuh ke default.
var PageSizes = []int{10, 20, 50, 100}

const DefaultPageSize = 10

// Column mendeskripsikan satu kolom tabel: id yang dipakai di query param,
// accessor nilai, dan flag apakah kolom ikut search / filter.
type Column[T any] struct {
	ID         string
	Value      func(T) any
	Searchable bool
	Filterable bool
}

type Query struct {
	Search   string
	Filters  map[string][]string
	SortBy   string
	SortDir  Direction
	Page     int
	PageSize int
}

type Page[T any] struct {
	Rows       []T
	Total      int
	TotalPages int
	Page       int
	PageSize   int
	HasPrev    bool
	HasNext    bool
}

// QueryFromValues membaca query params standar (q, sort_by, sort_dir, page,
// page_size) plus filter params yang disebutkan pemanggil. Nilai filter boleh
// diulang ("stage=New&stage=Won") atau dipisah koma ("stage=New,Won").
func QueryFromValues(v url.Values, filterKeys ...string) Query {
	q := Query{
		Search:  strings.TrimSpace(v.Get("q")),
		SortBy:  strings.TrimSpace(v.Get("sort_by")),
		SortDir: ParseDirection(v.Get("sort_dir")),
		Filters: map[string][]string{},
	}
	q.Page, _ = strconv.Atoi(v.Get("page"))
	q.PageSize, _ = strconv.Atoi(v.Get("page_size"))

	for _, key := range filterKeys {
		var out []string
		for _, raw := range v[key] {
			for _, part := range strings.Split(raw, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
		if len(out) > 0 {
			q.Filters[key] = out
		}
	}

	return q
}

func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc":
		return DirectionAsc
	case "desc":
		return DirectionDesc
	default:
		return DirectionNone
	}
}

// NextSort meng-cycle state sort sebuah kolom:
// unsorted -> asc -> desc -> unsorted.
func NextSort(current Direction) Direction {
	switch current {
	case DirectionNone:
		return DirectionAsc
	case DirectionAsc:
		return DirectionDesc
	default:
		return DirectionNone
	}
}

// Apply menjalankan seluruh pipeline. Fungsi ini pure dan total:
// input tidak dimutasi, field nil dinormalisasi ke ""/0, dan query
// yang tidak valid (kolom tak dikenal, page di luar range) tidak
// pernah menghasilkan error — hanya di-clamp atau diabaikan.
func Apply[T any](rows []T, cols []Column[T], q Query) Page[T] {
	filtered := filterRows(rows, cols, q)
	sortRows(filtered, cols, q)
	return paginate(filtered, q)
}

// ApplyAll sama seperti Apply tapi tanpa pagination. Dipakai export
// supaya file yang diunduh memuat seluruh hasil view, bukan satu halaman.
func ApplyAll[T any](rows []T, cols []Column[T], q Query) []T {
	filtered := filterRows(rows, cols, q)
	sortRows(filtered, cols, q)
	return filtered
}

func filterRows[T any](rows []T, cols []Column[T], q Query) []T {
	out := make([]T, 0, len(rows))

	term := strings.ToLower(q.Search)
	for _, row := range rows {
		if term != "" && !matchesSearch(row, cols, term) {
			continue
		}
		if !matchesFilters(row, cols, q.Filters) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// matchesSearch: substring case-insensitive, cukup satu kolom searchable yang cocok.
func matchesSearch[T any](row T, cols []Column[T], term string) bool {
	for _, col := range cols {
		if !col.Searchable {
			continue
		}
		if strings.Contains(strings.ToLower(valueString(col.Value(row))), term) {
			return true
		}
	}
	return false
}

// matchesFilters: nilai-nilai dalam satu field di-OR, antar field di-AND.
func matchesFilters[T any](row T, cols []Column[T], filters map[string][]string) bool {
	for field, wanted := range filters {
		col := findColumn(cols, field)
		if col == nil || !col.Filterable {
			continue
		}
		got := valueString(col.Value(row))
		anyMatch := false
		for _, w := range wanted {
			if got == w {
				anyMatch = true
				break
			}
		}
		if !anyMatch {
			return false
		}
	}
	return true
}

func sortRows[T any](rows []T, cols []Column[T], q Query) {
	if q.SortDir == DirectionNone || q.SortBy == "" {
		return
	}
	col := findColumn(cols, q.SortBy)
	if col == nil {
		return
	}

	coll := collate.New(language.English, collate.IgnoreCase)

	// SliceStable agar clearing sort mengembalikan urutan sumber
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareValues(col.Value(rows[i]), col.Value(rows[j]), coll)
		if q.SortDir == DirectionDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func paginate[T any](rows []T, q Query) Page[T] {
	pageSize := DefaultPageSize
	for _, s := range PageSizes {
		if q.PageSize == s {
			pageSize = s
			break
		}
	}

	total := len(rows)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Rows:       rows[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

func findColumn[T any](cols []Column[T], id string) *Column[T] {
	for i := range cols {
		if cols[i].ID == id {
			return &cols[i]
		}
	}
	return nil
}

// compareValues: numerik (angka/tanggal-sebagai-timestamp) dibandingkan
// sebagai float, sisanya sebagai string dengan collation case-insensitive.
// nil dinormalisasi ke 0 / "" sehingga selalu deterministik.
func compareValues(a, b any, coll *collate.Collator) int {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if (aNum || a == nil) && (bNum || b == nil) && (aNum || bNum) {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return coll.CompareString(valueString(a), valueString(b))
}

func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case time.Time:
		return t.Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case *float64:
		if t == nil {
			return 0, false
		}
		return *t, true
	case time.Time:
		return float64(t.UnixMilli()), true
	case *time.Time:
		if t == nil {
			return 0, false
		}
		return float64(t.UnixMilli()), true
	default:
		return 0, false
	}
}

package models

import (
	"math"
	"slices"
	"strings"

	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
)

// Pagination carries the page window and sort key of the raw record tables.
// Sort is validated against SortSafelist; a leading hyphen means descending.
type Pagination struct {
	Page         int
	PageSize     int
	Sort         string
	SortSafelist []string
}

func NewPagination(page, pageSize int, sort string, sortSafelist ...string) Pagination {
	if sort == "" && len(sortSafelist) > 0 {
		sort = sortSafelist[0]
	}
	return Pagination{
		Page:         page,
		PageSize:     pageSize,
		Sort:         sort,
		SortSafelist: sortSafelist,
	}
}

func (p Pagination) Validate(v *validator.Validator) {
	v.Check(p.Page > 0, "page", "must be greater than zero")
	v.Check(p.Page <= 10_000_000, "page", "must be a maximum of 10 million")
	v.Check(p.PageSize > 0, "page_size", "must be greater than zero")
	v.Check(p.PageSize <= 500, "page_size", "must be a maximum of 500")
	v.Check(len(p.SortSafelist) > 0, "sort", "no sortable columns")
	v.Check(validator.PermittedValue(p.Sort, p.SortSafelist...), "sort", "invalid sort value")
}

// SortColumn strips the direction prefix from a permitted sort value.
// Callers must validate first.
func (p Pagination) SortColumn() string {
	if slices.Contains(p.SortSafelist, p.Sort) {
		return strings.TrimPrefix(p.Sort, "-")
	}
	return strings.TrimPrefix(p.SortSafelist[0], "-")
}

func (p Pagination) Descending() bool {
	return strings.HasPrefix(p.Sort, "-")
}

func (p Pagination) Limit() int {
	return p.PageSize
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Window returns the [start, end) bounds of the page within n items.
func (p Pagination) Window(n int) (int, int) {
	start := min(p.Offset(), n)
	end := min(start+p.Limit(), n)
	return start, end
}

type Metadata struct {
	CurrentPage  int `json:"current_page"`
	PageSize     int `json:"page_size"`
	FirstPage    int `json:"first_page"`
	LastPage     int `json:"last_page"`
	TotalRecords int `json:"total_records"`
}

// CalculateMetadata derives page bounds; the last page is ceil(total/pageSize).
func CalculateMetadata(totalRecords, page, pageSize int) Metadata {
	if totalRecords == 0 {
		return Metadata{
			CurrentPage: page,
			PageSize:    pageSize,
		}
	}
	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     int(math.Ceil(float64(totalRecords) / float64(pageSize))),
		TotalRecords: totalRecords,
	}
}

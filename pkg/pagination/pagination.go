package pagination

import (
	"net/url"
	"strconv"

	"github.com/fieldline/triage/pkg/query"
)

// PageRequest represents a client request for a page of data with optional
// search and sorting.
type PageRequest struct {
	Page   int               `json:"page"`
	Size   int               `json:"size"`
	Search *string           `json:"search,omitempty"`
	Sort   []query.SortField `json:"sort,omitempty"`
}

// Normalize clamps the request to valid pagination values based on the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Size < 1 {
		r.Size = cfg.DefaultSize
	}
	if r.Size > cfg.MaxSize {
		r.Size = cfg.MaxSize
	}
}

// Offset returns the number of records to skip for the current page.
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.Size
}

// FromQuery parses pagination parameters from URL query values.
// Supported parameters: page, page_size (or size), search, sort.
func FromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))

	sizeParam := values.Get("page_size")
	if sizeParam == "" {
		sizeParam = values.Get("size")
	}
	size, _ := strconv.Atoi(sizeParam)

	var search *string
	if s := values.Get("search"); s != "" {
		search = &s
	}

	req := PageRequest{
		Page:   page,
		Size:   size,
		Search: search,
		Sort:   query.ParseSortFields(values.Get("sort")),
	}
	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	HasNext bool `json:"has_next"`
}

// NewPageResult creates a PageResult, computing whether a following page exists.
func NewPageResult[T any](data []T, total, page, size int) PageResult[T] {
	if data == nil {
		data = []T{}
	}
	return PageResult[T]{
		Data:    data,
		Total:   total,
		Page:    page,
		Size:    size,
		HasNext: page*size < total,
	}
}

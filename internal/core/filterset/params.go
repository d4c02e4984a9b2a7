package filterset

import (
	"net/url"
	"strconv"
)

// Query carries the non-filter parts of a contact list query.
type Query struct {
	Page       int
	PageSize   int
	Search     string
	StatusType string
	Order      string
}

// BuildParams renders a query and its effective filters into the wire
// parameters of the list endpoint: page, page_size, search, status_type,
// order, filter_<column> (repeated for multi-select) and
// filter_<column>_from / filter_<column>_to for date ranges.
//
// status_type is omitted whenever an explicit status filter is active; the
// status filter is the narrower constraint.
func BuildParams(q Query, effective map[string]Value) url.Values {
	params := url.Values{}

	page := q.Page
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))
	if q.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}

	statusFilterActive := false
	if v, ok := effective[ColumnStatus]; ok && v.IsSet() {
		statusFilterActive = true
	}
	if q.StatusType != "" && !statusFilterActive {
		params.Set("status_type", q.StatusType)
	}

	for column, v := range effective {
		if !v.IsSet() {
			continue
		}
		key := "filter_" + column
		switch v.Kind {
		case KindMulti:
			for _, item := range v.Values {
				params.Add(key, item)
			}
		case KindDateRange:
			if v.From != "" {
				params.Set(key+"_from", v.From)
			}
			if v.To != "" {
				params.Set(key+"_to", v.To)
			}
		default:
			params.Set(key, v.Text)
		}
	}

	return params
}

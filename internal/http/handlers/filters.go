package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"donorhub/internal/domain"
	"donorhub/internal/report"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// reportFilters reads start_date, end_date, program and status. The
// camelCase names used by the JSON body are accepted too.
func reportFilters(q url.Values) report.Filters {
	first := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(q.Get(k)); v != "" {
				return v
			}
		}
		return ""
	}
	return report.Filters{
		StartDate: first("start_date", "startDate"),
		EndDate:   first("end_date", "endDate"),
		Program:   first("program"),
		Status:    first("status"),
	}
}

// listFilter builds a repository filter from list query parameters.
func listFilter(r *http.Request) (domain.RecordFilter, error) {
	q := r.URL.Query()
	filter, err := reportFilters(q).RecordFilter()
	if err != nil {
		return filter, err
	}
	filter.Search = strings.TrimSpace(q.Get("q"))
	filter.Limit = defaultListLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return filter, domain.ErrInvalidInput
		}
		filter.Limit = min(n, maxListLimit)
	}
	return filter, nil
}

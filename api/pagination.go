package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// pageSize is fixed; the frontend pages by number only.
const pageSize = 10

type page struct {
	number int
	offset int
	limit  int
}

// pageFromRequest reads the ?page= query parameter, defaulting to the first
// page. Out-of-range values clamp to 1.
func pageFromRequest(r *http.Request) page {
	number := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			number = n
		}
	}
	return page{
		number: number,
		offset: (number - 1) * pageSize,
		limit:  pageSize,
	}
}

// PaginatedResponse is the list envelope: total count, absolute-path links to
// the adjacent pages, and the page of results.
type PaginatedResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

func pageLink(r *http.Request, number int) *string {
	query := r.URL.Query()
	query.Set("page", strconv.Itoa(number))
	link := fmt.Sprintf("%s?%s", r.URL.Path, query.Encode())
	return &link
}

func newPaginatedResponse(r *http.Request, pg page, count int64, results any) PaginatedResponse {
	response := PaginatedResponse{Count: count, Results: results}
	if int64(pg.offset+pg.limit) < count {
		response.Next = pageLink(r, pg.number+1)
	}
	if pg.number > 1 {
		response.Previous = pageLink(r, pg.number-1)
	}
	return response
}

// Package listutil parses catalog list parameters from request queries and
// paginates the resulting slices.
package listutil

import (
	"net/url"
	"strconv"
	"time"

	"sportlink/internal/domain/event"
)

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int // rows per page
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage)
}

// DefaultPerPage is the default number of events per page.
const DefaultPerPage = 20

// PerPageOptions are the allowed events-per-page values.
var PerPageOptions = []int{10, 20, 50, 100}

// formTimeLayout matches the value format of datetime-local inputs.
const formTimeLayout = "2006-01-02T15:04"

// ParsePageParams extracts page and per_page from URL query values.
// PRE: none
// POST: returns valid PageParams with defaults applied
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !isValidPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// ParseFilterCriteria extracts catalog filters from URL query values.
// Unknown sports and out-of-range skill codes are dropped rather than
// failing the page; an empty criteria means "show everything".
// PRE: none
// POST: returned criteria contains only known sports and skill codes
func ParseFilterCriteria(q url.Values) event.FilterCriteria {
	var c event.FilterCriteria

	for _, s := range q["sport"] {
		if event.IsKnownSport(s) {
			c.Sports = append(c.Sports, event.SportByCode(event.SportCode(s)))
		}
	}
	for _, raw := range q["skill"] {
		if code, err := strconv.Atoi(raw); err == nil {
			if _, ok := event.SkillLevels[code]; ok {
				c.SkillLevels = append(c.SkillLevels, code)
			}
		}
	}
	if raw := q.Get("free_slots"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			c.MinFreeSlots = n
		}
	}
	if raw := q.Get("from"); raw != "" {
		if t, err := time.Parse(formTimeLayout, raw); err == nil {
			c.StartAfter = t
		}
	}
	if raw := q.Get("until"); raw != "" {
		if t, err := time.Parse(formTimeLayout, raw); err == nil {
			c.EndBefore = t
		}
	}
	return c
}

// Paginate slices events down to the requested page.
// PRE: params parsed by ParsePageParams
// POST: the returned page never exceeds PerPage entries
func Paginate(events []event.Event, params PageParams) ([]event.Event, PageInfo) {
	info := NewPageInfo(params.Page, params.PerPage, len(events))
	start := info.Offset()
	if start >= len(events) {
		return nil, info
	}
	end := start + info.PerPage
	if end > len(events) {
		end = len(events)
	}
	return events[start:end], info
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0, perPage > 0, page >= 1
// POST: returns PageInfo with TotalPages computed; Page clamped to valid range
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the index of the first row on the current page.
// PRE: PageInfo is valid
// POST: Returns (Page-1) * PerPage
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageNumbers returns the page numbers to display in pagination controls.
// Shows at most 5 pages centered around the current page.
// PRE: PageInfo is valid
// POST: Returns slice of at most 5 page numbers centered on current page
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := p.Page - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - maxButtons + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination returns true if pagination controls should be displayed.
// PRE: PageInfo is valid
// POST: Returns true if Total > PerPage
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}

func isValidPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}

package event

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// FilterCriteria carries the optional server-side filter keys for the
// catalog. A zero value means "no filtering" and the full catalog is used.
type FilterCriteria struct {
	Sports       []string
	SkillLevels  []int
	StartAfter   time.Time
	EndBefore    time.Time
	MinFreeSlots int
}

// HasAny reports whether at least one filter key is set. Only then is the
// server-side filter endpoint worth calling.
func (c FilterCriteria) HasAny() bool {
	return len(c.Sports) > 0 || len(c.SkillLevels) > 0 ||
		!c.StartAfter.IsZero() || !c.EndBefore.IsZero() || c.MinFreeSlots > 0
}

// Query encodes the criteria as the GET /event/filter query string.
// Only set keys are emitted.
func (c FilterCriteria) Query() url.Values {
	q := url.Values{}
	if len(c.Sports) > 0 {
		q.Set("sports", strings.Join(c.Sports, ","))
	}
	if len(c.SkillLevels) > 0 {
		levels := make([]string, len(c.SkillLevels))
		for i, l := range c.SkillLevels {
			levels[i] = strconv.Itoa(l)
		}
		q.Set("skillLevels", strings.Join(levels, ","))
	}
	if !c.StartAfter.IsZero() {
		q.Set("startTimeAfter", c.StartAfter.UTC().Format(time.RFC3339))
	}
	if !c.EndBefore.IsZero() {
		q.Set("endTimeBefore", c.EndBefore.UTC().Format(time.RFC3339))
	}
	if c.MinFreeSlots > 0 {
		q.Set("freeSlots", strconv.Itoa(c.MinFreeSlots))
	}
	return q
}

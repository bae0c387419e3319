package api

import (
	"context"
	"net/http"
	"net/url"
)

// SubmitRatings sends the batched participant ratings for an event. The
// payload maps usernames to star values in [1,5]; the caller guarantees
// full coverage of the rateable set before this is reached.
// POST /ratings/event/{id} {username:rating,...} -> text
func (c *Client) SubmitRatings(ctx context.Context, token, eventID string, ratings map[string]int) error {
	_, err := c.text(ctx, http.MethodPost, "/ratings/event/"+url.PathEscape(eventID), token, nil, ratings)
	return err
}

package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"sportlink/internal/adapters/http/middleware"
	"sportlink/internal/application/orchestrators"
	"sportlink/internal/application/projections"
	"sportlink/internal/domain/rating"
)

// handleRatingForm handles GET /events/{id}/rate. Only the organizer of a
// finished, unrated event gets the sheet; everyone else is turned away.
func handleRatingForm(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())
	eventID := r.PathValue("id")

	result, err := projections.QueryGetRateableParticipants(r.Context(), projections.GetRateableParticipantsQuery{
		Token:    viewer.Token,
		Username: viewer.Username,
		EventID:  eventID,
	}, projections.GetRateableParticipantsDeps{Backend: backend})
	if err != nil {
		if errors.Is(err, projections.ErrNotRateable) {
			renderError(w, r, http.StatusForbidden, "RateNotAllowed")
			return
		}
		handleBackendError(w, r, err)
		return
	}

	renderTemplate(w, r, "rate_participants.html", map[string]any{
		"Event": result.Event,
		"Sheet": result.Sheet,
	})
}

// handleRatingSubmit handles POST /events/{id}/rate. The form carries one
// rating_<username> field per participant; the whole sheet goes out in one
// request or not at all. Submission is two-step: the first POST renders a
// review page, the confirmed POST performs the write.
func handleRatingSubmit(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())
	eventID := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	// Rebuild the sheet from current backend state so stale forms cannot
	// rate users who already left the participant list.
	prep, err := projections.QueryGetRateableParticipants(r.Context(), projections.GetRateableParticipantsQuery{
		Token:    viewer.Token,
		Username: viewer.Username,
		EventID:  eventID,
	}, projections.GetRateableParticipantsDeps{Backend: backend})
	if err != nil {
		if errors.Is(err, projections.ErrNotRateable) {
			renderError(w, r, http.StatusForbidden, "RateNotAllowed")
			return
		}
		handleBackendError(w, r, err)
		return
	}

	sheet := prep.Sheet
	for _, p := range sheet.Participants() {
		value, convErr := strconv.Atoi(r.FormValue("rating_" + p.Username))
		if convErr != nil {
			continue
		}
		if setErr := sheet.SetRating(p.Username, value); setErr != nil {
			renderRatingFormWithError(w, r, prep, "RateInvalidValue")
			return
		}
	}

	// First submission shows the filled sheet read-only for review; only
	// the confirmed re-submission reaches the backend.
	if r.FormValue("confirmed") != "1" {
		if !sheet.AllRated() {
			renderRatingFormWithError(w, r, prep, "RateMissing")
			return
		}
		renderTemplate(w, r, "confirm_ratings.html", map[string]any{
			"Event": prep.Event,
			"Sheet": sheet,
		})
		return
	}

	err = orchestrators.ExecuteSubmitRatings(r.Context(), orchestrators.SubmitRatingsInput{
		Token:    viewer.Token,
		Username: viewer.Username,
		EventID:  eventID,
		Sheet:    sheet,
	}, orchestrators.SubmitRatingsDeps{Backend: backend})
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrIncomplete):
			renderRatingFormWithError(w, r, prep, "RateMissing")
		case errors.Is(err, orchestrators.ErrNotOrganizer):
			renderError(w, r, http.StatusForbidden, "RateNotAllowed")
		default:
			handleBackendError(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/events/"+url.PathEscape(eventID)+"?notice=RateSubmitted", http.StatusSeeOther)
}

func renderRatingFormWithError(w http.ResponseWriter, r *http.Request, prep projections.GetRateableParticipantsResult, key string) {
	renderTemplate(w, r, "rate_participants.html", map[string]any{
		"Event":    prep.Event,
		"Sheet":    prep.Sheet,
		"ErrorKey": key,
	})
}

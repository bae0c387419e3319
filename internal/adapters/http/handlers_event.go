package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sportlink/internal/adapters/http/middleware"
	"sportlink/internal/application/orchestrators"
	"sportlink/internal/application/projections"
	"sportlink/internal/domain/event"
)

// formTimeLayout matches the value format of datetime-local inputs.
const formTimeLayout = "2006-01-02T15:04"

// handleEventDetails handles GET /events/{id}
func handleEventDetails(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())
	eventID := r.PathValue("id")

	result, err := projections.QueryGetEventDetails(r.Context(), projections.GetEventDetailsQuery{
		Token:    viewer.Token,
		Username: viewer.Username,
		EventID:  eventID,
		Now:      timeNow(),
	}, projections.GetEventDetailsDeps{Backend: backend})
	if err != nil {
		handleBackendError(w, r, err)
		return
	}

	renderTemplate(w, r, "event_details.html", map[string]any{
		"Event":        result.Event,
		"Participants": result.Participants,
		"ViewerJoined": result.ViewerJoined,
		"CanJoin":      result.CanJoin,
		"CanLeave":     result.CanLeave,
		"CanDelete":    result.CanDelete,
		"CanRate":      result.CanRate,
		"NoticeKey":    noticeKey(r),
		"ErrorKey":     errorKey(r),
	})
}

// errorKey returns the flash-style error translation key, if any.
func errorKey(r *http.Request) string {
	key := r.URL.Query().Get("error")
	switch key {
	case "JoinEventFull", "JoinEventClosed", "JoinOwnEvent", "JoinAlready":
		return key
	}
	return ""
}

// noticeKey returns the flash-style notice translation key, if any.
// Only known keys pass through; anything else renders nothing.
func noticeKey(r *http.Request) string {
	key := r.URL.Query().Get("notice")
	switch key {
	case "EventJoined", "EventLeft", "EventLeftRemoved", "CreateEventCreated", "EventDeleted", "RateSubmitted":
		return key
	}
	return ""
}

// handleJoinEvent handles POST /events/{id}/join
func handleJoinEvent(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())
	eventID := r.PathValue("id")

	_, err := orchestrators.ExecuteJoinEvent(r.Context(), orchestrators.JoinEventInput{
		Token:    viewer.Token,
		Username: viewer.Username,
		EventID:  eventID,
	}, orchestrators.JoinEventDeps{Backend: backend, Now: timeNow})
	if err != nil {
		key := joinErrorKey(err)
		if key == "" {
			handleBackendError(w, r, err)
			return
		}
		redirectWithError(w, r, "/events/"+url.PathEscape(eventID), key)
		return
	}

	http.Redirect(w, r, "/events/"+url.PathEscape(eventID)+"?notice=EventJoined", http.StatusSeeOther)
}

func joinErrorKey(err error) string {
	switch {
	case errors.Is(err, event.ErrEventFull):
		return "JoinEventFull"
	case errors.Is(err, event.ErrEventNotJoinable):
		return "JoinEventClosed"
	case errors.Is(err, event.ErrOrganizerCannotJoin):
		return "JoinOwnEvent"
	case errors.Is(err, orchestrators.ErrAlreadyJoined):
		return "JoinAlready"
	default:
		return ""
	}
}

// redirectWithError sends the viewer back to a page with an error notice.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, key string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(key), http.StatusSeeOther)
}

// handleLeaveEvent handles POST /events/{id}/leave
func handleLeaveEvent(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())
	eventID := r.PathValue("id")

	result, err := orchestrators.ExecuteLeaveEvent(r.Context(), orchestrators.LeaveEventInput{
		Token:    viewer.Token,
		Username: viewer.Username,
		EventID:  eventID,
	}, orchestrators.LeaveEventDeps{Backend: backend})
	if err != nil {
		handleBackendError(w, r, err)
		return
	}

	if result.EventRemoved {
		http.Redirect(w, r, "/events?notice=EventLeftRemoved", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/events/"+url.PathEscape(eventID)+"?notice=EventLeft", http.StatusSeeOther)
}

// handleCreateEventForm handles GET /events/new
func handleCreateEventForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "create_event.html", map[string]any{
		"Form": map[string]string{},
	})
}

// handleCreateEvent handles POST /events
func handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	skill, _ := strconv.Atoi(r.FormValue("SkillLevel"))
	capacity, _ := strconv.Atoi(r.FormValue("Capacity"))
	latitude, _ := strconv.ParseFloat(r.FormValue("Latitude"), 64)
	longitude, _ := strconv.ParseFloat(r.FormValue("Longitude"), 64)

	input := orchestrators.CreateEventInput{
		Token:       viewer.Token,
		Username:    viewer.Username,
		Title:       r.FormValue("Title"),
		Sport:       r.FormValue("Sport"),
		SkillLevel:  skill,
		Address:     r.FormValue("Address"),
		Latitude:    latitude,
		Longitude:   longitude,
		StartTime:   r.FormValue("StartTime"),
		EndTime:     r.FormValue("EndTime"),
		Capacity:    capacity,
		Description: r.FormValue("Description"),
	}

	times, parseErr := parseEventTimes(input.StartTime, input.EndTime)
	if parseErr != nil {
		renderCreateForm(w, r, input, "CreateEventBadTimes")
		return
	}

	_, err := orchestrators.ExecuteCreateEvent(r.Context(), input, times, orchestrators.CreateEventDeps{
		Backend: backend,
		Now:     timeNow,
	})
	if err != nil {
		if msg := createValidationKey(err); msg != "" {
			renderCreateForm(w, r, input, msg)
			return
		}
		handleBackendError(w, r, err)
		return
	}

	http.Redirect(w, r, "/events?notice=CreateEventCreated", http.StatusSeeOther)
}

// parseEventTimes parses the datetime-local form values in server-local time.
func parseEventTimes(start, end string) (orchestrators.EventTimes, error) {
	st, err := time.ParseInLocation(formTimeLayout, start, time.Local)
	if err != nil {
		return orchestrators.EventTimes{}, err
	}
	et, err := time.ParseInLocation(formTimeLayout, end, time.Local)
	if err != nil {
		return orchestrators.EventTimes{}, err
	}
	return orchestrators.EventTimes{Start: st, End: et}, nil
}

func renderCreateForm(w http.ResponseWriter, r *http.Request, input orchestrators.CreateEventInput, errorKey string) {
	renderTemplate(w, r, "create_event.html", map[string]any{
		"ErrorKey": errorKey,
		"Form": map[string]string{
			"Title":       input.Title,
			"Sport":       input.Sport,
			"SkillLevel":  strconv.Itoa(input.SkillLevel),
			"Address":     input.Address,
			"Latitude":    strconv.FormatFloat(input.Latitude, 'f', -1, 64),
			"Longitude":   strconv.FormatFloat(input.Longitude, 'f', -1, 64),
			"StartTime":   input.StartTime,
			"EndTime":     input.EndTime,
			"Capacity":    strconv.Itoa(input.Capacity),
			"Description": input.Description,
		},
	})
}

func createValidationKey(err error) string {
	switch {
	case errors.Is(err, event.ErrEmptyTitle):
		return "CreateEventEmptyTitle"
	case errors.Is(err, event.ErrTitleTooLong):
		return "CreateEventTitleTooLong"
	case errors.Is(err, event.ErrEmptyAddress):
		return "CreateEventEmptyAddress"
	case errors.Is(err, event.ErrUnknownSport):
		return "CreateEventUnknownSport"
	case errors.Is(err, event.ErrInvalidSkill):
		return "CreateEventInvalidSkill"
	case errors.Is(err, event.ErrInvalidCapacity):
		return "CreateEventInvalidCapacity"
	case errors.Is(err, event.ErrStartInPast):
		return "CreateEventStartInPast"
	case errors.Is(err, event.ErrEndBeforeStart):
		return "CreateEventEndBeforeStart"
	default:
		return ""
	}
}

// handleDeleteEventConfirm handles GET /events/{id}/delete. Deleting is
// irreversible, so the detail page leads here and the backend call only
// happens after the explicit confirmation POST.
func handleDeleteEventConfirm(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())
	eventID := r.PathValue("id")

	result, err := projections.QueryGetEventDetails(r.Context(), projections.GetEventDetailsQuery{
		Token:    viewer.Token,
		Username: viewer.Username,
		EventID:  eventID,
		Now:      timeNow(),
	}, projections.GetEventDetailsDeps{Backend: backend})
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	if !result.CanDelete {
		renderError(w, r, http.StatusForbidden, "ErrorNotAllowed")
		return
	}

	renderTemplate(w, r, "confirm_delete.html", map[string]any{
		"Event": result.Event,
	})
}

// handleDeleteEvent handles POST /events/{id}/delete
func handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())
	eventID := r.PathValue("id")

	err := orchestrators.ExecuteDeleteEvent(r.Context(), orchestrators.DeleteEventInput{
		Token:    viewer.Token,
		Username: viewer.Username,
		EventID:  eventID,
	}, orchestrators.DeleteEventDeps{Backend: backend})
	if err != nil {
		if errors.Is(err, orchestrators.ErrNotOrganizer) {
			renderError(w, r, http.StatusForbidden, "ErrorNotAllowed")
			return
		}
		handleBackendError(w, r, err)
		return
	}

	http.Redirect(w, r, "/events?notice=EventDeleted", http.StatusSeeOther)
}

// File: internal/handlers/room_handlers.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/roomhub/go-roomhub/internal/domain"
	"github.com/roomhub/go-roomhub/internal/forms"
	"github.com/roomhub/go-roomhub/internal/middleware"
	"github.com/roomhub/go-roomhub/internal/services"
	"github.com/roomhub/go-roomhub/internal/services/user_services"
)

// RoomHandler serves the listing pages, the room page and all room
// mutations.
type RoomHandler struct {
	feed     *services.FeedService
	rooms    *services.RoomService
	profiles *user_services.ProfileService
}

func NewRoomHandler(feed *services.FeedService, rooms *services.RoomService, profiles *user_services.ProfileService) *RoomHandler {
	return &RoomHandler{feed: feed, rooms: rooms, profiles: profiles}
}

// Home renders the room listing filtered by the q query parameter.
func (h *RoomHandler) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	feed, err := h.feed.Home(r.Context(), q)
	if err != nil {
		renderServiceError(w, err)
		return
	}

	renderTemplate(w, "home.html", map[string]interface{}{
		"AuthUser":  authUser(r, h.profiles),
		"Rooms":     feed.Rooms,
		"RoomCount": feed.RoomCount,
		"Topics":    feed.Topics,
		"Messages":  feed.Messages,
		"Query":     q,
	})
}

// ShowRoom renders a room's conversation and participants.
func (h *RoomHandler) ShowRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, services.ErrNotFound)
		return
	}

	detail, err := h.feed.RoomDetail(r.Context(), id)
	if err != nil {
		renderServiceError(w, err)
		return
	}

	renderTemplate(w, "room.html", map[string]interface{}{
		"AuthUser":     authUser(r, h.profiles),
		"Room":         detail.Room,
		"Messages":     detail.Messages,
		"Participants": detail.Participants,
	})
}

// PostMessage creates a message in the room as the signed-in user and
// redirects back to the room so a refresh cannot re-post.
func (h *RoomHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, services.ErrNotFound)
		return
	}
	userID, _ := middleware.CurrentUserID(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := forms.MessageForm{Body: r.FormValue("body")}
	form.Normalize()
	if errs := form.Validate(); errs.Any() {
		detail, derr := h.feed.RoomDetail(r.Context(), id)
		if derr != nil {
			renderServiceError(w, derr)
			return
		}
		renderTemplate(w, "room.html", map[string]interface{}{
			"AuthUser":     authUser(r, h.profiles),
			"Room":         detail.Room,
			"Messages":     detail.Messages,
			"Participants": detail.Participants,
			"Errors":       errs,
		})
		return
	}

	if _, err := h.rooms.PostMessage(r.Context(), id, userID, form.Body); err != nil {
		renderServiceError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/room/%d", id), http.StatusSeeOther)
}

// ShowCreateRoom renders an empty room form with the known topics.
func (h *RoomHandler) ShowCreateRoom(w http.ResponseWriter, r *http.Request) {
	topics, err := h.feed.Topics(r.Context(), "")
	if err != nil {
		renderServiceError(w, err)
		return
	}

	renderTemplate(w, "room_form.html", map[string]interface{}{
		"AuthUser": authUser(r, h.profiles),
		"Topics":   topics,
	})
}

// CreateRoom creates a room hosted by the signed-in user.
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.CurrentUserID(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := forms.RoomForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Topic:       r.FormValue("topic"),
	}
	form.Normalize()
	if errs := form.Validate(); errs.Any() {
		h.renderRoomForm(w, r, form, errs, nil)
		return
	}

	if _, err := h.rooms.CreateRoom(r.Context(), userID, form.Name, form.Description, form.Topic); err != nil {
		renderServiceError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowUpdateRoom renders the room form pre-filled. Only the host gets this
// far; everyone else sees the forbidden page.
func (h *RoomHandler) ShowUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, services.ErrNotFound)
		return
	}
	userID, _ := middleware.CurrentUserID(r)

	room, err := h.rooms.GetRoom(r.Context(), id)
	if err != nil {
		renderServiceError(w, err)
		return
	}
	if !room.IsHostedBy(userID) {
		renderServiceError(w, services.ErrForbidden)
		return
	}

	topics, err := h.feed.Topics(r.Context(), "")
	if err != nil {
		renderServiceError(w, err)
		return
	}

	renderTemplate(w, "room_form.html", map[string]interface{}{
		"AuthUser":    authUser(r, h.profiles),
		"Room":        room,
		"Topics":      topics,
		"Name":        room.Name,
		"Description": room.Description,
		"Topic":       room.Topic.Name,
	})
}

// UpdateRoom overwrites name, description and topic of a hosted room. The
// host check runs before the form is even looked at, so a non-host never
// sees the edit form.
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, services.ErrNotFound)
		return
	}
	userID, _ := middleware.CurrentUserID(r)

	room, err := h.rooms.GetRoom(r.Context(), id)
	if err != nil {
		renderServiceError(w, err)
		return
	}
	if !room.IsHostedBy(userID) {
		renderServiceError(w, services.ErrForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := forms.RoomForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Topic:       r.FormValue("topic"),
	}
	form.Normalize()
	if errs := form.Validate(); errs.Any() {
		h.renderRoomForm(w, r, form, errs, room)
		return
	}

	if err := h.rooms.UpdateRoom(r.Context(), id, userID, form.Name, form.Description, form.Topic); err != nil {
		renderServiceError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowDeleteRoom renders the delete confirmation page for the host.
func (h *RoomHandler) ShowDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, services.ErrNotFound)
		return
	}
	userID, _ := middleware.CurrentUserID(r)

	room, err := h.rooms.GetRoom(r.Context(), id)
	if err != nil {
		renderServiceError(w, err)
		return
	}
	if !room.IsHostedBy(userID) {
		renderServiceError(w, services.ErrForbidden)
		return
	}

	renderTemplate(w, "delete.html", map[string]interface{}{
		"AuthUser": authUser(r, h.profiles),
		"Object":   room.Name,
	})
}

// DeleteRoom deletes a hosted room with its messages and memberships.
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, services.ErrNotFound)
		return
	}
	userID, _ := middleware.CurrentUserID(r)

	if err := h.rooms.DeleteRoom(r.Context(), id, userID); err != nil {
		renderServiceError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// TopicsPage lists topics filtered by the q query parameter.
func (h *RoomHandler) TopicsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	topics, err := h.feed.Topics(r.Context(), q)
	if err != nil {
		renderServiceError(w, err)
		return
	}

	renderTemplate(w, "topics.html", map[string]interface{}{
		"AuthUser": authUser(r, h.profiles),
		"Topics":   topics,
		"Query":    q,
	})
}

// ActivityPage lists all messages newest-first.
func (h *RoomHandler) ActivityPage(w http.ResponseWriter, r *http.Request) {
	messages, err := h.feed.Activity(r.Context())
	if err != nil {
		renderServiceError(w, err)
		return
	}

	renderTemplate(w, "activity.html", map[string]interface{}{
		"AuthUser": authUser(r, h.profiles),
		"Messages": messages,
	})
}

func (h *RoomHandler) renderRoomForm(w http.ResponseWriter, r *http.Request, form forms.RoomForm, errs forms.Errors, room *domain.Room) {
	topics, err := h.feed.Topics(r.Context(), "")
	if err != nil {
		renderServiceError(w, err)
		return
	}
	renderTemplate(w, "room_form.html", map[string]interface{}{
		"AuthUser":    authUser(r, h.profiles),
		"Room":        room,
		"Topics":      topics,
		"Errors":      errs,
		"Name":        form.Name,
		"Description": form.Description,
		"Topic":       form.Topic,
	})
}

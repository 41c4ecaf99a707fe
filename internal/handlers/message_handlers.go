// File: internal/handlers/message_handlers.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/roomhub/go-roomhub/internal/forms"
	"github.com/roomhub/go-roomhub/internal/middleware"
	"github.com/roomhub/go-roomhub/internal/services"
	"github.com/roomhub/go-roomhub/internal/services/user_services"
)

// MessageHandler serves message edit and delete, both author-only.
type MessageHandler struct {
	rooms    *services.RoomService
	profiles *user_services.ProfileService
}

func NewMessageHandler(rooms *services.RoomService, profiles *user_services.ProfileService) *MessageHandler {
	return &MessageHandler{rooms: rooms, profiles: profiles}
}

// ShowUpdateMessage renders the edit form for the message's author.
func (h *MessageHandler) ShowUpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, services.ErrNotFound)
		return
	}
	userID, _ := middleware.CurrentUserID(r)

	msg, err := h.rooms.GetMessage(r.Context(), id)
	if err != nil {
		renderServiceError(w, err)
		return
	}
	if !msg.IsAuthoredBy(userID) {
		renderServiceError(w, services.ErrForbidden)
		return
	}

	renderTemplate(w, "update_message.html", map[string]interface{}{
		"AuthUser": authUser(r, h.profiles),
		"Message":  msg,
		"Body":     msg.Body,
	})
}

// UpdateMessage replaces the body and returns to the message's room. The
// author check runs before the form is even looked at, so a non-author
// never sees the edit form.
func (h *MessageHandler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, services.ErrNotFound)
		return
	}
	userID, _ := middleware.CurrentUserID(r)

	msg, err := h.rooms.GetMessage(r.Context(), id)
	if err != nil {
		renderServiceError(w, err)
		return
	}
	if !msg.IsAuthoredBy(userID) {
		renderServiceError(w, services.ErrForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := forms.MessageForm{Body: r.FormValue("body")}
	form.Normalize()
	if errs := form.Validate(); errs.Any() {
		renderTemplate(w, "update_message.html", map[string]interface{}{
			"AuthUser": authUser(r, h.profiles),
			"Message":  msg,
			"Body":     form.Body,
			"Errors":   errs,
		})
		return
	}

	updated, err := h.rooms.UpdateMessage(r.Context(), id, userID, form.Body)
	if err != nil {
		renderServiceError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/room/%d", updated.RoomID), http.StatusSeeOther)
}

// ShowDeleteMessage renders the delete confirmation page for the author.
func (h *MessageHandler) ShowDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, services.ErrNotFound)
		return
	}
	userID, _ := middleware.CurrentUserID(r)

	msg, err := h.rooms.GetMessage(r.Context(), id)
	if err != nil {
		renderServiceError(w, err)
		return
	}
	if !msg.IsAuthoredBy(userID) {
		renderServiceError(w, services.ErrForbidden)
		return
	}

	renderTemplate(w, "delete.html", map[string]interface{}{
		"AuthUser": authUser(r, h.profiles),
		"Object":   msg.Body,
	})
}

// DeleteMessage removes the message and returns home.
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, services.ErrNotFound)
		return
	}
	userID, _ := middleware.CurrentUserID(r)

	if err := h.rooms.DeleteMessage(r.Context(), id, userID); err != nil {
		renderServiceError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

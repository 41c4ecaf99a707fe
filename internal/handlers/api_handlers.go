// File: internal/handlers/api_handlers.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/roomhub/go-roomhub/internal/repository/room"
)

// RoomAPIHandler serves the JSON room listing.
type RoomAPIHandler struct {
	roomRepo room.RoomRepository
}

func NewRoomAPIHandler(roomRepo room.RoomRepository) *RoomAPIHandler {
	return &RoomAPIHandler{roomRepo: roomRepo}
}

// ListRooms writes every room with its host and topic as a JSON array.
func (h *RoomAPIHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomRepo.FindAllWithRelations(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load rooms")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rooms); err != nil {
		log.Printf("API encode error: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// File: internal/handlers/profile_handlers.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/roomhub/go-roomhub/internal/forms"
	"github.com/roomhub/go-roomhub/internal/middleware"
	"github.com/roomhub/go-roomhub/internal/services/user_services"
)

const maxAvatarBytes = 5 << 20

var allowedAvatarExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ProfileHandler serves profile pages and the self-service profile editor,
// including avatar uploads.
type ProfileHandler struct {
	profiles  *user_services.ProfileService
	avatarDir string
}

func NewProfileHandler(profiles *user_services.ProfileService, avatarDir string) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, avatarDir: avatarDir}
}

// UserProfile renders any user's profile: their hosted rooms, their recent
// messages and the topic sidebar.
func (h *ProfileHandler) UserProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderServiceError(w, user_services.ErrUserNotFound)
		return
	}

	data, err := h.profiles.Profile(r.Context(), id)
	if err != nil {
		renderServiceError(w, err)
		return
	}

	renderTemplate(w, "profile.html", map[string]interface{}{
		"AuthUser": authUser(r, h.profiles),
		"User":     data.User,
		"Rooms":    data.Rooms,
		"Messages": data.Messages,
		"Topics":   data.Topics,
	})
}

// ShowUpdateUser renders the profile edit form pre-filled with the caller's
// current values.
func (h *ProfileHandler) ShowUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.CurrentUserID(r)

	u, err := h.profiles.GetUser(r.Context(), userID)
	if err != nil {
		renderServiceError(w, err)
		return
	}

	renderTemplate(w, "update_user.html", map[string]interface{}{
		"AuthUser": u,
		"Username": u.Username,
		"Email":    u.Email,
		"Bio":      u.Bio,
	})
}

// UpdateUser applies the submitted profile fields to the caller's own record
// and stores a new avatar if one was uploaded.
func (h *ProfileHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.CurrentUserID(r)

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := forms.UserForm{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Bio:      r.FormValue("bio"),
	}
	form.Normalize()
	if errs := form.Validate(); errs.Any() {
		h.renderUpdateUser(w, r, form, errs)
		return
	}

	avatar, err := h.saveAvatar(r)
	if err != nil {
		errs := forms.Errors{"avatar": err.Error()}
		h.renderUpdateUser(w, r, form, errs)
		return
	}

	if _, err := h.profiles.UpdateProfile(r.Context(), userID, form.Username, form.Email, form.Bio, avatar); err != nil {
		errs := forms.Errors{}
		switch {
		case errors.Is(err, user_services.ErrEmailTaken):
			errs["email"] = "A user with this email already exists."
		case errors.Is(err, user_services.ErrUsernameTaken):
			errs["username"] = "This username is already taken."
		default:
			renderServiceError(w, err)
			return
		}
		h.renderUpdateUser(w, r, form, errs)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/profile/%d", userID), http.StatusSeeOther)
}

// saveAvatar stores an uploaded avatar under a random file name and returns
// it. Returns "" when the form carried no file.
func (h *ProfileHandler) saveAvatar(r *http.Request) (string, error) {
	file, header, err := r.FormFile("avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", errors.New("Could not read the uploaded file.")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedAvatarExts[ext] {
		return "", errors.New("Avatar must be a .png, .jpg, .jpeg or .gif image.")
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(h.avatarDir, name))
	if err != nil {
		log.Printf("Avatar create error: %v", err)
		return "", errors.New("Could not store the uploaded file.")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("Avatar write error: %v", err)
		return "", errors.New("Could not store the uploaded file.")
	}
	return name, nil
}

func (h *ProfileHandler) renderUpdateUser(w http.ResponseWriter, r *http.Request, form forms.UserForm, errs forms.Errors) {
	renderTemplate(w, "update_user.html", map[string]interface{}{
		"AuthUser": authUser(r, h.profiles),
		"Username": form.Username,
		"Email":    form.Email,
		"Bio":      form.Bio,
		"Errors":   errs,
	})
}

// File: internal/handlers/auth_handlers.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/roomhub/go-roomhub/internal/forms"
	"github.com/roomhub/go-roomhub/internal/middleware"
	"github.com/roomhub/go-roomhub/internal/services/user_services"
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	auth     *user_services.AuthService
	profiles *user_services.ProfileService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *user_services.AuthService, profiles *user_services.ProfileService) *AuthHandler {
	return &AuthHandler{auth: auth, profiles: profiles}
}

// ShowSignIn renders the sign-in form. Already-authenticated callers are
// sent home instead.
func (h *AuthHandler) ShowSignIn(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CurrentUserID(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	renderTemplate(w, "login_register.html", map[string]interface{}{
		"Page": "signIn",
	})
}

// SignIn verifies credentials and establishes the session cookie. A missing
// account and a wrong password surface as distinct messages.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CurrentUserID(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	_, token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		msg := "Invalid email address or password"
		if errors.Is(err, user_services.ErrUserNotFound) {
			msg = "User does not exist"
		}
		renderTemplate(w, "login_register.html", map[string]interface{}{
			"Page":  "signIn",
			"Error": msg,
			"Email": email,
		})
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowSignUp renders the registration form.
func (h *AuthHandler) ShowSignUp(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CurrentUserID(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	renderTemplate(w, "login_register.html", map[string]interface{}{
		"Page": "signUp",
	})
}

// SignUp validates the registration fields, creates the user and signs it
// in. Validation failures re-render the form with field errors.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := forms.RegistrationForm{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	form.Normalize()

	if errs := form.Validate(); errs.Any() {
		h.renderSignUp(w, form, errs)
		return
	}

	_, token, err := h.auth.Register(r.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		log.Printf("Registration error: %v", err)
		errs := forms.Errors{}
		switch {
		case errors.Is(err, user_services.ErrEmailTaken):
			errs["email"] = "A user with this email already exists."
		case errors.Is(err, user_services.ErrUsernameTaken):
			errs["username"] = "This username is already taken."
		default:
			errs["form"] = "An error occurred during registration."
		}
		h.renderSignUp(w, form, errs)
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderSignUp(w http.ResponseWriter, form forms.RegistrationForm, errs forms.Errors) {
	renderTemplate(w, "login_register.html", map[string]interface{}{
		"Page":     "signUp",
		"Error":    "An error occurred during registration",
		"Errors":   errs,
		"Username": form.Username,
		"Email":    form.Email,
	})
}

// SignOut terminates the session and returns to the sign-in page.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/signIn", http.StatusSeeOther)
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}

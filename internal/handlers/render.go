// File: internal/handlers/render.go
package handlers

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/roomhub/go-roomhub/internal/domain"
	"github.com/roomhub/go-roomhub/internal/middleware"
	"github.com/roomhub/go-roomhub/internal/services/user_services"
)

// Template cache to avoid parsing templates on every request
var (
	templateCache     map[string]*template.Template
	templateCacheOnce sync.Once

	// templatesDir is resolved against the working directory. Package tests
	// run from their own directory and point this at the repo copy.
	templatesDir = "web/templates"
)

// loadTemplateCache creates separate template sets for each page
func loadTemplateCache() {
	templateCache = make(map[string]*template.Template)

	templates := []string{
		"home.html", "room.html", "room_form.html", "delete.html",
		"login_register.html", "topics.html", "activity.html",
		"profile.html", "update_user.html", "update_message.html",
		"error.html",
	}

	for _, tmpl := range templates {
		ts := template.New(tmpl).Funcs(templateFuncs)

		ts, err := ts.ParseFiles(filepath.Join(templatesDir, "layout.html"))
		if err != nil {
			log.Fatalf("Error parsing layout for %s: %v", tmpl, err)
		}

		ts, err = ts.ParseFiles(filepath.Join(templatesDir, tmpl))
		if err != nil {
			log.Fatalf("Error parsing %s: %v", tmpl, err)
		}

		templateCache[tmpl] = ts
	}
}

// renderTemplate renders a cached page template into the layout.
func renderTemplate(w http.ResponseWriter, tmpl string, data map[string]interface{}) {
	renderWithStatus(w, tmpl, http.StatusOK, data)
}

func renderWithStatus(w http.ResponseWriter, tmpl string, status int, data map[string]interface{}) {
	templateCacheOnce.Do(loadTemplateCache)
	addSecurityHeaders(w)

	if data == nil {
		data = make(map[string]interface{})
	}

	t, ok := templateCache[tmpl]
	if !ok {
		log.Printf("Template %s not found in cache", tmpl)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Printf("Template render error for %s: %v", tmpl, err)
	}
}

// ShowErrorPage renders the shared error page. It backs the router's
// NotFound and MethodNotAllowed handlers.
func ShowErrorPage(w http.ResponseWriter, status int, message, description string) {
	renderErrorPage(w, status, message, description)
}

// renderErrorPage renders the shared error page with the given status.
func renderErrorPage(w http.ResponseWriter, status int, message, description string) {
	renderWithStatus(w, "error.html", status, map[string]interface{}{
		"Code":        status,
		"Message":     message,
		"Description": description,
	})
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

// authUser resolves the signed-in user for the navbar and permission checks
// on public pages. Returns nil for anonymous requests.
func authUser(r *http.Request, profiles *user_services.ProfileService) *domain.User {
	userID, ok := middleware.CurrentUserID(r)
	if !ok {
		return nil
	}
	u, err := profiles.GetUser(r.Context(), userID)
	if err != nil {
		return nil
	}
	return u
}

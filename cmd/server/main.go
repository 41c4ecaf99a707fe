// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/roomhub/go-roomhub/internal/config"
	"github.com/roomhub/go-roomhub/internal/domain"
	"github.com/roomhub/go-roomhub/internal/handlers"
	"github.com/roomhub/go-roomhub/internal/middleware"
	"github.com/roomhub/go-roomhub/internal/repository/message"
	"github.com/roomhub/go-roomhub/internal/repository/room"
	"github.com/roomhub/go-roomhub/internal/repository/topic"
	"github.com/roomhub/go-roomhub/internal/repository/user"
	"github.com/roomhub/go-roomhub/internal/services"
	"github.com/roomhub/go-roomhub/internal/services/user_services"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Topic{}, &domain.Room{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	if err := os.MkdirAll(cfg.AvatarDir, 0o755); err != nil {
		log.Fatalf("Avatar dir error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	topicRepo := topic.NewTopicRepository(db)
	roomRepo := room.NewRoomRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, services.NewLogger("auth"))
	profileService := user_services.NewProfileService(userRepo, roomRepo, messageRepo, topicRepo, services.NewLogger("profile"))
	roomService := services.NewRoomService(roomRepo, topicRepo, messageRepo, services.NewLogger("room"))
	feedService := services.NewFeedService(roomRepo, topicRepo, messageRepo, services.NewLogger("feed"))

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, profileService)
	roomHandler := handlers.NewRoomHandler(feedService, roomService, profileService)
	messageHandler := handlers.NewMessageHandler(roomService, profileService)
	profileHandler := handlers.NewProfileHandler(profileService, cfg.AvatarDir)
	apiHandler := handlers.NewRoomAPIHandler(roomRepo)

	// --- Router Setup ---
	r := mux.NewRouter()

	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	// OptionalAuth lets signed-in users see their navbar state on public
	// pages without gating anonymous visitors.
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	public := r.PathPrefix("/").Subrouter()
	public.Use(middleware.OptionalAuth(authService))
	public.HandleFunc("/", roomHandler.Home).Methods("GET")
	public.HandleFunc("/signIn", authHandler.ShowSignIn).Methods("GET")
	public.HandleFunc("/signIn", authHandler.SignIn).Methods("POST")
	public.HandleFunc("/signUp", authHandler.ShowSignUp).Methods("GET")
	public.HandleFunc("/signUp", authHandler.SignUp).Methods("POST")
	public.HandleFunc("/signOut", authHandler.SignOut).Methods("GET")
	public.HandleFunc("/room/{id:[0-9]+}", roomHandler.ShowRoom).Methods("GET")
	public.HandleFunc("/topicsPage", roomHandler.TopicsPage).Methods("GET")
	public.HandleFunc("/activityPage", roomHandler.ActivityPage).Methods("GET")
	public.HandleFunc("/api/rooms", apiHandler.ListRooms).Methods("GET")

	// --- Protected Routes ---
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(middleware.RequireAuth(authService))
	protected.HandleFunc("/room/{id:[0-9]+}", roomHandler.PostMessage).Methods("POST")
	protected.HandleFunc("/createRoom", roomHandler.ShowCreateRoom).Methods("GET")
	protected.HandleFunc("/createRoom", roomHandler.CreateRoom).Methods("POST")
	protected.HandleFunc("/updateRoom/{id:[0-9]+}", roomHandler.ShowUpdateRoom).Methods("GET")
	protected.HandleFunc("/updateRoom/{id:[0-9]+}", roomHandler.UpdateRoom).Methods("POST")
	protected.HandleFunc("/deleteRoom/{id:[0-9]+}", roomHandler.ShowDeleteRoom).Methods("GET")
	protected.HandleFunc("/deleteRoom/{id:[0-9]+}", roomHandler.DeleteRoom).Methods("POST")
	protected.HandleFunc("/updateMessage/{id:[0-9]+}", messageHandler.ShowUpdateMessage).Methods("GET")
	protected.HandleFunc("/updateMessage/{id:[0-9]+}", messageHandler.UpdateMessage).Methods("POST")
	protected.HandleFunc("/deleteMessage/{id:[0-9]+}", messageHandler.ShowDeleteMessage).Methods("GET")
	protected.HandleFunc("/deleteMessage/{id:[0-9]+}", messageHandler.DeleteMessage).Methods("POST")
	protected.HandleFunc("/profile/{id:[0-9]+}", profileHandler.UserProfile).Methods("GET")
	protected.HandleFunc("/updateUser", profileHandler.ShowUpdateUser).Methods("GET")
	protected.HandleFunc("/updateUser", profileHandler.UpdateUser).Methods("POST")

	// --- Custom Error Handlers ---
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.ShowErrorPage(w, http.StatusNotFound, "Page Not Found", "The page you are looking for does not exist.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.ShowErrorPage(w, http.StatusMethodNotAllowed, "Method Not Allowed", "The method is not allowed for this resource.")
	})

	// --- Server Configuration ---
	port := ":8080"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("RoomHub starting on port %s", port)
	log.Printf("Local access: http://localhost%s", port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

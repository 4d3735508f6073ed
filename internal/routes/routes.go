package routes

import (
	"net/http"
	"path/filepath"

	"github.com/hoaxify/hoaxify/internal/app"
	"github.com/hoaxify/hoaxify/internal/handler"
	"github.com/hoaxify/hoaxify/internal/middleware"
	"github.com/hoaxify/hoaxify/internal/storage"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(a.AuthService)
	user := handler.NewUserHandler(a.UserService, a.AuthService)
	hoax := handler.NewHoaxHandler(a.HoaxService, a.FileService)

	mux := http.NewServeMux()

	// Users
	mux.HandleFunc("POST /api/1.0/users", user.Register)
	mux.HandleFunc("POST /api/1.0/users/token/{token}", user.Activate)
	mux.HandleFunc("GET /api/1.0/users", user.List)
	mux.HandleFunc("GET /api/1.0/users/{id}", user.Get)
	mux.HandleFunc("PUT /api/1.0/users/{id}", user.Update)
	mux.HandleFunc("DELETE /api/1.0/users/{id}", user.Delete)

	// Auth
	mux.HandleFunc("POST /api/1.0/auth", auth.Login)
	mux.HandleFunc("POST /api/1.0/logout", auth.Logout)

	// Password reset
	mux.HandleFunc("POST /api/1.0/user/password", user.RequestPasswordReset)
	mux.HandleFunc("PUT /api/1.0/user/password", user.ResetPassword)

	// Hoaxes
	mux.HandleFunc("POST /api/1.0/hoaxes", hoax.Create)
	mux.HandleFunc("GET /api/1.0/hoaxes", hoax.List)
	mux.HandleFunc("GET /api/1.0/users/{id}/hoaxes", hoax.ListByUser)
	mux.HandleFunc("DELETE /api/1.0/hoaxes/{id}", hoax.Delete)
	mux.HandleFunc("POST /api/1.0/hoaxes/attachments", hoax.UploadAttachment)

	// Uploaded media
	profileDir := filepath.Join(a.Storage.Root(), storage.ProfileArea)
	attachmentDir := filepath.Join(a.Storage.Root(), storage.AttachmentArea)
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(profileDir))))
	mux.Handle("GET /attachments/", http.StripPrefix("/attachments/", http.FileServer(http.Dir(attachmentDir))))

	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.Locale,
		middleware.AuthMiddleware(a.AuthService),
	)
}

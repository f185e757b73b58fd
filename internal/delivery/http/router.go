package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"consultingoffice/internal/delivery/http/controllers"
	"consultingoffice/internal/delivery/http/middleware"
	"consultingoffice/internal/domain"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Logger   *slog.Logger
	Verifier domain.TokenVerifier

	Auth     *controllers.AuthController
	Events   *controllers.EventController
	Sessions *controllers.SessionController
	Bookings *controllers.BookingController
	Contacts *controllers.ContactController
	Settings *controllers.SettingController
	Public   *controllers.PublicController
}

// NewRouter initializes the HTTP router with all application routes.
// Admin routes require a Bearer token; public routes do not.
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(deps.Verifier, deps.Logger)

	// Events (admin)
	mux.HandleFunc("POST /events", auth(deps.Events.CreateEvent))
	mux.HandleFunc("GET /events", auth(deps.Events.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(deps.Events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(deps.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(deps.Events.DeleteEvent))

	// Sessions (admin)
	mux.HandleFunc("POST /sessions", auth(deps.Sessions.CreateSession))
	mux.HandleFunc("GET /sessions", auth(deps.Sessions.ListSessions))
	mux.HandleFunc("GET /sessions/{sessionID}", auth(deps.Sessions.GetSession))
	mux.HandleFunc("PATCH /sessions/{sessionID}", auth(deps.Sessions.UpdateSession))
	mux.HandleFunc("POST /sessions/{sessionID}/toggle", auth(deps.Sessions.ToggleSession))
	mux.HandleFunc("DELETE /sessions/{sessionID}", auth(deps.Sessions.DeleteSession))
	mux.HandleFunc("POST /sessions/{sessionID}/slots", auth(deps.Sessions.AddTimeSlot))
	mux.HandleFunc("DELETE /sessions/{sessionID}/slots/{slotID}", auth(deps.Sessions.RemoveTimeSlot))
	mux.HandleFunc("POST /sessions/{sessionID}/delegates", auth(deps.Sessions.AddDelegate))
	mux.HandleFunc("DELETE /sessions/{sessionID}/delegates/{delegateID}", auth(deps.Sessions.RemoveDelegate))

	// Bookings (admin)
	mux.HandleFunc("POST /bookings", auth(deps.Bookings.CreateBooking))
	mux.HandleFunc("GET /bookings", auth(deps.Bookings.ListBookings))
	mux.HandleFunc("PATCH /bookings/{bookingID}/status", auth(deps.Bookings.UpdateBookingStatus))
	mux.HandleFunc("DELETE /bookings/{bookingID}", auth(deps.Bookings.DeleteBooking))

	// Contacts (admin)
	mux.HandleFunc("GET /contacts", auth(deps.Contacts.ListContacts))
	mux.HandleFunc("PATCH /contacts/{contactID}", auth(deps.Contacts.UpdateContact))
	mux.HandleFunc("DELETE /contacts/{contactID}", auth(deps.Contacts.DeleteContact))

	// Settings (admin)
	mux.HandleFunc("GET /settings", auth(deps.Settings.ListSettings))
	mux.HandleFunc("PUT /settings/{key}", auth(deps.Settings.PutSetting))

	// Auth
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)
	mux.HandleFunc("POST /auth/logout", auth(deps.Auth.Logout))
	mux.HandleFunc("GET /auth/me", auth(deps.Auth.Me))

	// Public (marketing site)
	mux.HandleFunc("GET /public/events", deps.Public.ListActiveEvents)
	mux.HandleFunc("GET /public/events/{eventID}/sessions", deps.Public.ListActiveSessions)
	mux.HandleFunc("POST /public/contact", deps.Public.SubmitContact)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

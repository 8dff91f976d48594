package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"partyline/internal/service"
	"partyline/internal/transport/rest/handler"
	"partyline/internal/transport/rest/middleware"
	"partyline/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	PartyService   *service.PartyService
	GameService    *service.GameService
	ProfileService *service.ProfileService
	ReportService  *service.ReportService
	Uploader       service.Uploader
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.PartyService)
	partyHandler := handler.NewPartyHandler(c.PartyService)
	gameHandler := handler.NewGameHandler(c.GameService)
	questionnaireHandler := handler.NewQuestionnaireHandler(c.ProfileService, c.Uploader)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/guest", authHandler.GuestSignIn).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/parties/{partyId}/host", wsHandler.HostWS).Methods("GET")
	v1.HandleFunc("/ws/parties/{partyId}/guest", wsHandler.GuestWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/parties", partyHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/parties", partyHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/parties/{partyId}", partyHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/parties/{partyId}", partyHandler.Update).Methods("PUT", "OPTIONS")
	hostRoutes.HandleFunc("/parties/{partyId}", partyHandler.Delete).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/parties/{partyId}/games", gameHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/parties/{partyId}/games", gameHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/games/{gameId}/enabled", gameHandler.SetEnabled).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/games/{gameId}/moderated", gameHandler.SetModerated).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/games/{gameId}", gameHandler.Delete).Methods("DELETE", "OPTIONS")

	// Report routes (host only)
	hostRoutes.HandleFunc("/parties/{partyId}/report", reportHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/parties/{partyId}/report.csv", reportHandler.ExportCSV).Methods("GET", "OPTIONS")

	// Guest routes (require guest auth)
	guestRoutes := v1.NewRoute().Subrouter()
	guestRoutes.Use(authMW.RequireGuest)

	guestRoutes.HandleFunc("/me/batches", questionnaireHandler.Batches).Methods("GET", "OPTIONS")
	guestRoutes.HandleFunc("/me/batches/{batchId}", questionnaireHandler.Prefill).Methods("GET", "OPTIONS")
	guestRoutes.HandleFunc("/me/batches/{batchId}/draft", questionnaireHandler.SaveDraft).Methods("PUT", "OPTIONS")
	guestRoutes.HandleFunc("/me/batches/{batchId}/submit", questionnaireHandler.Submit).Methods("POST", "OPTIONS")
	guestRoutes.HandleFunc("/me/batches/{batchId}/questions/{questionId}/select", questionnaireHandler.SelectOption).Methods("POST", "OPTIONS")
	guestRoutes.HandleFunc("/me/photos", questionnaireHandler.UploadPhoto).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/maxretail/training-api/internal/audit"
	"github.com/maxretail/training-api/internal/auth"
	"github.com/maxretail/training-api/internal/interaction"
	"github.com/maxretail/training-api/internal/kpi"
	"github.com/maxretail/training-api/internal/logger"
	"github.com/maxretail/training-api/internal/persona"
	"github.com/maxretail/training-api/internal/scenario"
	"github.com/maxretail/training-api/internal/session"
	"github.com/maxretail/training-api/internal/store"
	"github.com/maxretail/training-api/internal/transcript"
	"github.com/maxretail/training-api/internal/user"
	"github.com/maxretail/training-api/internal/utils/db"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := audit.Register(database); err != nil {
		log.Fatal("failed to register audit callback", "error", err)
	}

	if err := database.AutoMigrate(
		&store.Store{},
		&user.User{},
		&persona.Persona{},
		&scenario.TrainingScenario{},
		&session.TrainingSession{},
		&interaction.TrainingInteraction{},
		&transcript.TrainingTranscript{},
		&kpi.KpiData{},
	); err != nil {
		log.Fatal("migration failed", "error", err)
	}

	// reference data
	if err := persona.Seed(database); err != nil {
		log.Fatal("persona seeding failed", "error", err)
	}
	if err := scenario.SeedCatalog(database); err != nil {
		log.Fatal("scenario catalog seeding failed", "error", err)
	}

	// Handlers
	userHandler := user.NewHandler(database)
	storeHandler := store.NewHandler(database)
	personaHandler := persona.NewHandler(database)
	scenarioHandler := scenario.NewHandler(database)
	sessionHandler := session.NewHandler(database)
	interactionHandler := interaction.NewHandler(database)
	transcriptHandler := transcript.NewHandler(database)
	kpiHandler := kpi.NewHandler(database)

	// Router
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/auth/register", userHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", userHandler.Login).Methods("POST")

	// Everything else requires a token
	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.Middleware)

	// User routes
	api.HandleFunc("/me", userHandler.Me).Methods("GET")
	api.HandleFunc("/me/password", userHandler.ChangePassword).Methods("PUT")
	api.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	api.HandleFunc("/users/{id}", userHandler.GetUser).Methods("GET")
	api.HandleFunc("/users/{id}", userHandler.UpdateUser).Methods("PUT")
	api.HandleFunc("/users/{id}", userHandler.DeleteUser).Methods("DELETE")
	api.Handle("/users/{id}/password-reset", auth.RequireAdmin(http.HandlerFunc(userHandler.ResetPassword))).Methods("POST")

	// Store routes
	api.HandleFunc("/stores", storeHandler.ListStores).Methods("GET")
	api.HandleFunc("/stores/{id}", storeHandler.GetStore).Methods("GET")
	api.Handle("/stores", auth.RequireAdmin(http.HandlerFunc(storeHandler.CreateStore))).Methods("POST")
	api.Handle("/stores/{id}", auth.RequireAdmin(http.HandlerFunc(storeHandler.UpdateStore))).Methods("PUT")
	api.Handle("/stores/{id}", auth.RequireAdmin(http.HandlerFunc(storeHandler.DeleteStore))).Methods("DELETE")
	api.Handle("/stores/{id}/users", auth.RequireAdmin(http.HandlerFunc(userHandler.ListByStore))).Methods("GET")
	api.Handle("/stores/{id}/kpis", auth.RequireAdmin(http.HandlerFunc(kpiHandler.ListByStore))).Methods("GET")

	// Persona routes
	api.HandleFunc("/personas", personaHandler.ListPersonas).Methods("GET")
	api.HandleFunc("/personas/{id}", personaHandler.GetPersona).Methods("GET")
	api.HandleFunc("/personas/{id}/scenarios", scenarioHandler.ListByPersona).Methods("GET")
	api.Handle("/personas", auth.RequireAdmin(http.HandlerFunc(personaHandler.CreatePersona))).Methods("POST")
	api.Handle("/personas/{id}", auth.RequireAdmin(http.HandlerFunc(personaHandler.UpdatePersona))).Methods("PUT")
	api.Handle("/personas/{id}", auth.RequireAdmin(http.HandlerFunc(personaHandler.DeletePersona))).Methods("DELETE")

	// Scenario routes
	api.HandleFunc("/scenarios", scenarioHandler.ListScenarios).Methods("GET")
	api.HandleFunc("/scenarios/random", scenarioHandler.RandomScenario).Methods("GET")
	api.HandleFunc("/scenarios/{id}", scenarioHandler.GetScenario).Methods("GET")
	api.Handle("/scenarios", auth.RequireAdmin(http.HandlerFunc(scenarioHandler.CreateScenario))).Methods("POST")
	api.Handle("/scenarios/{id}", auth.RequireAdmin(http.HandlerFunc(scenarioHandler.UpdateScenario))).Methods("PUT")
	api.Handle("/scenarios/{id}", auth.RequireAdmin(http.HandlerFunc(scenarioHandler.DeleteScenario))).Methods("DELETE")

	// Session routes
	api.HandleFunc("/sessions", sessionHandler.StartSession).Methods("POST")
	api.HandleFunc("/sessions", sessionHandler.ListSessions).Methods("GET")
	api.HandleFunc("/sessions/next-difficulty", sessionHandler.NextDifficultyHandler).Methods("GET")
	api.HandleFunc("/sessions/{id}", sessionHandler.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", sessionHandler.DeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/complete", sessionHandler.CompleteSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/abandon", sessionHandler.AbandonSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/interactions", interactionHandler.AddInteraction).Methods("POST")
	api.HandleFunc("/sessions/{id}/interactions", interactionHandler.ListInteractions).Methods("GET")
	api.HandleFunc("/sessions/{id}/transcript", transcriptHandler.SaveTranscript).Methods("PUT")
	api.HandleFunc("/sessions/{id}/transcript", transcriptHandler.GetTranscript).Methods("GET")
	api.HandleFunc("/leaderboard", sessionHandler.LeaderboardHandler).Methods("GET")

	// KPI routes
	api.HandleFunc("/kpis", kpiHandler.CreateKpi).Methods("POST")
	api.HandleFunc("/kpis", kpiHandler.ListKpis).Methods("GET")
	api.HandleFunc("/kpis/summary", kpiHandler.KpiSummary).Methods("GET")
	api.HandleFunc("/kpis/insights", kpiHandler.KpiInsights).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Info("server listening", "addr", addr)
	log.Fatal("server stopped", "error", http.ListenAndServe(addr, handler))
}

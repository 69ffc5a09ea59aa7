package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/ingest"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/refine"
	"github.com/jonathan/resume-forge/internal/server/middleware"
	"github.com/jonathan/resume-forge/internal/typeset"
)

// Server is the HTTP front end: authentication, profile CRUD, generation
// runs and chat refinement.
type Server struct {
	httpServer *http.Server
	db         *db.DB
	llmClient  llm.Client

	users    *UserService
	jwt      *JWTService
	pipeline *pipeline.Orchestrator
	refiner  *refine.Refiner
	validate *validator.Validate

	ingestOptions *ingest.Options
	corsOrigins   []string
}

// New creates a server wired to the database and LLM provider.
func New(cfg *config.ServerConfig) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	gemini, err := llm.NewGeminiClient(context.Background(), llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	// One budget shared by every pipeline and refinement call.
	client := llm.NewLimitedClient(gemini, llm.NewLimiter(cfg.RateLimitPerMinute, time.Minute), cfg.LLMTimeout)

	compiler := typeset.New(cfg.LatexOutputDir, cfg.LatexTimeout, cfg.LatexMaxRuns)
	if !compiler.Available() {
		log.Printf("[SERVER] pdflatex not found, resumes will be stored as LaTeX only")
	}

	s := &Server{
		db:            database,
		llmClient:     client,
		users:         NewUserService(database, passwordConfig),
		jwt:           NewJWTService(jwtConfig),
		pipeline:      pipeline.New(database, client, compiler),
		refiner:       refine.New(client),
		validate:      validator.New(),
		ingestOptions: ingest.DefaultOptions(),
		corsOrigins:   cfg.CORSOrigins,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation runs are slow
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	auth := middleware.Auth(s.jwt.UserIDFromToken)
	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("GET /auth/me", protected(s.handleMe))

	mux.Handle("POST /skills", protected(s.handleCreateSkill))
	mux.Handle("GET /skills", protected(s.handleListSkills))
	mux.Handle("PUT /skills/{id}", protected(s.handleUpdateSkill))
	mux.Handle("DELETE /skills/{id}", protected(s.handleDeleteSkill))

	mux.Handle("POST /projects", protected(s.handleCreateProject))
	mux.Handle("GET /projects", protected(s.handleListProjects))
	mux.Handle("PUT /projects/{id}", protected(s.handleUpdateProject))
	mux.Handle("DELETE /projects/{id}", protected(s.handleDeleteProject))

	mux.Handle("POST /experiences", protected(s.handleCreateExperience))
	mux.Handle("GET /experiences", protected(s.handleListExperiences))
	mux.Handle("PUT /experiences/{id}", protected(s.handleUpdateExperience))
	mux.Handle("DELETE /experiences/{id}", protected(s.handleDeleteExperience))

	mux.Handle("POST /achievements", protected(s.handleCreateAchievement))
	mux.Handle("GET /achievements", protected(s.handleListAchievements))
	mux.Handle("PUT /achievements/{id}", protected(s.handleUpdateAchievement))
	mux.Handle("DELETE /achievements/{id}", protected(s.handleDeleteAchievement))

	mux.Handle("POST /templates", protected(s.handleCreateTemplate))
	mux.Handle("GET /templates", protected(s.handleListTemplates))
	mux.Handle("GET /templates/{id}", protected(s.handleGetTemplate))
	mux.Handle("PUT /templates/{id}", protected(s.handleUpdateTemplate))
	mux.Handle("DELETE /templates/{id}", protected(s.handleDeleteTemplate))

	mux.Handle("POST /resumes/generate", protected(s.handleGenerateResume))
	mux.Handle("GET /resumes", protected(s.handleListResumes))
	mux.Handle("GET /resumes/{id}", protected(s.handleGetResume))
	mux.Handle("DELETE /resumes/{id}", protected(s.handleDeleteResume))
	mux.Handle("GET /resumes/{id}/analysis", protected(s.handleResumeAnalysis))
	mux.Handle("GET /resumes/{id}/pdf", protected(s.handleResumePDF))

	mux.Handle("POST /resumes/{id}/chat", protected(s.handleRefineResume))
	mux.Handle("GET /resumes/{id}/chat", protected(s.handleChatHistory))

	return mux
}

// Start begins listening and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.llmClient.Close(); err != nil {
		log.Printf("[SERVER] failed to close LLM client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS adds CORS headers for the configured origins.
func (s *Server) withCORS(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(s.corsOrigins))
	for _, origin := range s.corsOrigins {
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

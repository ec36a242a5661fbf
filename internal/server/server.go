package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/meera/campushire/internal/config"
	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/identity"
	"github.com/meera/campushire/internal/interview"
	"github.com/meera/campushire/internal/llm"
	"github.com/meera/campushire/internal/oracle"
	"github.com/meera/campushire/internal/recommend"
	"github.com/meera/campushire/internal/resume"
	"github.com/meera/campushire/internal/server/middleware"
	"github.com/meera/campushire/internal/server/ratelimit"
)

// Store is the database surface the handlers depend on. *db.DB satisfies it.
type Store interface {
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*db.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role db.UserRole) error

	GetStudentProfile(ctx context.Context, userID uuid.UUID) (*db.StudentProfile, error)

	CreateJob(ctx context.Context, recruiterID uuid.UUID, title, description string, skills []string, experience string) (uuid.UUID, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context) ([]db.Job, error)
	ListJobsByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]db.Job, error)

	CreateApplication(ctx context.Context, studentID, jobID uuid.UUID, aiScore *float64) (uuid.UUID, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*db.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status db.ApplicationStatus) error
	SetApplicationAIScore(ctx context.Context, id uuid.UUID, score float64) error
	ListApplicationsByStudent(ctx context.Context, studentID uuid.UUID) ([]db.Application, error)
	ListApplicationsByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]db.Application, error)

	GetInterviewByStudentAndJob(ctx context.Context, studentID, jobID uuid.UUID) (*db.Interview, error)
	LinkInterviewApplication(ctx context.Context, id, applicationID uuid.UUID) error
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       Store
	oracle      oracle.Oracle
	llmClient   llm.Client
	interviews  *interview.Orchestrator
	recommender *recommend.Scorer
	resumes     *resume.Service
	verifier    *identity.Verifier
	applier     *identity.Applier
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration.
type Config struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	oracleClient := oracle.NewClient(llmClient)

	storageCfg, err := config.NewStorageConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create storage config: %w", err)
	}
	blobs, err := newBlobStore(ctx, storageCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	webhookCfg, err := config.NewWebhookConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook config: %w", err)
	}
	verifier, err := identity.NewVerifier(webhookCfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook verifier: %w", err)
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		db:          database,
		store:       database,
		oracle:      oracleClient,
		llmClient:   llmClient,
		interviews:  interview.NewOrchestrator(database, oracleClient),
		recommender: recommend.NewScorer(database, oracleClient),
		resumes:     resume.NewService(database, oracleClient, blobs),
		verifier:    verifier,
		applier:     identity.NewApplier(database),
		jwtService:  NewJWTService(jwtCfg),
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // interview turns wait on the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newBlobStore builds the resume blob store for the configured backend.
func newBlobStore(ctx context.Context, cfg *config.StorageConfig) (resume.BlobStore, error) {
	switch cfg.Backend {
	case config.StorageS3:
		return resume.NewS3Store(ctx, resume.S3Config{
			Bucket:    cfg.Bucket,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
		})
	default:
		return resume.NewLocalStore(cfg.UploadDir), nil
	}
}

// routes builds the router. Webhook and health endpoints are public;
// everything else requires a bearer token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	authed := middleware.Auth(s.jwtService.AsTokenValidator())
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /webhooks/identity", s.handleIdentityWebhook)

	// Account endpoints
	handle("GET /users/me", s.handleGetMe)
	handle("PUT /users/me/role", s.handleUpdateRole)

	// Student endpoints
	handle("POST /resumes", s.handleUploadResume)
	handle("GET /students/me/profile", s.handleGetProfile)
	handle("GET /students/me/dashboard", s.handleDashboard)
	handle("GET /students/me/recommendations", s.handleRecommendations)
	handle("GET /students/me/applications", s.handleListMyApplications)

	// Job endpoints
	handle("GET /jobs", s.handleListJobs)
	handle("POST /jobs", s.handleCreateJob)
	handle("GET /jobs/{id}", s.handleGetJob)
	handle("GET /recruiters/me/jobs", s.handleListRecruiterJobs)
	handle("GET /recruiters/me/applications", s.handleListRecruiterApplications)

	// Application endpoints
	handle("POST /applications", s.handleCreateApplication)
	handle("PATCH /applications/{id}/status", s.handleUpdateApplicationStatus)

	// Interview endpoints
	handle("POST /interviews", s.handleStartInterview)
	handle("POST /interviews/{id}/answers", s.handleSubmitAnswer)
	handle("GET /interviews/{id}", s.handleGetInterview)

	return mux
}

// Start begins listening for requests.
func (s *Server) Start() error {
	// Graceful shutdown
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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a service-layer error to its HTTP status and writes it.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// For now this uses the IP address from RemoteAddr; X-Forwarded-For
// should only ever be trusted behind a known proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

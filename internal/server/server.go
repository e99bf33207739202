//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/activity"
	"github.com/transcontinental/portal/internal/auth"
	"github.com/transcontinental/portal/internal/storage"
	"github.com/transcontinental/portal/internal/upload"
)

type Storage interface {
	SignUp(ctx context.Context, in storage.SignUpInput) (*storage.Client, error)
	AuthenticateClient(ctx context.Context, email, password string) (*storage.Client, error)
	AuthenticateAdmin(ctx context.Context, email, password string) (*storage.Admin, error)
	GetProfile(ctx context.Context, p auth.Principal) (*storage.Client, error)
	UpdateProfile(ctx context.Context, p auth.Principal, in storage.ProfileInput) (*storage.Client, error)

	CreateShipment(ctx context.Context, p auth.Principal, in storage.CreateShipmentInput) (*storage.Shipment, error)
	ListShipments(ctx context.Context, p auth.Principal, filter storage.ShipmentFilter) ([]storage.Shipment, error)
	GetShipment(ctx context.Context, p auth.Principal, id string) (*storage.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, p auth.Principal, id string, next storage.Status) (*storage.Shipment, error)
	DeleteShipment(ctx context.Context, p auth.Principal, id string) error
	ShipmentSummary(ctx context.Context, p auth.Principal, ownerEmail string) (*storage.ShipmentSummary, error)
	PendingShipments(ctx context.Context, p auth.Principal) ([]storage.Shipment, error)

	ListClients(ctx context.Context, p auth.Principal) ([]storage.Client, error)
	CountClients(ctx context.Context, p auth.Principal) (int, error)
	UpdateClient(ctx context.Context, p auth.Principal, id string, in storage.ClientUpdateInput) (*storage.Client, error)
	DeleteClient(ctx context.Context, p auth.Principal, id string) error

	ListAdmins(ctx context.Context, p auth.Principal) ([]storage.Admin, error)
	CreateAdmin(ctx context.Context, p auth.Principal, in storage.AdminInput) (*storage.Admin, error)
	UpdateAdmin(ctx context.Context, p auth.Principal, id string, in storage.AdminInput) (*storage.Admin, error)
	DeleteAdmin(ctx context.Context, p auth.Principal, id string) error
}

type Uploads interface {
	Accept(ctx context.Context, reader *multipart.Reader) (*upload.Result, error)
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	MaxFileBytes() int64
}

type ActivityFeed interface {
	Recent(ctx context.Context, p auth.Principal) ([]activity.Activity, error)
}

type TokenIssuer interface {
	Issue(p auth.Principal) (string, time.Time, error)
	Parse(token string) (auth.Principal, error)
}

type Server struct {
	storage      Storage
	uploads      Uploads
	feed         ActivityFeed
	tokens       TokenIssuer
	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager
}

func New(storage Storage, uploads Uploads, feed ActivityFeed, tokens TokenIssuer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		storage:      storage,
		uploads:      uploads,
		feed:         feed,
		tokens:       tokens,
		logger:       logger,
		AuditManager: NewAuditManager(2, 5, 500*time.Millisecond, logger),
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	s.server = &http.Server{
		Addr:              ":" + port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
	}

	// Audit outlives ctx so requests drained during shutdown are still logged.
	s.AuditManager.Start(context.WithoutCancel(ctx))

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("port", port))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("http server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	s.logger.Info("server shutdown completed")
	return nil
}

// Handler builds the router. Exposed so tests can drive the full middleware
// chain with httptest.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet).Name("health")
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")

	files := r.PathPrefix("/uploads").Subrouter()
	files.Use(s.authMiddleware, s.auditLogMiddleware)
	files.HandleFunc("/{name}", s.handleGetFile).Methods(http.MethodGet).Name("getFile")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.authMiddleware, s.auditLogMiddleware, noStoreMiddleware)

	api.HandleFunc("/signup", s.handleSignUp).Methods(http.MethodPost).Name("signUp")
	api.HandleFunc("/login", s.handleClientLogin).Methods(http.MethodPost).Name("clientLogin")
	api.HandleFunc("/admin/login", s.handleAdminLogin).Methods(http.MethodPost).Name("adminLogin")
	api.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet).Name("getProfile")
	api.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut).Name("updateProfile")

	api.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost).Name("upload")

	api.HandleFunc("/shipments", s.handleListShipments).Methods(http.MethodGet).Name("listShipments")
	api.HandleFunc("/shipments", s.handleCreateShipment).Methods(http.MethodPost).Name("createShipment")
	api.HandleFunc("/shipments/summary", s.handleShipmentSummary).Methods(http.MethodGet).Name("shipmentSummary")
	api.HandleFunc("/shipments/pending", s.handlePendingShipments).Methods(http.MethodGet).Name("pendingShipments")
	api.HandleFunc("/shipments/{id}", s.handleGetShipment).Methods(http.MethodGet).Name("getShipment")
	api.HandleFunc("/shipments/{id}", s.handleUpdateShipmentStatus).Methods(http.MethodPut).Name("updateShipmentStatus")
	api.HandleFunc("/shipments/{id}", s.handleDeleteShipment).Methods(http.MethodDelete).Name("deleteShipment")

	api.HandleFunc("/users", s.handleCountClients).Methods(http.MethodGet).Name("countClients")
	api.HandleFunc("/admin/clients", s.handleListClients).Methods(http.MethodGet).Name("listClients")
	api.HandleFunc("/admin/clients", s.handleUpdateClient).Methods(http.MethodPut).Name("updateClient")
	api.HandleFunc("/admin/clients/{id}", s.handleDeleteClient).Methods(http.MethodDelete).Name("deleteClient")

	api.HandleFunc("/admin-users", s.handleListAdmins).Methods(http.MethodGet).Name("listAdmins")
	api.HandleFunc("/admin-users", s.handleCreateAdmin).Methods(http.MethodPost).Name("createAdmin")
	api.HandleFunc("/admin-users/{id}", s.handleUpdateAdmin).Methods(http.MethodPut).Name("updateAdmin")
	api.HandleFunc("/admin-users/{id}", s.handleDeleteAdmin).Methods(http.MethodDelete).Name("deleteAdmin")

	api.HandleFunc("/admin/activities", s.handleActivities).Methods(http.MethodGet).Name("activities")

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

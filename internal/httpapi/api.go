// Package httpapi is the HTTP surface of the order-management service.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/offineeds/oms/internal/access"
	"github.com/offineeds/oms/internal/identity"
	"github.com/offineeds/oms/internal/obs"
	"github.com/offineeds/oms/internal/records"
	"github.com/offineeds/oms/internal/session"
)

// ReadyProbe reports whether downstream dependencies are reachable.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// AccessResolver is the capability-resolution boundary the handlers use.
type AccessResolver interface {
	UserWithAccess(ctx context.Context, userID string) (*access.UserWithAccess, error)
	UserAccessByEmail(ctx context.Context, email string) (*access.UserWithAccess, error)
	AllUsersWithAccess(ctx context.Context) ([]*access.UserWithAccess, error)
	Roles(ctx context.Context) ([]access.RoleRecord, error)
	Modules(ctx context.Context) ([]access.ModuleRecord, error)
	CreateUserAccess(ctx context.Context, userID string, roleID int64, moduleIDs []int64, level access.Level, createdBy string) error
	UpdateUserAccess(ctx context.Context, userID string, moduleID int64, level access.Level, updatedBy string) error
	DeleteUserAccess(ctx context.Context, userID string, moduleID *int64) error
	DefaultAccessForRole(role string) access.DefaultAccess
}

// RecordService is the records boundary the handlers use.
type RecordService interface {
	ListJobCards(ctx context.Context) ([]records.JobCard, error)
	GetJobCard(ctx context.Context, id string) (records.JobCard, error)
	CreateJobCard(ctx context.Context, jc records.JobCard) (records.JobCard, error)
	UpdateJobCard(ctx context.Context, id string, upd records.JobCardUpdate, updatedBy string) (records.JobCard, error)
	DeleteJobCard(ctx context.Context, id string) error

	ListPurchaseOrders(ctx context.Context) ([]records.PurchaseOrder, error)
	CreatePurchaseOrder(ctx context.Context, po records.PurchaseOrder) (records.PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, id string, upd records.PurchaseOrderUpdate, updatedBy string) (records.PurchaseOrder, error)
	DeletePurchaseOrder(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]records.Product, error)
	CreateProduct(ctx context.Context, p records.Product) (records.Product, error)
	UpdateProduct(ctx context.Context, slNo int64, upd records.ProductUpdate, updatedBy string) (records.Product, error)
	DeleteProduct(ctx context.Context, slNo int64) error

	ListReturnItems(ctx context.Context) ([]records.ReturnItem, error)
	CreateReturnItem(ctx context.Context, item records.ReturnItem) (records.ReturnItem, error)
	UpdateReturnItem(ctx context.Context, id string, upd records.ReturnItemUpdate, updatedBy string) (records.ReturnItem, error)
	DeleteReturnItem(ctx context.Context, id string) error

	ListReadyItems(ctx context.Context) ([]records.ReadyItem, error)
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string
	log        *zerolog.Logger

	sessions *session.Manager
	provider identity.Provider
	resolver AccessResolver
	recs     RecordService
}

// Config bundles the API's dependencies.
type Config struct {
	ReadyProbe ReadyProbe
	Version    string
	Sessions   *session.Manager
	Provider   identity.Provider
	Resolver   AccessResolver
	Records    RecordService
	Logger     *zerolog.Logger
}

func New(cfg Config) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: cfg.ReadyProbe,
		version:    cfg.Version,
		log:        cfg.Logger,
		sessions:   cfg.Sessions,
		provider:   cfg.Provider,
		resolver:   cfg.Resolver,
		recs:       cfg.Records,
	}
	if a.log == nil {
		a.log = obs.Logger()
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// auth
	a.mux.HandleFunc("/v1/auth/login", a.handleLogin)
	a.mux.HandleFunc("/v1/auth/register", a.handleRegister)
	a.mux.HandleFunc("/v1/auth/logout", a.handleLogout)
	a.mux.HandleFunc("/v1/auth/session", a.handleSession)

	// access resolution and grant management
	a.mux.HandleFunc("/v1/access/roles", a.handleRoles)
	a.mux.HandleFunc("/v1/access/modules", a.handleModules)
	a.mux.HandleFunc("/v1/access/users", a.handleAccessUsers)
	a.mux.HandleFunc("/v1/access/users/", a.handleAccessUserResource)

	// page records
	a.mux.HandleFunc("/v1/job-cards", a.handleJobCards)
	a.mux.HandleFunc("/v1/job-cards/", a.handleJobCardResource)
	a.mux.HandleFunc("/v1/purchase-orders", a.handlePurchaseOrders)
	a.mux.HandleFunc("/v1/purchase-orders/", a.handlePurchaseOrderResource)
	a.mux.HandleFunc("/v1/products", a.handleProducts)
	a.mux.HandleFunc("/v1/products/", a.handleProductResource)
	a.mux.HandleFunc("/v1/return-inventory", a.handleReturnInventory)
	a.mux.HandleFunc("/v1/return-inventory/", a.handleReturnItemResource)
	a.mux.HandleFunc("/v1/ready-inventory", a.handleReadyInventory)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped handler for the server.
func (a *API) Handler() http.Handler {
	h := a.withAuth(a.mux)
	h = MaxBodyBytes(h, 1<<20)
	h = RateLimit(h, 50, 25)
	h = CORS(h)
	h = SecurityHeaders(h)
	// RequestID must wrap Logging so the access log sees the assigned id.
	h = Logging(a.log, h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "oms-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "oms-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

package replica

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vrmarket/vrmarket/internal/candid"
	"github.com/vrmarket/vrmarket/internal/identity"
	"github.com/vrmarket/vrmarket/internal/logging"
)

type ctxKey int

const principalKey ctxKey = iota

// callerPrincipal returns the authenticated principal for the request,
// or the anonymous principal when the caller sent no credential.
func callerPrincipal(ctx context.Context) string {
	if p, isStr := ctx.Value(principalKey).(string); isStr && p != "" {
		return p
	}
	return identity.AnonymousPrincipal
}

// Server routes canister calls to the registered canisters.
type Server struct {
	canisters map[string]Canister
	logger    logging.Logger
	metrics   *Metrics
	limiter   *RateLimiter
}

// NewServer wires the three canisters onto a shared store. Metrics and
// rate limiting are optional; pass nil to disable them.
func NewServer(store *Store, logger logging.Logger, metrics *Metrics, limiter *RateLimiter) *Server {
	return &Server{
		canisters: map[string]Canister{
			"assets":      NewAssetsCanister(store),
			"marketplace": NewMarketplaceCanister(store),
			"users":       NewUsersCanister(store),
		},
		logger:  logger,
		metrics: metrics,
		limiter: limiter,
	}
}

// Register adds a canister under an extra id, e.g. a deployed canister
// id alongside the well-known name.
func (s *Server) Register(id string, c Canister) {
	s.canisters[id] = c
}

// Handler builds the replica's HTTP API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.authMiddleware)
	if s.limiter != nil {
		r.Use(s.limiter.Middleware)
	}

	r.Post("/api/v1/canister/{canister}/{kind}/{method}", s.handleCall)
	return r
}

// authMiddleware resolves the bearer token to a principal. Requests
// without a token run as the anonymous principal; a token that fails
// verification is rejected outright.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := identity.AnonymousPrincipal
		if auth := r.Header.Get("Authorization"); auth != "" {
			token, found := strings.CutPrefix(auth, "Bearer ")
			if !found {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}
			verified, err := identity.VerifyCredential(token)
			if err != nil {
				s.logger.Warn(r.Context(), "credential rejected", "error", err)
				http.Error(w, "invalid credential", http.StatusUnauthorized)
				return
			}
			principal = verified
		}
		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	canisterID := chi.URLParam(r, "canister")
	kind := chi.URLParam(r, "kind")
	method := chi.URLParam(r, "method")

	canister, found := s.canisters[canisterID]
	if !found {
		http.Error(w, fmt.Sprintf("unknown canister %q", canisterID), http.StatusNotFound)
		return
	}
	if kind != "call" && kind != "query" {
		http.Error(w, fmt.Sprintf("unknown call kind %q", kind), http.StatusBadRequest)
		return
	}

	args, err := decodeArgs(r.Body)
	if err != nil {
		http.Error(w, "malformed arguments: "+err.Error(), http.StatusBadRequest)
		return
	}

	caller := callerPrincipal(r.Context())
	start := time.Now()
	result, err := canister.Invoke(caller, kind, method, args)
	if err != nil {
		s.record(canisterID, method, "reject", start)
		if errors.Is(err, errUnknownMethod) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error(r.Context(), "canister call failed",
			"canister", canisterID, "method", method, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.record(canisterID, method, outcome(result), start)

	s.logger.Debug(r.Context(), "canister call",
		"canister", canisterID, "method", method, "kind", kind, "caller", caller)

	body, err := candid.Encode(result)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (s *Server) record(canister, method, outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordCall(canister, method, outcome, time.Since(start))
	}
}

func decodeArgs(body io.Reader) ([]any, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	v, err := candid.Decode(data)
	if err != nil {
		return nil, err
	}
	args, isList := candid.Normalize(v).([]any)
	if !isList {
		return nil, errors.New("arguments must be a list")
	}
	return args, nil
}

func outcome(result any) string {
	if m, isMap := result.(map[string]any); isMap {
		if _, failed := m["err"]; failed {
			return "err"
		}
	}
	return "ok"
}

// Package agent is the gateway between domain services and the remote
// canisters. It binds outgoing requests to the current session identity,
// unwraps the ok/err response envelope, normalizes wire numbers, and offers
// batch and retry helpers on top of single calls.
package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vrmarket/vrmarket/internal/candid"
	"github.com/vrmarket/vrmarket/internal/identity"
	"github.com/vrmarket/vrmarket/internal/logging"
)

// CallKind distinguishes state-changing calls from read-only queries.
type CallKind string

const (
	KindCall  CallKind = "call"
	KindQuery CallKind = "query"
)

// Request is one canister invocation as handed to the transport.
type Request struct {
	CanisterID string
	Method     string
	Kind       CallKind
	Args       []any
	Token      string
}

// Transport delivers a request to a replica and returns the decoded
// response value, envelope still intact.
type Transport interface {
	Invoke(ctx context.Context, req Request) (any, error)
}

// Agent routes canister calls for a set of named actors. An actor is a
// registered (name, canister id) pair; updates require a bound credential,
// queries only need the actor. Safe for concurrent use.
type Agent struct {
	transport Transport
	logger    logging.Logger

	mu     sync.RWMutex
	actors map[string]string
	cred   *identity.Credential

	// backoff is the delay before retry attempt n (0-based). Overridable
	// in tests.
	backoff func(attempt int) time.Duration
}

func New(t Transport, logger logging.Logger) *Agent {
	return &Agent{
		transport: t,
		logger:    logger,
		actors:    make(map[string]string),
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * time.Second
		},
	}
}

// RegisterActor binds a short actor name to a canister id.
func (a *Agent) RegisterActor(name, canisterID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actors[name] = canisterID
}

// Bind attaches a session credential; subsequent calls go out as that
// principal. A later Bind replaces the previous credential.
func (a *Agent) Bind(cred *identity.Credential) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cred = cred
}

// Reset drops the bound credential, returning the agent to anonymous.
func (a *Agent) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cred = nil
}

// Authenticated reports whether a credential is currently bound.
func (a *Agent) Authenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cred != nil
}

// Principal returns the bound principal, or the anonymous principal.
func (a *Agent) Principal() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.cred == nil {
		return identity.AnonymousPrincipal
	}
	return a.cred.Principal
}

func (a *Agent) snapshot(actor string) (canisterID, token string, bound bool, err error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, ok := a.actors[actor]
	if !ok {
		return "", "", false, fmt.Errorf("%w: %s", ErrActorNotFound, actor)
	}
	if a.cred != nil {
		return id, a.cred.Token, true, nil
	}
	return id, "", false, nil
}

// Call invokes a state-changing canister method. It fails with
// ErrNotAuthenticated before touching the network when no credential is
// bound.
func (a *Agent) Call(ctx context.Context, actor, method string, args ...any) (any, error) {
	id, token, bound, err := a.snapshot(actor)
	if err != nil {
		return nil, err
	}
	if !bound {
		return nil, ErrNotAuthenticated
	}
	return a.invoke(ctx, Request{CanisterID: id, Method: method, Kind: KindCall, Args: args, Token: token})
}

// Query invokes a read-only canister method. No credential is required,
// but a bound one still travels with the request so identity-aware queries
// see the caller's principal.
func (a *Agent) Query(ctx context.Context, actor, method string, args ...any) (any, error) {
	id, token, _, err := a.snapshot(actor)
	if err != nil {
		return nil, err
	}
	return a.invoke(ctx, Request{CanisterID: id, Method: method, Kind: KindQuery, Args: args, Token: token})
}

func (a *Agent) invoke(ctx context.Context, req Request) (any, error) {
	v, err := a.transport.Invoke(ctx, req)
	if err != nil {
		a.logger.Debug(ctx, "canister request failed", "method", req.Method, "error", err.Error())
		return nil, err
	}
	return unwrap(v)
}

// unwrap strips the ok/err result envelope. Values without an envelope pass
// through untouched; both branches are normalized so callers never see wire
// integers.
func unwrap(v any) (any, error) {
	r, ok := candid.AsRecord(v)
	if !ok {
		return candid.Normalize(v), nil
	}
	if okv, found := r["ok"]; found {
		return candid.Normalize(okv), nil
	}
	if errv, found := r["err"]; found {
		return nil, parseRemote(candid.Normalize(errv))
	}
	return candid.Normalize(v), nil
}

// BatchCall is one element of a Batch invocation.
type BatchCall struct {
	Actor  string
	Method string
	Kind   CallKind
	Args   []any
}

// BatchResult reports the outcome of one BatchCall. Failures do not abort
// the batch; each element settles independently.
type BatchResult struct {
	BatchCall
	Success bool
	Data    any
	Err     error
}

// Batch runs the calls concurrently and returns results in input order once
// every call has settled.
func (a *Agent) Batch(ctx context.Context, calls []BatchCall) []BatchResult {
	results := make([]BatchResult, len(calls))
	var wg sync.WaitGroup
	for i, c := range calls {
		wg.Add(1)
		go func(i int, c BatchCall) {
			defer wg.Done()
			var (
				v   any
				err error
			)
			if c.Kind == KindQuery {
				v, err = a.Query(ctx, c.Actor, c.Method, c.Args...)
			} else {
				v, err = a.Call(ctx, c.Actor, c.Method, c.Args...)
			}
			results[i] = BatchResult{BatchCall: c, Success: err == nil, Data: v, Err: err}
		}(i, c)
	}
	wg.Wait()
	return results
}

// Retry repeats a Call up to maxRetries times with exponential backoff
// between attempts. The last error is returned when every attempt fails;
// context cancellation stops the loop early.
func (a *Agent) Retry(ctx context.Context, actor, method string, maxRetries int, args ...any) (any, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		v, err := a.Call(ctx, actor, method, args...)
		if err == nil {
			return v, nil
		}
		lastErr = err
		a.logger.Debug(ctx, "retry attempt failed", "method", method, "attempt", attempt+1, "error", err.Error())

		if attempt < maxRetries-1 {
			select {
			case <-time.After(a.backoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

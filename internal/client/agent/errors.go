package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vrmarket/vrmarket/internal/candid"
)

var (
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrActorNotFound    = errors.New("actor not found")
)

// Kind identifies a canister-side failure variant.
type Kind string

const (
	KindNotFound          Kind = "NotFound"
	KindUnauthorized      Kind = "Unauthorized"
	KindBadRequest        Kind = "BadRequest"
	KindInternalError     Kind = "InternalError"
	KindInsufficientFunds Kind = "InsufficientFunds"
	KindAssetNotForSale   Kind = "AssetNotForSale"
	KindAlreadyOwned      Kind = "AlreadyOwned"
	KindUnknown           Kind = "Unknown"
)

// RemoteError is a rejection decoded from a canister's err envelope.
type RemoteError struct {
	Kind    Kind
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// parseRemote turns the err payload of a response envelope into a
// RemoteError. Payloads are either plain strings or single-tag variants,
// where BadRequest and InternalError carry a message.
func parseRemote(v any) *RemoteError {
	if s, ok := v.(string); ok {
		return &RemoteError{Kind: KindUnknown, Message: s}
	}

	if r, ok := candid.AsRecord(v); ok {
		pick := func(k Kind) (any, bool) {
			p, ok := r[string(k)]
			return p, ok
		}
		if _, ok := pick(KindNotFound); ok {
			return &RemoteError{Kind: KindNotFound, Message: "Resource not found"}
		}
		if _, ok := pick(KindUnauthorized); ok {
			return &RemoteError{Kind: KindUnauthorized, Message: "Unauthorized access"}
		}
		if p, ok := pick(KindBadRequest); ok {
			return &RemoteError{Kind: KindBadRequest, Message: messageOr(p, "Bad request")}
		}
		if p, ok := pick(KindInternalError); ok {
			return &RemoteError{Kind: KindInternalError, Message: messageOr(p, "Internal error")}
		}
		if _, ok := pick(KindInsufficientFunds); ok {
			return &RemoteError{Kind: KindInsufficientFunds, Message: "Insufficient funds"}
		}
		if _, ok := pick(KindAssetNotForSale); ok {
			return &RemoteError{Kind: KindAssetNotForSale, Message: "Asset not for sale"}
		}
		if _, ok := pick(KindAlreadyOwned); ok {
			return &RemoteError{Kind: KindAlreadyOwned, Message: "Asset already owned"}
		}
	}

	return &RemoteError{Kind: KindUnknown, Message: "Unknown error occurred"}
}

func messageOr(payload any, fallback string) string {
	if s, ok := payload.(string); ok && s != "" {
		return s
	}
	return fallback
}

// RemoteErrorf builds a BadRequest-style remote error; the replica uses it
// when rejecting malformed requests before they reach a canister method.
func RemoteErrorf(k Kind, format string, args ...any) *RemoteError {
	return &RemoteError{Kind: k, Message: fmt.Sprintf(format, args...)}
}

var userMessages = map[string]string{
	"Unauthorized access": "Please sign in to continue",
	"Resource not found":  "The requested item was not found",
	"Insufficient funds":  "You don't have enough ICP for this transaction",
	"Asset not for sale":  "This asset is not currently available for purchase",
	"Asset already owned": "You already own this asset",
}

// UserMessage maps an error to the message shown to the user. Known remote
// rejections get a friendlier phrasing; anything else passes through.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if friendly, ok := userMessages[msg]; ok {
		return friendly
	}
	if msg == "" {
		return "An unexpected error occurred"
	}
	return msg
}

// IsNetworkError reports whether err looks like a transport-level failure
// rather than a canister rejection.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "network") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "fetch")
}

// IsAuthError reports whether err indicates the user needs to sign in.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "authentication") ||
		strings.Contains(msg, "login")
}

// IsKind reports whether err is a remote rejection of the given kind.
func IsKind(err error, k Kind) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == k
}

package replica

// apiError mirrors the error variants canisters report through the err
// branch of a response envelope. Tag-only variants render as {Tag: null},
// BadRequest and InternalError carry their message.
type apiError struct {
	tag string
	msg string
}

func (e *apiError) Error() string {
	if e.msg != "" {
		return e.tag + ": " + e.msg
	}
	return e.tag
}

func (e *apiError) wire() map[string]any {
	switch e.tag {
	case "BadRequest", "InternalError":
		return map[string]any{e.tag: e.msg}
	default:
		return map[string]any{e.tag: nil}
	}
}

func errNotFound() *apiError     { return &apiError{tag: "NotFound"} }
func errUnauthorized() *apiError { return &apiError{tag: "Unauthorized"} }
func errBadRequest(msg string) *apiError {
	return &apiError{tag: "BadRequest", msg: msg}
}
func errInternal(msg string) *apiError {
	return &apiError{tag: "InternalError", msg: msg}
}
func errInsufficientFunds() *apiError { return &apiError{tag: "InsufficientFunds"} }
func errNotForSale() *apiError        { return &apiError{tag: "AssetNotForSale"} }
func errAlreadyOwned() *apiError      { return &apiError{tag: "AlreadyOwned"} }

// envelope helpers shared by every canister method.
func ok(v any) map[string]any         { return map[string]any{"ok": v} }
func fail(e *apiError) map[string]any { return map[string]any{"err": e.wire()} }

package agent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vrmarket/vrmarket/internal/candid"
)

// HTTPTransport talks to a replica's HTTP interface. Requests go out as
//
//	POST {host}/api/v1/canister/{id}/{call|query}/{method}
//
// with the method arguments as a JSON array body and the session token, when
// present, as a bearer token.
type HTTPTransport struct {
	host   string
	client *http.Client
}

func NewHTTPTransport(host string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{host: host, client: client}
}

func (t *HTTPTransport) Invoke(ctx context.Context, req Request) (any, error) {
	args := req.Args
	if args == nil {
		args = []any{}
	}
	body, err := candid.Encode(args)
	if err != nil {
		return nil, fmt.Errorf("encoding arguments: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/canister/%s/%s/%s", t.host, req.CanisterID, req.Kind, req.Method)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("network request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("replica rejected %s.%s: %s: %s",
			req.CanisterID, req.Method, resp.Status, bytes.TrimSpace(data))
	}

	v, err := candid.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return v, nil
}

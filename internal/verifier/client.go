package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"hposconfig/internal/encoding"
)

// Client talks to a verification server.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a client for the server at base, e.g. http://host:8080.
func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: base, HTTP: httpClient}
}

// Verify asks the server whether sig signs message. With windowed set,
// message is the payload of a time-window signature.
func (c *Client) Verify(ctx context.Context, message []byte, sig string, windowed bool) (bool, error) {
	var out VerifyResponse
	err := c.post(ctx, "/verify", VerifyRequest{
		Message:   encoding.B64(message),
		Signature: sig,
		Windowed:  windowed,
	}, &out)
	return out.Valid, err
}

// Admin fetches the server's admin public key.
func (c *Client) Admin(ctx context.Context) (AdminResponse, error) {
	var out AdminResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/admin", nil)
	if err != nil {
		return out, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return out, fmt.Errorf("verifier get /admin: %s", resp.Status)
	}
	return out, json.NewDecoder(resp.Body).Decode(&out)
}

func (c *Client) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("verifier post %s: %s", path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Package tutor talks to a hosted language model that explains the lean
// dynamics behind the simulator. It never touches simulation state.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
	defaultTimeout = 60 * time.Second
	maxReplyBytes  = 1 << 20
)

var (
	ErrNoAPIKey   = errors.New("tutor: API key is missing")
	ErrNetwork    = errors.New("tutor: network unavailable")
	ErrEmptyReply = errors.New("tutor: empty reply")
)

// SystemInstruction frames every conversation.
const SystemInstruction = `You are a professor of vehicle dynamics and control theory.
The student wants to understand how a two-wheeled vehicle balances itself.
Explain using the linearized lean equation

    phi'' = (g/h) * phi + (V^2 / (h*b)) * delta

where phi is the lean angle (positive leans right), delta is the steering
angle and the control input, V is the speed, h the height of the centre of
mass, b the wheelbase and g gravity.

Gravity torque is M_g ~ m*g*h*phi and the lateral tyre torque is
M_c ~ m*h*(V^2/b)*delta. The turn radius is R ~ b/delta, so the lateral
force is F_y = m*V^2/R.

Teaching points:
1. Steering into the lean: a right lean grows under gravity, so the rider
   steers right and the centrifugal term pushes the bike back up.
2. Micro-corrections: while riding straight phi wobbles around zero and the
   controller keeps nudging delta so that M_c cancels M_g.
3. Speed: delta is multiplied by V^2, so at high speed tiny steering inputs
   are enough.

Write formulas in plain text that reads well in a terminal.`

// Client sends one user turn and returns the model's reply.
type Client interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL points the client at another endpoint.
func WithBaseURL(u string) Option {
	return func(c *HTTPClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithModel selects the model name.
func WithModel(m string) Option {
	return func(c *HTTPClient) { c.model = m }
}

// WithHTTPClient replaces the transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// HTTPClient is a chat over the generateContent REST endpoint. It keeps the
// conversation so follow-up questions have context. Safe for concurrent use.
type HTTPClient struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client

	mu      sync.Mutex
	history []content
}

// NewHTTPClient returns a client for apiKey.
func NewHTTPClient(apiKey string, opts ...Option) (*HTTPClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	c := &HTTPClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromEnv reads the key from GEMINI_API_KEY, falling back to API_KEY.
func NewFromEnv(opts ...Option) (*HTTPClient, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		key = os.Getenv("API_KEY")
	}
	return NewHTTPClient(key, opts...)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction content   `json:"systemInstruction"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// SendMessage posts text with the conversation so far. Failed turns are
// not added to the history.
func (c *HTTPClient) SendMessage(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user := content{Role: string(RoleUser), Parts: []part{{Text: text}}}
	body, err := json.Marshal(generateRequest{
		SystemInstruction: content{Parts: []part{{Text: SystemInstruction}}},
		Contents:          append(append([]content(nil), c.history...), user),
	})
	if err != nil {
		return "", fmt.Errorf("tutor: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("tutor: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read reply: %v", ErrNetwork, err)
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: %s: %s", ErrNetwork, resp.Status, strings.TrimSpace(string(raw)))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("tutor: decode reply: %w", err)
	}
	reply := out.text()
	if reply == "" {
		return "", ErrEmptyReply
	}

	c.history = append(c.history, user, content{Role: string(RoleModel), Parts: []part{{Text: reply}}})
	return reply, nil
}

// Reset forgets the conversation.
func (c *HTTPClient) Reset() {
	c.mu.Lock()
	c.history = nil
	c.mu.Unlock()
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

// Package authclient talks to the authentication service. Responses use a
// success envelope rather than HTTP status codes to signal rejection, so the
// client decodes first and inspects the envelope.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meetingmind/meetingmind/internal/config"
	"github.com/meetingmind/meetingmind/internal/model"
)

// Client issues requests against the auth API base path.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for the given base URL (e.g. http://localhost:5000/api).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// envelope is the auth service's uniform response shape. Data is only
// populated on a successful login.
type envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    *loginData `json:"data"`
}

type loginData struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// fallbackRejection is used when the server declines without a message.
const fallbackRejection = "Request failed"

// Login exchanges credentials for a session. A declined login comes back as
// *model.RemoteRejection carrying the server's wording; unreachable or
// non-JSON responses come back as *model.TransportFailure.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	env, err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &model.RemoteRejection{Message: rejectionMessage(env)}
	}
	if env.Data == nil || env.Data.Token == "" {
		return nil, &model.TransportFailure{Err: fmt.Errorf("success response missing token")}
	}
	return &model.Session{Token: env.Data.Token, User: env.Data.User}, nil
}

// Register creates an account. It never returns a session: the caller logs
// in separately.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	env, err := c.post(ctx, "/auth/register", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	if !env.Success {
		return &model.RemoteRejection{Message: rejectionMessage(env)}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &model.TransportFailure{Err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &model.TransportFailure{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	log := config.Logger.WithField("request_id", requestID)
	log.Debugf("POST %s%s", c.baseURL, path)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debugf("auth request failed: %v", err)
		return nil, &model.TransportFailure{Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Debugf("auth response decode failed: %v", err)
		return nil, &model.TransportFailure{Err: fmt.Errorf("decode response: %w", err)}
	}
	log.Debugf("auth response: success=%t status=%d", env.Success, resp.StatusCode)
	return &env, nil
}

func rejectionMessage(env *envelope) string {
	if env.Message != "" {
		return env.Message
	}
	return fallbackRejection
}

package openlist

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
)

// passwordHashSuffix is the fixed salt the service applies before hashing;
// the login endpoint only accepts the hashed form.
const passwordHashSuffix = "-https://github.com/alist-org/alist"

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + passwordHashSuffix))
	return hex.EncodeToString(sum[:])
}

// GetMe resolves the identity behind the current session. It exercises the
// full auth path, so callers use it as a cheap session check before heavier
// work.
func (c *Client) GetMe(ctx context.Context) (domain.User, error) {
	var data meData
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, nil, &data); err != nil {
		return domain.User{}, err
	}
	return data.toDomain(), nil
}

// ensureToken makes sure a session token exists. In api-key mode the key is
// the token and nothing is ever fetched.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.currentToken() != "" {
		return nil
	}
	return c.login(ctx)
}

// login authenticates with username/password and stores the returned token.
// A rejected login is an AuthError; an unreachable service is a
// TransportError.
func (c *Client) login(ctx context.Context) error {
	payload, err := json.Marshal(loginRequest{
		Username: c.username,
		Password: hashPassword(c.password),
		OTPCode:  "",
	})
	if err != nil {
		return &domain.TransportError{Op: "encode login body", Err: err}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login/hash", bytes.NewReader(payload))
	if err != nil {
		return &domain.TransportError{Op: "create login request", Err: err}
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &domain.TransportError{Op: "POST /api/auth/login/hash", Err: err}
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return &domain.TransportError{Op: "read login response", Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &domain.TransportError{
			Op:  fmt.Sprintf("decode login envelope (status %d)", response.StatusCode),
			Err: err,
		}
	}

	if env.Code != http.StatusOK {
		return &domain.AuthError{
			Reason: "login rejected",
			Err:    &domain.RemoteError{Code: env.Code, Message: env.Message},
		}
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		return &domain.AuthError{Reason: "login response carried no token", Err: err}
	}

	c.mu.Lock()
	c.token = data.Token
	c.mu.Unlock()

	return nil
}

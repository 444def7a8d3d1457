package gauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Scopes requested for every token: form body edits, Drive listing, and
// read-only spreadsheet access for the sheets input adapter.
var Scopes = []string{
	"https://www.googleapis.com/auth/forms.body",
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/spreadsheets.readonly",
}

const defaultTokenURL = "https://oauth2.googleapis.com/token"

var (
	ErrNoCredentials = errors.New("no usable google credentials")
	ErrTokenExchange = errors.New("token exchange failed")
)

// TokenSource yields a bearer access token for Google API calls.
// Implementations cache tokens and are safe for concurrent use.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken returns a fixed token. Used by tests and by serve mode when a
// token is injected from the environment.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoCredentials
	}
	return string(s), nil
}

// NewTokenSource picks a flow from the files on disk: a service-account key
// at credentialsPath wins; otherwise a stored authorized-user token at
// tokenPath is refreshed on demand.
func NewTokenSource(credentialsPath, tokenPath string) (TokenSource, error) {
	if credentialsPath != "" {
		raw, err := os.ReadFile(credentialsPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		if err == nil {
			var key serviceAccountKey
			if err := json.Unmarshal(raw, &key); err != nil {
				return nil, fmt.Errorf("parse credentials: %w", err)
			}
			if key.Type == "service_account" {
				return newServiceAccountSource(key)
			}
		}
	}
	if tokenPath != "" {
		raw, err := os.ReadFile(tokenPath)
		if err == nil {
			var tok userToken
			if err := json.Unmarshal(raw, &tok); err != nil {
				return nil, fmt.Errorf("parse token file: %w", err)
			}
			if tok.RefreshToken != "" {
				return newUserTokenSource(tok), nil
			}
		}
	}
	return nil, ErrNoCredentials
}

type serviceAccountKey struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

type userToken struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

type cachedToken struct {
	value   string
	expires time.Time
}

func (c cachedToken) valid() bool {
	return c.value != "" && time.Now().Before(c.expires.Add(-time.Minute))
}

// serviceAccountSource signs an RS256 JWT-bearer assertion with the key and
// trades it for an access token at the key's token endpoint.
type serviceAccountSource struct {
	key      serviceAccountKey
	tokenURL string
	http     *http.Client

	mu     sync.Mutex
	cached cachedToken
}

func newServiceAccountSource(key serviceAccountKey) (*serviceAccountSource, error) {
	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("%w: service account key missing client_email or private_key", ErrNoCredentials)
	}
	tokenURL := key.TokenURI
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	return &serviceAccountSource{
		key:      key,
		tokenURL: tokenURL,
		http:     &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (s *serviceAccountSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached.valid() {
		return s.cached.value, nil
	}

	rsaKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(s.key.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   s.key.ClientEmail,
		"scope": strings.Join(Scopes, " "),
		"aud":   s.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(rsaKey)
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	tok, err := exchange(ctx, s.http, s.tokenURL, form)
	if err != nil {
		return "", err
	}
	s.cached = tok
	return tok.value, nil
}

// userTokenSource refreshes a stored authorized-user token.
type userTokenSource struct {
	tok      userToken
	tokenURL string
	http     *http.Client

	mu     sync.Mutex
	cached cachedToken
}

func newUserTokenSource(tok userToken) *userTokenSource {
	return &userTokenSource{
		tok:      tok,
		tokenURL: defaultTokenURL,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *userTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached.valid() {
		return s.cached.value, nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", s.tok.ClientID)
	form.Set("client_secret", s.tok.ClientSecret)
	form.Set("refresh_token", s.tok.RefreshToken)

	tok, err := exchange(ctx, s.http, s.tokenURL, form)
	if err != nil {
		return "", err
	}
	s.cached = tok
	return tok.value, nil
}

func exchange(ctx context.Context, client *http.Client, tokenURL string, form url.Values) (cachedToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return cachedToken{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return cachedToken{}, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode/100 != 2 {
		return cachedToken{}, fmt.Errorf("%w: status %d: %s", ErrTokenExchange, resp.StatusCode, snippet(body))
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return cachedToken{}, fmt.Errorf("decode token response: %w", err)
	}
	if out.AccessToken == "" {
		return cachedToken{}, fmt.Errorf("%w: empty access_token", ErrTokenExchange)
	}
	if out.ExpiresIn <= 0 {
		out.ExpiresIn = 3600
	}
	return cachedToken{
		value:   out.AccessToken,
		expires: time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
	}, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 256 {
		s = s[:256] + "..."
	}
	return s
}

// Package googleauth implements the OAuth2 JWT bearer grant for Google
// service accounts, shared by the Sheets and Firebase clients.
package googleauth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	// TokenURL is Google's OAuth2 token endpoint.
	TokenURL = "https://oauth2.googleapis.com/token"

	grantType       = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionTTL    = time.Hour
	expiryMargin    = time.Minute
	requestDeadline = 15 * time.Second
)

// Credentials are the service-account fields needed to sign assertions.
type Credentials struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// LoadCredentials resolves credentials from, in order of precedence, a JSON
// blob, a JSON file path, or an email + PEM key pair.
func LoadCredentials(jsonBlob, jsonPath, clientEmail, privateKey string) (Credentials, error) {
	switch {
	case jsonBlob != "":
		var creds Credentials
		if err := json.Unmarshal([]byte(jsonBlob), &creds); err != nil {
			return Credentials{}, fmt.Errorf("parse service account json: %w", err)
		}
		return creds, creds.check()
	case jsonPath != "":
		raw, err := os.ReadFile(jsonPath)
		if err != nil {
			return Credentials{}, fmt.Errorf("read service account file: %w", err)
		}
		var creds Credentials
		if err := json.Unmarshal(raw, &creds); err != nil {
			return Credentials{}, fmt.Errorf("parse service account file: %w", err)
		}
		return creds, creds.check()
	case clientEmail != "" && privateKey != "":
		creds := Credentials{ClientEmail: clientEmail, PrivateKey: privateKey}
		return creds, creds.check()
	default:
		return Credentials{}, errors.New("service account credentials not configured")
	}
}

func (c Credentials) check() error {
	if c.ClientEmail == "" || c.PrivateKey == "" {
		return errors.New("service account credentials missing client_email or private_key")
	}
	return nil
}

// TokenSource mints and caches access tokens for one scope set. Safe for
// concurrent use.
type TokenSource struct {
	creds    Credentials
	scopes   []string
	key      *rsa.PrivateKey
	client   *http.Client
	tokenURL string

	mu     sync.Mutex
	token  string
	expiry time.Time
	now    func() time.Time
}

// NewTokenSource parses the signing key and returns a source for the scopes.
func NewTokenSource(creds Credentials, scopes ...string) (*TokenSource, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(creds.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	return &TokenSource{
		creds:    creds,
		scopes:   scopes,
		key:      key,
		client:   &http.Client{Timeout: requestDeadline},
		tokenURL: TokenURL,
		now:      time.Now,
	}, nil
}

// Token returns a live access token, reusing the cached one until shortly
// before expiry.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && ts.now().Before(ts.expiry.Add(-expiryMargin)) {
		return ts.token, nil
	}

	assertion, err := ts.signAssertion()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", grantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %s", resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", errors.New("token endpoint returned empty access token")
	}

	ts.token = body.AccessToken
	ts.expiry = ts.now().Add(time.Duration(body.ExpiresIn) * time.Second)
	return ts.token, nil
}

func (ts *TokenSource) signAssertion() (string, error) {
	now := ts.now()
	claims := jwt.MapClaims{
		"iss":   ts.creds.ClientEmail,
		"scope": strings.Join(ts.scopes, " "),
		"aud":   ts.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(ts.key)
}

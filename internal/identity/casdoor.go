package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/edubase/school-service/internal/config"
)

// CasdoorGateway implements Gateway against a Casdoor deployment.
type CasdoorGateway struct {
	client *casdoorsdk.Client
	config config.CasdoorConfig
	http   *http.Client

	mu        sync.Mutex
	observers map[int]func(*UserHandle)
	nextID    int
}

func NewCasdoorGateway(cfg config.CasdoorConfig) *CasdoorGateway {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return &CasdoorGateway{
		client:    client,
		config:    cfg,
		http:      &http.Client{Timeout: 10 * time.Second},
		observers: make(map[int]func(*UserHandle)),
	}
}

func (g *CasdoorGateway) SignUp(ctx context.Context, email, password string) (*Session, error) {
	user := &casdoorsdk.User{
		Owner:             g.config.Organization,
		Name:              usernameFromEmail(email),
		DisplayName:       usernameFromEmail(email),
		Email:             email,
		Password:          password,
		SignupApplication: g.config.Application,
	}
	ok, err := g.client.AddUser(user)
	if err != nil {
		return nil, &AuthError{Op: "signup", Err: err}
	}
	if !ok {
		return nil, &AuthError{Op: "signup", Err: fmt.Errorf("provider rejected registration for %s", email)}
	}

	// Match the original flow: a fresh registration yields a live session.
	return g.SignIn(ctx, email, password)
}

func (g *CasdoorGateway) SignIn(ctx context.Context, email, password string) (*Session, error) {
	token, err := g.passwordToken(ctx, email, password)
	if err != nil {
		return nil, &AuthError{Op: "signin", Err: err}
	}
	return g.sessionFromToken("signin", token)
}

func (g *CasdoorGateway) SignInWithProvider(ctx context.Context, code, state string) (*Session, error) {
	token, err := g.client.GetOAuthToken(code, state)
	if err != nil {
		return nil, &AuthError{Op: "provider signin", Err: err}
	}
	return g.sessionFromToken("provider signin", token.AccessToken)
}

// SignOut is client-side only: Casdoor JWTs are stateless, so the session
// ends by dropping the token and telling observers. See the Gateway contract.
func (g *CasdoorGateway) SignOut(ctx context.Context, handle UserHandle) error {
	g.notify(nil)
	return nil
}

func (g *CasdoorGateway) ParseToken(token string) (*UserHandle, error) {
	claims, err := g.client.ParseJwtToken(token)
	if err != nil {
		return nil, &AuthError{Op: "parse token", Err: err}
	}
	return handleFromUser(&claims.User), nil
}

func (g *CasdoorGateway) ObserveSession(callback func(*UserHandle)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	g.observers[id] = callback

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.observers, id)
	}
}

func (g *CasdoorGateway) sessionFromToken(op, accessToken string) (*Session, error) {
	claims, err := g.client.ParseJwtToken(accessToken)
	if err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}

	handle := handleFromUser(&claims.User)
	g.notify(handle)

	return &Session{Handle: *handle, AccessToken: accessToken}, nil
}

// passwordToken performs the resource-owner-password token exchange. The SDK
// only wraps the authorization-code flow, so this one call speaks the token
// endpoint directly.
func (g *CasdoorGateway) passwordToken(ctx context.Context, email, password string) (string, error) {
	form := url.Values{
		"grant_type":    {"password"},
		"client_id":     {g.config.ClientID},
		"client_secret": {g.config.ClientSecret},
		"username":      {email},
		"password":      {password},
	}

	endpoint := strings.TrimRight(g.config.Endpoint, "/") + "/api/login/oauth/access_token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var result struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("malformed token response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("%s: %s", result.Error, result.ErrorDescription)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token (status %d)", resp.StatusCode)
	}
	return result.AccessToken, nil
}

func (g *CasdoorGateway) notify(handle *UserHandle) {
	g.mu.Lock()
	observers := make([]func(*UserHandle), 0, len(g.observers))
	for _, cb := range g.observers {
		observers = append(observers, cb)
	}
	g.mu.Unlock()

	for _, cb := range observers {
		cb(handle)
	}
}

func handleFromUser(user *casdoorsdk.User) *UserHandle {
	return &UserHandle{
		ID:          user.Id,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}
}

func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

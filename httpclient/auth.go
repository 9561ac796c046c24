package httpclient

import "net/http"

// AuthType identifies how credentials are attached to a request.
type AuthType int

const (
	AuthNone AuthType = iota
	// AuthBearer sends "Authorization: Bearer <Token>", as an Ollama
	// instance behind an authenticating proxy expects.
	AuthBearer
	// AuthAPIKey sends Key in the Header header. Keys never go in the
	// query string, where access logs would keep them.
	AuthAPIKey
)

// AuthConfig configures request authentication. A nil *AuthConfig sends
// nothing.
type AuthConfig struct {
	Type   AuthType
	Token  string
	Key    string
	Header string
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// APIKeyAuthHeader creates an API key auth config sent in header.
func APIKeyAuthHeader(key, header string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, Header: header}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthAPIKey:
		req.Header.Set(a.Header, a.Key)
	}
}

package api

import (
	"net/http"
	"strings"
)

// StripBearer drops a leading "Bearer " so tokens can be pasted
// straight from an Authorization header.
func StripBearer(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}

// BearerTransport sets Authorization: Bearer <Token> on every request.
type BearerTransport struct {
	Token string
	Base  http.RoundTripper
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+t.Token)
	return base.RoundTrip(r)
}

// WithBearer returns a copy of hc whose requests carry token.
// An empty token returns hc unchanged.
func WithBearer(hc *http.Client, token string) *http.Client {
	token = StripBearer(token)
	if token == "" {
		return hc
	}
	c := *hc
	c.Transport = &BearerTransport{Token: token, Base: hc.Transport}
	return &c
}

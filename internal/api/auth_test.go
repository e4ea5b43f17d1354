package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "abc", StripBearer("Bearer abc"))
	assert.Equal(t, "abc", StripBearer("  bearer   abc "))
	assert.Equal(t, "abc", StripBearer("abc"))
	assert.Equal(t, "", StripBearer(""))
}

func TestNew_RESTSendsBearerToken(t *testing.T) {
	var got []string
	r := chi.NewRouter()
	r.Get("/api/months", func(w http.ResponseWriter, req *http.Request) {
		got = append(got, req.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"months":["2025-01"]}`)
	})
	srv := newServer(t, r)

	c, err := New(VariantREST, Endpoints{APIBase: srv.URL + "/api", APIToken: "Bearer s3cret"}, nil, nil)
	require.NoError(t, err)
	_, err = c.Months(context.Background())
	require.NoError(t, err)

	c, err = New(VariantREST, Endpoints{APIBase: srv.URL + "/api"}, nil, nil)
	require.NoError(t, err)
	_, err = c.Months(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer s3cret", ""}, got)
}

func TestWithBearer_CopiesClient(t *testing.T) {
	hc := &http.Client{}
	assert.Same(t, hc, WithBearer(hc, " "))

	wrapped := WithBearer(hc, "tok")
	assert.NotSame(t, hc, wrapped)
	assert.Nil(t, hc.Transport)
	require.IsType(t, &BearerTransport{}, wrapped.Transport)
	assert.Equal(t, "tok", wrapped.Transport.(*BearerTransport).Token)
}

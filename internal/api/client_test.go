package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storehub-console/pkg/config"
	pkgerrors "github.com/angelmondragon/storehub-console/pkg/errors"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(config.APIConfig{BaseURL: srv.URL}, staticTokens(token), nil, nil)
	require.NoError(t, err)
	return client, srv
}

func TestBearerAndRequestIDHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}), "tok-1")

	var out map[string]any
	require.NoError(t, client.Get(context.Background(), "users", "/user-management", nil, &out))
	require.Equal(t, "Bearer tok-1", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}), "")

	var out map[string]any
	require.NoError(t, client.Get(context.Background(), "users", "/roles", nil, &out))
	require.Empty(t, gotAuth)
}

func TestServerMessagePreferred(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"user does not exist"}`))
	}), "tok")

	err := client.Get(context.Background(), "users", "/user-management/abc", nil, nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	require.Equal(t, "user does not exist", typed.Message())
}

func TestEnvelopedErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"admins only"}}`))
	}), "tok")

	err := client.Get(context.Background(), "users", "/user-management", nil, nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
	require.Equal(t, "admins only", typed.Message())
}

func TestGenericFallbackWhenBodyUnusable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>nope</html>`))
	}), "tok")

	err := client.Get(context.Background(), "users", "/user-management", nil, nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUpstream, typed.Code())
	require.Equal(t, "server error, please try again", typed.Message())
}

func TestTransportFailure(t *testing.T) {
	client, err := NewClient(config.APIConfig{BaseURL: "http://127.0.0.1:1"}, staticTokens("tok"), nil, nil)
	require.NoError(t, err)

	callErr := client.Get(context.Background(), "users", "/user-management", nil, nil)
	require.True(t, pkgerrors.IsCode(callErr, pkgerrors.CodeTransport))
}

func TestContextCancellationAborts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}), "tok")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := client.Get(ctx, "users", "/user-management", nil, nil)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeTransport))
}

func TestQueryEncoding(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}), "tok")

	q := url.Values{}
	q.Set("page", "2")
	q.Set("search", "jane")
	var out map[string]any
	require.NoError(t, client.Get(context.Background(), "users", "/user-management", q, &out))
	require.Equal(t, "2", gotQuery.Get("page"))
	require.Equal(t, "jane", gotQuery.Get("search"))
}

func TestStreamCopiesBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("id,action\n1,login\n"))
	}), "tok")

	var buf bytes.Buffer
	require.NoError(t, client.Stream(context.Background(), "audit", "/audit-trail/export", nil, &buf))
	require.Equal(t, "id,action\n1,login\n", buf.String())
}

func TestDecodeFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{truncated`))
	}), "tok")

	var out map[string]any
	err := client.Get(context.Background(), "users", "/user-management", nil, &out)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDecode))
}

package posts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storehub-console/internal/api"
	"github.com/angelmondragon/storehub-console/pkg/config"
	pkgerrors "github.com/angelmondragon/storehub-console/pkg/errors"
)

func clientAgainst(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	core, err := api.NewClient(config.APIConfig{BaseURL: srv.URL}, nil, nil, nil)
	require.NoError(t, err)
	return NewClient(core)
}

func TestListPublishedFilter(t *testing.T) {
	var gotQuery string
	c := clientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(ListResult{Items: []Post{{ID: "p1", Title: "Hello"}}, Total: 1})
	})

	published := true
	result, err := c.List(context.Background(), ListParams{Published: &published})
	require.NoError(t, err)
	require.Contains(t, gotQuery, "published=true")
	require.Equal(t, "Hello", result.Items[0].Title)
}

func TestCreateValidation(t *testing.T) {
	c := clientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.Create(context.Background(), CreatePostInput{Title: "no content"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = c.Create(context.Background(), CreatePostInput{Title: "t", Content: "c", ThumbnailURL: "not a url"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateAndDelete(t *testing.T) {
	var gotMethod, gotPath string
	c := clientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		json.NewEncoder(w).Encode(Post{ID: "p1"})
	})

	_, err := c.Update(context.Background(), "p1", UpdatePostInput{Title: "new"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "/posts/p1", gotPath)

	require.NoError(t, c.Delete(context.Background(), "p1"))
	require.Equal(t, http.MethodDelete, gotMethod)
}

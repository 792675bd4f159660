package rankings

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

func TestOverview(t *testing.T) {
	c := clientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rankings", r.URL.Path)
		json.NewEncoder(w).Encode([]Tier{{ID: "t1", Name: "gold", MinPoints: 1000}})
	})

	tiers, err := c.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	require.Equal(t, "gold", tiers[0].Name)
}

func TestCustomerHistoryPathAndQuery(t *testing.T) {
	var gotPath, gotQuery string
	c := clientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]HistoryEntry{{Delta: 50}})
	})

	entries, err := c.CustomerHistory(context.Background(), "c1", HistoryParams{Page: 3, Limit: 25})
	require.NoError(t, err)
	require.Equal(t, "/customer-rankings/c1/history", gotPath)
	require.Contains(t, gotQuery, "page=3")
	require.Len(t, entries, 1)
}

func TestCustomerRequiresID(t *testing.T) {
	c := clientAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := c.Customer(context.Background(), "")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	_, err = c.CustomerHistory(context.Background(), "", HistoryParams{})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

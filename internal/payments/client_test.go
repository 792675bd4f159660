package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storehub-console/internal/api"
	"github.com/angelmondragon/storehub-console/pkg/config"
)

func TestUnpaidOrders(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"orderId":"o1","totalAmount":150000,"paymentLinkUrl":"https://pay.example.com/o1"}]`))
	}))
	t.Cleanup(srv.Close)

	core, err := api.NewClient(config.APIConfig{BaseURL: srv.URL}, nil, nil, nil)
	require.NoError(t, err)
	c := NewClient(core)

	orders, err := c.UnpaidOrders(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, "/payments/unpaid-orders", gotPath)
	require.Equal(t, "customer_id=c1", gotQuery)
	require.Len(t, orders, 1)
	require.Equal(t, "o1", orders[0].OrderID)
	require.Equal(t, "150000", orders[0].TotalAmount.String())
}

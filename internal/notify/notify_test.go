package notify

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "0 ₫"},
		{"999", "999 ₫"},
		{"1000", "1.000 ₫"},
		{"150000", "150.000 ₫"},
		{"1234567", "1.234.567 ₫"},
		{"150000.49", "150.000 ₫"},
		{"-25000", "-25.000 ₫"},
	}

	for _, tc := range cases {
		got := FormatAmount(decimal.RequireFromString(tc.amount))
		require.Equal(t, tc.want, got, "amount %s", tc.amount)
	}
}

func TestParseAndRender(t *testing.T) {
	payload := json.RawMessage(`{
		"orderId": "ORD-77",
		"totalAmount": 1250000,
		"paymentLinkUrl": "https://pay.example.com/ORD-77",
		"transactionId": "TX-1"
	}`)

	order, err := ParseUnpaidOrder(payload)
	require.NoError(t, err)
	require.Equal(t, "ORD-77", order.OrderID)

	msg := Render(order)
	require.Equal(t, "Order #ORD-77 is awaiting payment of 1.250.000 ₫. Pay at https://pay.example.com/ORD-77 [txn TX-1]", msg)
}

func TestRenderMinimalPayload(t *testing.T) {
	order, err := ParseUnpaidOrder(json.RawMessage(`{"totalAmount": 5000}`))
	require.NoError(t, err)
	require.Equal(t, "Order (unknown) is awaiting payment of 5.000 ₫.", Render(order))
}

func TestParseRejectsMalformedPayload(t *testing.T) {
	_, err := ParseUnpaidOrder(json.RawMessage(`{"totalAmount": "not a number"`))
	require.Error(t, err)
}

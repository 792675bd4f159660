package notify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// UnpaidOrder is the read-only projection pushed for orders awaiting
// payment. It is rendered, never mutated.
type UnpaidOrder struct {
	OrderID        string          `json:"orderId"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaymentLinkURL string          `json:"paymentLinkUrl,omitempty"`
	QRCodeURL      string          `json:"qrCodeUrl,omitempty"`
	TransactionID  string          `json:"transactionId,omitempty"`
}

// ParseUnpaidOrder decodes a notification payload.
func ParseUnpaidOrder(data json.RawMessage) (UnpaidOrder, error) {
	var order UnpaidOrder
	if err := json.Unmarshal(data, &order); err != nil {
		return UnpaidOrder{}, fmt.Errorf("decoding unpaid order payload: %w", err)
	}
	return order, nil
}

// FormatAmount renders an amount in Vietnamese dong: whole units, dot
// thousands separators, trailing currency sign.
func FormatAmount(amount decimal.Decimal) string {
	whole := amount.Round(0).String()
	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := strings.Join(groups, ".")
	if negative {
		formatted = "-" + formatted
	}
	return formatted + " ₫"
}

// Render produces the user-facing message for one unpaid order.
func Render(order UnpaidOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s is awaiting payment of %s.", displayID(order.OrderID), FormatAmount(order.TotalAmount))
	if order.PaymentLinkURL != "" {
		fmt.Fprintf(&b, " Pay at %s", order.PaymentLinkURL)
	}
	if order.QRCodeURL != "" {
		fmt.Fprintf(&b, " (QR: %s)", order.QRCodeURL)
	}
	if order.TransactionID != "" {
		fmt.Fprintf(&b, " [txn %s]", order.TransactionID)
	}
	return b.String()
}

func displayID(id string) string {
	if id == "" {
		return "(unknown)"
	}
	return "#" + id
}

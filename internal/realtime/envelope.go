package realtime

import "encoding/json"

// Wire events exchanged with the notification channel.
const (
	EventJoinCustomer    = "join:customer"
	EventNotificationNew = "notification:new"
)

// Envelope is the message frame on the realtime channel.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type joinPayload struct {
	CustomerID string `json:"customer_id"`
}

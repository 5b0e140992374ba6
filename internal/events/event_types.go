package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMessageReceived EventType = "message_received"
	EventMenuItemCreated EventType = "menu_item_created"
	EventMenuItemDeleted EventType = "menu_item_deleted"
	EventAssetUploaded   EventType = "asset_uploaded"
	EventAssetDeleted    EventType = "asset_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MessageReceivedPayload payload.
type MessageReceivedPayload struct {
	MessageID int64  `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Preview   string `json:"preview"`
}

// MenuItemPayload payload for menu item lifecycle events.
type MenuItemPayload struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

// AssetPayload payload for upload lifecycle events.
type AssetPayload struct {
	URL string `json:"url"`
}

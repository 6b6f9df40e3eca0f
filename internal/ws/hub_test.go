package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	ev := NewEvent(EventSaleRecorded, map[string]int{"quantity": 2}, "sold")

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, EventSaleRecorded, ev.Type)
	assert.False(t, ev.Timestamp.IsZero())

	other := NewEvent(EventSaleRecorded, nil, "")
	assert.NotEqual(t, ev.ID, other.ID)
}

func TestHub_PublishQueuesEncodedEvent(t *testing.T) {
	h := NewHub()

	h.Publish(NewEvent(EventProductDeleted, map[string]uint{"id": 4}, "deleted"))

	msg := <-h.Broadcast
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg, &decoded))
	assert.Equal(t, "product_deleted", decoded["type"])
	assert.Equal(t, "deleted", decoded["message"])
	assert.NotEmpty(t, decoded["id"])
}

func TestHub_PublishOnNilHub(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() { h.Publish(NewEvent(EventRestockAlert, nil, "")) })
}

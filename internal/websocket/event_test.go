package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotice(t *testing.T) {
	eventID := uuid.New()

	tests := []struct {
		resource string
		wantType string
	}{
		{"event", "event.changed"},
		{"category", "category.changed"},
		{"entry", "entry.changed"},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			notice := NewNotice(tt.resource, eventID)
			assert.Equal(t, tt.wantType, notice.Type)
			assert.Equal(t, eventID, notice.EventID)
			assert.WithinDuration(t, time.Now().UTC(), notice.Timestamp, time.Second)
		})
	}
}

func TestNotice_ToJSON(t *testing.T) {
	eventID := uuid.New()
	notice := NewNotice("entry", eventID)

	data, err := notice.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "entry.changed", decoded["type"])
	assert.Equal(t, eventID.String(), decoded["eventId"])
	assert.NotEmpty(t, decoded["timestamp"])
}

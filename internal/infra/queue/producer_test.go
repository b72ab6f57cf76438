package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadCreatedPayloadMarshalling(t *testing.T) {
	payload := LeadCreatedPayload{
		LeadID:    42,
		Name:      "Ivan",
		Phone:     "+7 999 123-45-67",
		Source:    "/landing",
		CreatedAt: "2026-08-30T12:00:00Z",
	}

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	var received LeadCreatedPayload
	require.NoError(t, json.Unmarshal(body, &received))

	assert.Equal(t, payload, received)
	assert.Contains(t, string(body), `"lead_id":42`)
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "verification_token": "abc-123",
  "message_id": "msg-1",
  "timestamp": "2024-09-22T10:00:00Z",
  "type": "Donation",
  "is_public": true,
  "from_name": "Jo",
  "message": "Keep it up!",
  "amount": "3.00",
  "url": "https://ko-fi.com/s/1",
  "email": "jo@example.com",
  "currency": "USD",
  "is_subscription_payment": false,
  "is_first_subscription_payment": false,
  "kofi_transaction_id": "tx-1",
  "shop_items": [{"direct_link_code": "abc"}],
  "tier_name": null,
  "shipping": null
}`

func TestWebhookPayload_Validate(t *testing.T) {
	var p WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &p))
	assert.NoError(t, p.Validate())

	p.MessageID = ""
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message_id")
}

func TestWebhookPayload_ToTransaction(t *testing.T) {
	var p WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &p))

	tx := p.ToTransaction()
	assert.Equal(t, "msg-1", tx.MessageID)
	assert.Equal(t, "abc-123", tx.VerificationToken)
	assert.Equal(t, "3.00", tx.Amount)

	// Structured fields keep their raw JSON text; explicit nulls become nil.
	require.NotNil(t, tx.ShopItems)
	assert.JSONEq(t, `[{"direct_link_code": "abc"}]`, *tx.ShopItems)
	assert.Nil(t, tx.TierName)
	assert.Nil(t, tx.Shipping)
}

package models

import (
	"encoding/json"
	"fmt"
)

// Transaction is one stored Ko-fi webhook event.
// Rows are immutable once stored; only user deletion cascades, the retention
// sweep and admin reconciliation ever touch them again.
type Transaction struct {
	MessageID                  string  `gorm:"column:message_id;primaryKey" json:"message_id"`
	VerificationToken          string  `gorm:"column:verification_token;index" json:"verification_token"`
	Timestamp                  string  `gorm:"column:timestamp" json:"timestamp"`
	Type                       string  `gorm:"column:type" json:"type"`
	IsPublic                   bool    `gorm:"column:is_public" json:"is_public"`
	FromName                   string  `gorm:"column:from_name" json:"from_name"`
	Message                    *string `gorm:"column:message" json:"message"`
	Amount                     string  `gorm:"column:amount" json:"amount"`
	URL                        string  `gorm:"column:url" json:"url"`
	Email                      string  `gorm:"column:email" json:"email"`
	Currency                   string  `gorm:"column:currency" json:"currency"`
	IsSubscriptionPayment      bool    `gorm:"column:is_subscription_payment" json:"is_subscription_payment"`
	IsFirstSubscriptionPayment bool    `gorm:"column:is_first_subscription_payment" json:"is_first_subscription_payment"`
	KofiTransactionID          string  `gorm:"column:kofi_transaction_id" json:"kofi_transaction_id"`
	ShopItems                  *string `gorm:"column:shop_items" json:"shop_items"`
	TierName                   *string `gorm:"column:tier_name" json:"tier_name"`
	Shipping                   *string `gorm:"column:shipping" json:"shipping"`
}

// TableName overrides the table name.
func (Transaction) TableName() string {
	return "kofi_transactions"
}

// WebhookPayload is the JSON document Ko-fi posts in the `data` form field,
// per the format described at https://ko-fi.com/manage/webhooks.
type WebhookPayload struct {
	VerificationToken          string          `json:"verification_token"`
	MessageID                  string          `json:"message_id"`
	Timestamp                  string          `json:"timestamp"`
	Type                       string          `json:"type"`
	IsPublic                   bool            `json:"is_public"`
	FromName                   string          `json:"from_name"`
	Message                    *string         `json:"message"`
	Amount                     string          `json:"amount"`
	URL                        string          `json:"url"`
	Email                      string          `json:"email"`
	Currency                   string          `json:"currency"`
	IsSubscriptionPayment      bool            `json:"is_subscription_payment"`
	IsFirstSubscriptionPayment bool            `json:"is_first_subscription_payment"`
	KofiTransactionID          string          `json:"kofi_transaction_id"`
	ShopItems                  json.RawMessage `json:"shop_items"`
	TierName                   *string         `json:"tier_name"`
	Shipping                   json.RawMessage `json:"shipping"`
}

// Validate checks the fields every Ko-fi event carries.
func (p WebhookPayload) Validate() error {
	required := map[string]string{
		"verification_token":  p.VerificationToken,
		"message_id":          p.MessageID,
		"timestamp":           p.Timestamp,
		"type":                p.Type,
		"amount":              p.Amount,
		"currency":            p.Currency,
		"kofi_transaction_id": p.KofiTransactionID,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("missing required field %s", name)
		}
	}
	return nil
}

// ToTransaction converts the payload into its storage form. The structured
// shop_items and shipping documents are kept as their raw JSON text.
func (p WebhookPayload) ToTransaction() Transaction {
	return Transaction{
		MessageID:                  p.MessageID,
		VerificationToken:          p.VerificationToken,
		Timestamp:                  p.Timestamp,
		Type:                       p.Type,
		IsPublic:                   p.IsPublic,
		FromName:                   p.FromName,
		Message:                    p.Message,
		Amount:                     p.Amount,
		URL:                        p.URL,
		Email:                      p.Email,
		Currency:                   p.Currency,
		IsSubscriptionPayment:      p.IsSubscriptionPayment,
		IsFirstSubscriptionPayment: p.IsFirstSubscriptionPayment,
		KofiTransactionID:          p.KofiTransactionID,
		ShopItems:                  rawJSONText(p.ShopItems),
		TierName:                   p.TierName,
		Shipping:                   rawJSONText(p.Shipping),
	}
}

func rawJSONText(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	s := string(raw)
	return &s
}

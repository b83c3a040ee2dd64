package controllers

import "github.com/linvex-software/lvx-ecommerce/internal/pkg/webhook"

// NewWebhookServiceForTest exposes newWebhookService to the external test
// package (controllers_test), which cannot reference unexported identifiers.
func NewWebhookServiceForTest() *webhook.Service {
	return newWebhookService()
}

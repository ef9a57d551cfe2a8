// Package router đăng ký route cho domain webhook.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "meta_engage/internal/api/router"
	webhookhdl "meta_engage/internal/api/webhook/handler"
)

// Register đăng ký endpoint webhook của nền tảng và route tra cứu webhook log
func Register(v1 fiber.Router, r *apirouter.Router) error {
	platformHandler, err := webhookhdl.NewPlatformWebhookHandler()
	if err != nil {
		return fmt.Errorf("failed to create platform webhook handler: %w", err)
	}
	logHandler, err := webhookhdl.NewWebhookLogHandler()
	if err != nil {
		return fmt.Errorf("failed to create webhook log handler: %w", err)
	}

	// Endpoint nền tảng gọi vào: GET verify subscription, POST event batch
	v1.Get("/webhook", platformHandler.HandleVerify)
	v1.Post("/webhook", platformHandler.HandleEvents)

	r.RegisterCRUDRoutes(v1, "/webhook-logs", logHandler, apirouter.ReadOnlyConfig)
	v1.Get("/webhook-logs/count-unprocessed", logHandler.HandleCountUnprocessed)

	return nil
}

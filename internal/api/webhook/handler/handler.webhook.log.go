package webhookhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "meta_engage/internal/api/base/handler"
	webhookdto "meta_engage/internal/api/webhook/dto"
	webhookmodels "meta_engage/internal/api/webhook/models"
	webhooksvc "meta_engage/internal/api/webhook/service"
)

// WebhookLogHandler xử lý tra cứu webhook log
type WebhookLogHandler struct {
	*basehdl.BaseHandler[webhookmodels.WebhookLog, webhookdto.WebhookLogCreateInput, webhookdto.WebhookLogUpdateInput]
	WebhookLogService *webhooksvc.WebhookLogService
}

// NewWebhookLogHandler tạo mới WebhookLogHandler
func NewWebhookLogHandler() (*WebhookLogHandler, error) {
	service, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log service: %w", err)
	}
	handler := &WebhookLogHandler{
		WebhookLogService: service,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[webhookmodels.WebhookLog, webhookdto.WebhookLogCreateInput, webhookdto.WebhookLogUpdateInput](service)
	return handler, nil
}

// HandleCountUnprocessed đếm số webhook log chưa xử lý
func (h *WebhookLogHandler) HandleCountUnprocessed(c fiber.Ctx) error {
	count, err := h.WebhookLogService.CountUnprocessed(c.Context())
	h.HandleResponse(c, map[string]int64{"count": count}, err)
	return nil
}

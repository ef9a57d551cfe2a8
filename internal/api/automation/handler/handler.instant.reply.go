package autohdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	autodto "meta_engage/internal/api/automation/dto"
	automodels "meta_engage/internal/api/automation/models"
	autosvc "meta_engage/internal/api/automation/service"
	basehdl "meta_engage/internal/api/base/handler"
	"meta_engage/internal/common"
)

// InstantReplyHandler xử lý các request liên quan đến instant reply
type InstantReplyHandler struct {
	*basehdl.BaseHandler[automodels.InstantReply, autodto.InstantReplyCreateInput, autodto.InstantReplyUpdateInput]
	InstantReplyService *autosvc.InstantReplyService
}

// NewInstantReplyHandler tạo mới InstantReplyHandler
func NewInstantReplyHandler() (*InstantReplyHandler, error) {
	service, err := autosvc.NewInstantReplyService()
	if err != nil {
		return nil, fmt.Errorf("failed to create instant reply service: %w", err)
	}
	handler := &InstantReplyHandler{
		InstantReplyService: service,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[automodels.InstantReply, autodto.InstantReplyCreateInput, autodto.InstantReplyUpdateInput](service)
	return handler, nil
}

// HandleFindByAutomation liệt kê instant reply đang bật của một automation
func (h *InstantReplyHandler) HandleFindByAutomation(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		automationID, err := primitive.ObjectIDFromHex(c.Params("automationId"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"ID automation không hợp lệ",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		replies, err := h.InstantReplyService.FindActiveByAutomation(c.Context(), automationID)
		h.HandleResponse(c, replies, err)
		return nil
	})
}

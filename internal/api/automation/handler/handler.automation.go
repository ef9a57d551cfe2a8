// Package autohdl chứa các handler HTTP của domain automation.
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

// AutomationHandler xử lý các request liên quan đến automation
type AutomationHandler struct {
	*basehdl.BaseHandler[automodels.Automation, autodto.AutomationCreateInput, autodto.AutomationUpdateInput]
	AutomationService *autosvc.AutomationService
}

// NewAutomationHandler tạo mới AutomationHandler
func NewAutomationHandler() (*AutomationHandler, error) {
	service, err := autosvc.NewAutomationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create automation service: %w", err)
	}
	handler := &AutomationHandler{
		AutomationService: service,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[automodels.Automation, autodto.AutomationCreateInput, autodto.AutomationUpdateInput](service)
	return handler, nil
}

// HandleFindByPage liệt kê automation của một trang, lọc theo type nếu có
func (h *AutomationHandler) HandleFindByPage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		pageID, err := primitive.ObjectIDFromHex(c.Params("pageId"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"ID trang không hợp lệ",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		filter := map[string]interface{}{"pageId": pageID}
		if automationType := c.Query("type"); automationType != "" {
			filter["type"] = automationType
		}
		automations, err := h.AutomationService.Find(c.Context(), filter, nil)
		h.HandleResponse(c, automations, err)
		return nil
	})
}

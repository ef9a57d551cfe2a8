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

// KeywordHandler xử lý các request liên quan đến keyword của automation
type KeywordHandler struct {
	*basehdl.BaseHandler[automodels.Keyword, autodto.KeywordCreateInput, autodto.KeywordUpdateInput]
	KeywordService *autosvc.KeywordService
}

// NewKeywordHandler tạo mới KeywordHandler
func NewKeywordHandler() (*KeywordHandler, error) {
	service, err := autosvc.NewKeywordService()
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword service: %w", err)
	}
	handler := &KeywordHandler{
		KeywordService: service,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[automodels.Keyword, autodto.KeywordCreateInput, autodto.KeywordUpdateInput](service)
	return handler, nil
}

// HandleFindByAutomation liệt kê keyword đang bật của một automation
func (h *KeywordHandler) HandleFindByAutomation(c fiber.Ctx) error {
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

		keywords, err := h.KeywordService.FindActiveByAutomation(c.Context(), automationID)
		h.HandleResponse(c, keywords, err)
		return nil
	})
}

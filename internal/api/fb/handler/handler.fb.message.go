package fbhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "meta_engage/internal/api/base/handler"
	fbdto "meta_engage/internal/api/fb/dto"
	fbmodels "meta_engage/internal/api/fb/models"
	fbsvc "meta_engage/internal/api/fb/service"
	"meta_engage/internal/common"
)

// FbMessageHandler xử lý tra cứu tin nhắn. Tin nhắn chỉ được ghi qua
// đồng bộ và webhook nên các route đều read only.
type FbMessageHandler struct {
	*basehdl.BaseHandler[fbmodels.FbMessage, fbdto.FbMessageSendInput, fbdto.FbMessageFilterInput]
	FbMessageService *fbsvc.FbMessageService
}

// NewFbMessageHandler tạo mới FbMessageHandler
func NewFbMessageHandler() (*FbMessageHandler, error) {
	service, err := fbsvc.NewFbMessageService()
	if err != nil {
		return nil, fmt.Errorf("failed to create fb message service: %w", err)
	}
	handler := &FbMessageHandler{
		FbMessageService: service,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[fbmodels.FbMessage, fbdto.FbMessageSendInput, fbdto.FbMessageFilterInput](service)
	return handler, nil
}

// HandleFindByConversation liệt kê tin nhắn của một hội thoại theo thứ tự thời gian
func (h *FbMessageHandler) HandleFindByConversation(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		conversationID, err := primitive.ObjectIDFromHex(c.Params("conversationId"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"ID hội thoại không hợp lệ",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		limit, _ := strconv.ParseInt(c.Query("limit", "0"), 10, 64)
		messages, err := h.FbMessageService.FindByConversation(c.Context(), conversationID, limit)
		h.HandleResponse(c, messages, err)
		return nil
	})
}

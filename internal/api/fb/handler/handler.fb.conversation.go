package fbhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	basehdl "meta_engage/internal/api/base/handler"
	fbdto "meta_engage/internal/api/fb/dto"
	fbmodels "meta_engage/internal/api/fb/models"
	fbsvc "meta_engage/internal/api/fb/service"
	syncsvc "meta_engage/internal/api/sync/service"
)

// FbConversationHandler xử lý các request liên quan đến hội thoại
type FbConversationHandler struct {
	*basehdl.BaseHandler[fbmodels.FbConversation, fbdto.FbConversationUpdateInput, fbdto.FbConversationUpdateInput]
	FbConversationService *fbsvc.FbConversationService
	SyncService           *syncsvc.SyncService
}

// NewFbConversationHandler tạo mới FbConversationHandler
func NewFbConversationHandler() (*FbConversationHandler, error) {
	service, err := fbsvc.NewFbConversationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create fb conversation service: %w", err)
	}
	syncService, err := syncsvc.NewSyncServiceFromConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create sync service: %w", err)
	}
	handler := &FbConversationHandler{
		FbConversationService: service,
		SyncService:           syncService,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[fbmodels.FbConversation, fbdto.FbConversationUpdateInput, fbdto.FbConversationUpdateInput](service)
	return handler, nil
}

// HandleReply gửi tin trả lời vào hội thoại. Gửi nền tảng trước, thành công
// mới mirror tin nhắn và đánh dấu hội thoại đã trả lời.
func (h *FbConversationHandler) HandleReply(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input fbdto.FbConversationReplyInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.SyncService.SendReply(c.Context(), c.Params("conversationId"), input.Message)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleArchive lưu trữ hội thoại trên nền tảng rồi cập nhật trạng thái cục bộ
func (h *FbConversationHandler) HandleArchive(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		conversationID := c.Params("conversationId")
		err := h.SyncService.ArchiveConversation(c.Context(), conversationID)
		h.HandleResponse(c, map[string]string{"conversationId": conversationID, "status": fbmodels.ConversationStatusArchived}, err)
		return nil
	})
}

// HandleMute tắt thông báo hội thoại trên nền tảng
func (h *FbConversationHandler) HandleMute(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input fbdto.FbConversationMuteInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		conversationID := c.Params("conversationId")
		err := h.SyncService.MuteConversation(c.Context(), conversationID, input.MuteUntil)
		h.HandleResponse(c, map[string]string{"conversationId": conversationID}, err)
		return nil
	})
}

// HandleMarkRead đánh dấu đã đọc trên nền tảng rồi reset unreadCount cục bộ
func (h *FbConversationHandler) HandleMarkRead(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		conversationID := c.Params("conversationId")
		err := h.SyncService.MarkConversationRead(c.Context(), conversationID)
		h.HandleResponse(c, map[string]string{"conversationId": conversationID}, err)
		return nil
	})
}

// HandleUnanswered liệt kê hội thoại chưa trả lời quá ngưỡng giờ của một trang.
// Query hours <= 0 dùng ngưỡng mặc định trong cấu hình.
func (h *FbConversationHandler) HandleUnanswered(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		hours, _ := strconv.Atoi(c.Query("hours", "0"))
		conversations, err := h.SyncService.GetUnanswered(c.Context(), c.Params("pageId"), hours)
		h.HandleResponse(c, conversations, err)
		return nil
	})
}

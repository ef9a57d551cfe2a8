package fbhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "meta_engage/internal/api/base/handler"
	fbdto "meta_engage/internal/api/fb/dto"
	fbmodels "meta_engage/internal/api/fb/models"
	fbsvc "meta_engage/internal/api/fb/service"
	syncsvc "meta_engage/internal/api/sync/service"
	"meta_engage/internal/common"
)

// FbPageHandler xử lý các request liên quan đến trang Facebook
type FbPageHandler struct {
	*basehdl.BaseHandler[fbmodels.FbPage, fbdto.FbPageCreateInput, fbdto.FbPageUpdateInput]
	FbPageService *fbsvc.FbPageService
	SyncService   *syncsvc.SyncService
}

// NewFbPageHandler tạo mới FbPageHandler
func NewFbPageHandler() (*FbPageHandler, error) {
	service, err := fbsvc.NewFbPageService()
	if err != nil {
		return nil, fmt.Errorf("failed to create fb page service: %w", err)
	}
	syncService, err := syncsvc.NewSyncServiceFromConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create sync service: %w", err)
	}
	handler := &FbPageHandler{
		FbPageService: service,
		SyncService:   syncService,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[fbmodels.FbPage, fbdto.FbPageCreateInput, fbdto.FbPageUpdateInput](service)
	return handler, nil
}

// HandleFindOneByPageId tìm trang theo pageId của nền tảng
func (h *FbPageHandler) HandleFindOneByPageId(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		pageID := c.Params("pageId")
		page, err := h.FbPageService.FindOneByPageID(c.Context(), pageID)
		h.HandleResponse(c, page, err)
		return nil
	})
}

// HandleConnectPage kết nối một trang: lấy token trang từ danh sách trang của
// tài khoản, upsert trang và subscribe webhook.
func (h *FbPageHandler) HandleConnectPage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input fbdto.FbPageConnectInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		accountID, err := primitive.ObjectIDFromHex(input.AccountId)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"ID tài khoản không hợp lệ",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		page, err := h.SyncService.ConnectPage(c.Context(), accountID, input.PageId)
		h.HandleResponse(c, page, err)
		return nil
	})
}

// HandleSubscribe đăng ký lại webhook cho trang với token đã lưu
func (h *FbPageHandler) HandleSubscribe(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		pageID := c.Params("pageId")
		page, err := h.SyncService.SubscribePage(c.Context(), pageID)
		h.HandleResponse(c, page, err)
		return nil
	})
}

// HandleFullSync đồng bộ toàn bộ trang: profile, hội thoại và tin nhắn
func (h *FbPageHandler) HandleFullSync(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		pageID := c.Params("pageId")
		err := h.SyncService.FullSync(c.Context(), pageID)
		h.HandleResponse(c, map[string]string{"pageId": pageID, "status": "synced"}, err)
		return nil
	})
}

// HandlePushProfile đẩy thay đổi profile của trang lên nền tảng.
// Cập nhật cục bộ chỉ diễn ra khi nền tảng nhận thành công.
func (h *FbPageHandler) HandlePushProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input fbdto.FbPageProfileUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		fields := map[string]string{}
		if input.About != "" {
			fields["about"] = input.About
		}
		if input.Phone != "" {
			fields["phone"] = input.Phone
		}
		if input.Website != "" {
			fields["website"] = input.Website
		}
		if len(fields) == 0 {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Cần ít nhất một trường profile để cập nhật",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		pageID := c.Params("pageId")
		err := h.SyncService.PushProfile(c.Context(), pageID, fields)
		h.HandleResponse(c, fields, err)
		return nil
	})
}

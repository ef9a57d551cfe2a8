// Package fbhdl chứa các handler HTTP của domain Facebook.
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

// FbAccountHandler xử lý các request liên quan đến tài khoản Facebook
type FbAccountHandler struct {
	*basehdl.BaseHandler[fbmodels.FbAccount, fbdto.FbAccountCreateInput, fbdto.FbAccountUpdateInput]
	FbAccountService *fbsvc.FbAccountService
	SyncService      *syncsvc.SyncService
}

// NewFbAccountHandler tạo mới FbAccountHandler
func NewFbAccountHandler() (*FbAccountHandler, error) {
	service, err := fbsvc.NewFbAccountService()
	if err != nil {
		return nil, fmt.Errorf("failed to create fb account service: %w", err)
	}
	syncService, err := syncsvc.NewSyncServiceFromConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create sync service: %w", err)
	}
	handler := &FbAccountHandler{
		FbAccountService: service,
		SyncService:      syncService,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[fbmodels.FbAccount, fbdto.FbAccountCreateInput, fbdto.FbAccountUpdateInput](service)
	return handler, nil
}

// HandleConnect kết nối tài khoản bằng user access token.
// Profile và thời hạn token được lấy từ Graph API rồi upsert theo platformUserId.
func (h *FbAccountHandler) HandleConnect(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input fbdto.FbAccountConnectInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		account, err := h.SyncService.ConnectAccount(c.Context(), input.AccessToken)
		h.HandleResponse(c, account, err)
		return nil
	})
}

// HandleListConnectablePages liệt kê các trang mà tài khoản quản lý trên nền tảng
func (h *FbAccountHandler) HandleListConnectablePages(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		accountID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"ID tài khoản không hợp lệ",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		pages, err := h.SyncService.ListConnectablePages(c.Context(), accountID)
		h.HandleResponse(c, pages, err)
		return nil
	})
}

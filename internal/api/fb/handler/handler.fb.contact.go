package fbhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "meta_engage/internal/api/base/handler"
	fbdto "meta_engage/internal/api/fb/dto"
	fbmodels "meta_engage/internal/api/fb/models"
	fbsvc "meta_engage/internal/api/fb/service"
	"meta_engage/internal/common"
)

// FbContactHandler xử lý các request liên quan đến contact của trang
type FbContactHandler struct {
	*basehdl.BaseHandler[fbmodels.FbContact, fbdto.FbContactCreateInput, fbdto.FbContactUpdateInput]
	FbContactService *fbsvc.FbContactService
}

// NewFbContactHandler tạo mới FbContactHandler
func NewFbContactHandler() (*FbContactHandler, error) {
	service, err := fbsvc.NewFbContactService()
	if err != nil {
		return nil, fmt.Errorf("failed to create fb contact service: %w", err)
	}
	handler := &FbContactHandler{
		FbContactService: service,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[fbmodels.FbContact, fbdto.FbContactCreateInput, fbdto.FbContactUpdateInput](service)
	return handler, nil
}

// HandleFindByPage liệt kê contact của một trang theo lần tương tác gần nhất
func (h *FbContactHandler) HandleFindByPage(c fiber.Ctx) error {
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

		contacts, err := h.FbContactService.FindByPage(c.Context(), pageID)
		h.HandleResponse(c, contacts, err)
		return nil
	})
}

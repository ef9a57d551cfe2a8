// Package faqhdl chứa các handler HTTP của domain FAQ.
package faqhdl

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "meta_engage/internal/api/base/handler"
	faqdto "meta_engage/internal/api/faq/dto"
	faqmodels "meta_engage/internal/api/faq/models"
	faqsvc "meta_engage/internal/api/faq/service"
	fbsvc "meta_engage/internal/api/fb/service"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
	"meta_engage/internal/platform"
)

// FaqHandler xử lý các request liên quan đến FAQ
type FaqHandler struct {
	*basehdl.BaseHandler[faqmodels.Faq, faqdto.FaqCreateInput, faqdto.FaqUpdateInput]
	FaqService    *faqsvc.FaqService
	FbPageService *fbsvc.FbPageService
}

// NewFaqHandler tạo mới FaqHandler
func NewFaqHandler() (*FaqHandler, error) {
	cfg := platform.DefaultConfig()
	if global.ServerConfig != nil {
		if global.ServerConfig.GraphBaseURL != "" {
			cfg.BaseURL = global.ServerConfig.GraphBaseURL
		}
		if global.ServerConfig.GraphAPIVersion != "" {
			cfg.APIVersion = global.ServerConfig.GraphAPIVersion
		}
		if global.ServerConfig.GraphTimeoutSeconds > 0 {
			cfg.Timeout = time.Duration(global.ServerConfig.GraphTimeoutSeconds) * time.Second
		}
	}
	service, err := faqsvc.NewFaqService(platform.NewClient(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create faq service: %w", err)
	}
	pageService, err := fbsvc.NewFbPageService()
	if err != nil {
		return nil, fmt.Errorf("failed to create fb page service: %w", err)
	}
	handler := &FaqHandler{
		FaqService:    service,
		FbPageService: pageService,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[faqmodels.Faq, faqdto.FaqCreateInput, faqdto.FaqUpdateInput](service)
	return handler, nil
}

// parsePageID đọc ObjectID trang từ param
func (h *FaqHandler) parsePageID(c fiber.Ctx) (primitive.ObjectID, error) {
	pageID, err := primitive.ObjectIDFromHex(c.Params("pageId"))
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			"ID trang không hợp lệ",
			common.StatusBadRequest,
			err,
		)
	}
	return pageID, nil
}

// HandleSearch tìm FAQ đang bật của một trang khớp với câu hỏi
func (h *FaqHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		pageID, err := h.parsePageID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		query := c.Query("q")
		if query == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Thiếu tham số q",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		matches, err := h.FaqService.Search(c.Context(), pageID, query)
		h.HandleResponse(c, matches, err)
		return nil
	})
}

// HandleSendAnswer gửi câu trả lời của một FAQ tới người dùng và ghi log sử dụng
func (h *FaqHandler) HandleSendAnswer(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		faqID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"ID FAQ không hợp lệ",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		var input faqdto.FaqSendAnswerInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		faq, err := h.FaqService.FindOneById(c.Context(), faqID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		page, err := h.FbPageService.FindOneById(c.Context(), faq.PageID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		conversationID := primitive.NilObjectID
		if input.ConversationId != "" {
			conversationID, err = primitive.ObjectIDFromHex(input.ConversationId)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationInput,
					"ID hội thoại không hợp lệ",
					common.StatusBadRequest,
					err,
				))
				return nil
			}
		}

		log, err := h.FaqService.SendAnswer(c.Context(), &faq, &page, input.RecipientId, conversationID, input.TriggeredBy)
		h.HandleResponse(c, log, err)
		return nil
	})
}

// HandleFeedback ghi nhận feedback cho một lần gửi FAQ theo ID của faq log
func (h *FaqHandler) HandleFeedback(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		logID, err := primitive.ObjectIDFromHex(c.Params("logId"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"ID faq log không hợp lệ",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		var input faqdto.FaqFeedbackInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		log, err := h.FaqService.RecordFeedback(c.Context(), logID, input.Feedback)
		h.HandleResponse(c, log, err)
		return nil
	})
}

// HandleStatistics tổng hợp thống kê sử dụng FAQ của một trang
func (h *FaqHandler) HandleStatistics(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		pageID, err := h.parsePageID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		stats, err := h.FaqService.Statistics(c.Context(), pageID)
		h.HandleResponse(c, stats, err)
		return nil
	})
}

package faqhdl

import (
	"fmt"

	basehdl "meta_engage/internal/api/base/handler"
	faqdto "meta_engage/internal/api/faq/dto"
	faqmodels "meta_engage/internal/api/faq/models"
	faqsvc "meta_engage/internal/api/faq/service"
)

// FaqLogHandler xử lý tra cứu faq log
type FaqLogHandler struct {
	*basehdl.BaseHandler[faqmodels.FaqLog, faqdto.FaqLogCreateInput, faqdto.FaqLogUpdateInput]
	FaqLogService *faqsvc.FaqLogService
}

// NewFaqLogHandler tạo mới FaqLogHandler
func NewFaqLogHandler() (*FaqLogHandler, error) {
	service, err := faqsvc.NewFaqLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create faq log service: %w", err)
	}
	handler := &FaqLogHandler{
		FaqLogService: service,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[faqmodels.FaqLog, faqdto.FaqLogCreateInput, faqdto.FaqLogUpdateInput](service)
	return handler, nil
}

package faqsvc

import (
	"fmt"

	basesvc "meta_engage/internal/api/base/service"
	faqmodels "meta_engage/internal/api/faq/models"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
)

// FaqLogService là cấu trúc chứa các phương thức liên quan đến log gửi FAQ
type FaqLogService struct {
	*basesvc.BaseServiceMongoImpl[faqmodels.FaqLog]
}

// NewFaqLogService tạo mới FaqLogService
func NewFaqLogService() (*FaqLogService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.FaqLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get faq_logs collection: %v", common.ErrNotFound)
	}
	return &FaqLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[faqmodels.FaqLog](coll),
	}, nil
}

// Package autosvc chứa các service thuộc domain Automation.
package autosvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	autmodels "meta_engage/internal/api/automation/models"
	basesvc "meta_engage/internal/api/base/service"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
)

// AutomationService là cấu trúc chứa các phương thức liên quan đến automation
type AutomationService struct {
	*basesvc.BaseServiceMongoImpl[autmodels.Automation]
}

// NewAutomationService tạo mới AutomationService
func NewAutomationService() (*AutomationService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Automations)
	if !exist {
		return nil, fmt.Errorf("failed to get automations collection: %v", common.ErrNotFound)
	}
	return &AutomationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[autmodels.Automation](coll),
	}, nil
}

// FindActiveByPageAndType liệt kê automation đang bật của một trang theo loại
func (s *AutomationService) FindActiveByPageAndType(ctx context.Context, pageID primitive.ObjectID, automationType string) ([]autmodels.Automation, error) {
	filter := bson.M{
		"pageId":   pageID,
		"type":     automationType,
		"isActive": true,
	}
	results, err := s.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []autmodels.Automation{}
	}
	return results, nil
}

// FindOneActiveByPageAndType lấy automation đang bật đầu tiên của một trang theo loại.
// Trả về common.ErrNotFound nếu trang không có rule loại đó.
func (s *AutomationService) FindOneActiveByPageAndType(ctx context.Context, pageID primitive.ObjectID, automationType string) (autmodels.Automation, error) {
	results, err := s.FindActiveByPageAndType(ctx, pageID, automationType)
	if err != nil {
		return autmodels.Automation{}, err
	}
	if len(results) == 0 {
		return autmodels.Automation{}, common.ErrNotFound
	}
	return results[0], nil
}

// RecordTrigger tăng trigger counter và chạm lastTriggeredAt (atomic $inc)
func (s *AutomationService) RecordTrigger(ctx context.Context, id primitive.ObjectID) error {
	return s.IncrementOne(ctx, bson.M{"_id": id},
		map[string]int64{"triggerCount": 1},
		map[string]interface{}{"lastTriggeredAt": time.Now().UnixMilli()},
	)
}

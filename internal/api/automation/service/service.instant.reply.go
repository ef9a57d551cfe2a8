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

// InstantReplyService là cấu trúc chứa các phương thức liên quan đến instant reply
type InstantReplyService struct {
	*basesvc.BaseServiceMongoImpl[autmodels.InstantReply]
}

// NewInstantReplyService tạo mới InstantReplyService
func NewInstantReplyService() (*InstantReplyService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.InstantReplies)
	if !exist {
		return nil, fmt.Errorf("failed to get instant_replies collection: %v", common.ErrNotFound)
	}
	return &InstantReplyService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[autmodels.InstantReply](coll),
	}, nil
}

// FindActiveByAutomation liệt kê instant reply đang bật của một automation
func (s *InstantReplyService) FindActiveByAutomation(ctx context.Context, automationID primitive.ObjectID) ([]autmodels.InstantReply, error) {
	filter := bson.M{"automationId": automationID, "isActive": true}
	results, err := s.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []autmodels.InstantReply{}
	}
	return results, nil
}

// FindFirstActiveByAutomations lấy instant reply đang bật đầu tiên trong danh sách automation
func (s *InstantReplyService) FindFirstActiveByAutomations(ctx context.Context, automationIDs []primitive.ObjectID) (autmodels.InstantReply, error) {
	var reply autmodels.InstantReply
	if len(automationIDs) == 0 {
		return reply, common.ErrNotFound
	}
	filter := bson.M{"automationId": bson.M{"$in": automationIDs}, "isActive": true}
	results, err := s.Find(ctx, filter, nil)
	if err != nil {
		return reply, err
	}
	if len(results) == 0 {
		return reply, common.ErrNotFound
	}
	return results[0], nil
}

// RecordTrigger tăng trigger counter và chạm lastTriggeredAt (atomic $inc)
func (s *InstantReplyService) RecordTrigger(ctx context.Context, id primitive.ObjectID) error {
	return s.IncrementOne(ctx, bson.M{"_id": id},
		map[string]int64{"triggerCount": 1},
		map[string]interface{}{"lastTriggeredAt": time.Now().UnixMilli()},
	)
}

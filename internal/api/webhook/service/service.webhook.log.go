// Package webhooksvc chứa service cho domain Webhook (log).
package webhooksvc

import (
	"context"
	"fmt"
	"time"

	basesvc "meta_engage/internal/api/base/service"
	webhookmodels "meta_engage/internal/api/webhook/models"
	"meta_engage/internal/common"
	"meta_engage/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WebhookLogService là cấu trúc chứa các phương thức liên quan đến webhook logs
type WebhookLogService struct {
	*basesvc.BaseServiceMongoImpl[webhookmodels.WebhookLog]
}

// NewWebhookLogService tạo mới WebhookLogService
func NewWebhookLogService() (*WebhookLogService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WebhookLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get webhook_logs collection: %v", common.ErrNotFound)
	}
	return &WebhookLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[webhookmodels.WebhookLog](coll),
	}, nil
}

// CreateWebhookLog tạo mới webhook log
func (s *WebhookLogService) CreateWebhookLog(ctx context.Context, log webhookmodels.WebhookLog) (*webhookmodels.WebhookLog, error) {
	if log.ReceivedAt == 0 {
		log.ReceivedAt = time.Now().UnixMilli()
	}
	result, err := s.InsertOne(ctx, log)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProcessedStatus cập nhật trạng thái đã xử lý của webhook log
func (s *WebhookLogService) UpdateProcessedStatus(ctx context.Context, logID primitive.ObjectID, processed bool, errorMsg string) error {
	set := map[string]interface{}{
		"processed":    processed,
		"processError": errorMsg,
	}
	if processed {
		set["processedAt"] = time.Now().UnixMilli()
	}
	_, err := s.UpdateById(ctx, logID, &basesvc.UpdateData{Set: set})
	return err
}

// CountUnprocessed đếm số webhook nhận được nhưng xử lý lỗi
func (s *WebhookLogService) CountUnprocessed(ctx context.Context) (int64, error) {
	return s.CountDocuments(ctx, bson.M{"processed": false})
}

package autosvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	autmodels "meta_engage/internal/api/automation/models"
	basesvc "meta_engage/internal/api/base/service"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
)

// KeywordService là cấu trúc chứa các phương thức liên quan đến keyword
type KeywordService struct {
	*basesvc.BaseServiceMongoImpl[autmodels.Keyword]
}

// NewKeywordService tạo mới KeywordService
func NewKeywordService() (*KeywordService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Keywords)
	if !exist {
		return nil, fmt.Errorf("failed to get automation_keywords collection: %v", common.ErrNotFound)
	}
	return &KeywordService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[autmodels.Keyword](coll),
	}, nil
}

// FindActiveByAutomation liệt kê keyword đang bật của một automation
func (s *KeywordService) FindActiveByAutomation(ctx context.Context, automationID primitive.ObjectID) ([]autmodels.Keyword, error) {
	filter := bson.M{"automationId": automationID, "isActive": true}
	results, err := s.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []autmodels.Keyword{}
	}
	return results, nil
}

// RecordMatch tăng match counter của keyword (atomic $inc)
func (s *KeywordService) RecordMatch(ctx context.Context, id primitive.ObjectID) error {
	return s.IncrementOne(ctx, bson.M{"_id": id}, map[string]int64{"matchCount": 1}, nil)
}

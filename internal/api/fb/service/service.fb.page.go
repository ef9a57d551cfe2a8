package fbsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "meta_engage/internal/api/base/service"
	fbmodels "meta_engage/internal/api/fb/models"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
)

// FbPageService là cấu trúc chứa các phương thức liên quan đến trang Facebook
type FbPageService struct {
	*basesvc.BaseServiceMongoImpl[fbmodels.FbPage]
}

// NewFbPageService tạo mới FbPageService
func NewFbPageService() (*FbPageService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.FbPages)
	if !exist {
		return nil, fmt.Errorf("failed to get fb_pages collection: %v", common.ErrNotFound)
	}
	return &FbPageService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[fbmodels.FbPage](coll),
	}, nil
}

// IsPageExist kiểm tra trang có tồn tại trong hệ thống hay không
func (s *FbPageService) IsPageExist(ctx context.Context, pageId string) (bool, error) {
	var page fbmodels.FbPage
	err := s.Collection().FindOne(ctx, bson.M{"pageId": pageId}).Decode(&page)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, common.ConvertMongoError(err)
	}
	return true, nil
}

// FindOneByPageID tìm một FbPage theo pageId trên nền tảng
func (s *FbPageService) FindOneByPageID(ctx context.Context, pageID string) (fbmodels.FbPage, error) {
	var page fbmodels.FbPage
	err := s.Collection().FindOne(ctx, bson.M{"pageId": pageID}).Decode(&page)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return page, common.ErrNotFound
		}
		return page, common.ConvertMongoError(err)
	}
	return page, nil
}

// UpsertByPageID tạo hoặc cập nhật trang theo pageId trên nền tảng
func (s *FbPageService) UpsertByPageID(ctx context.Context, pageID string, set map[string]interface{}) (fbmodels.FbPage, error) {
	filter := bson.M{"pageId": pageID}
	set["pageId"] = pageID
	return s.Upsert(ctx, filter, &basesvc.UpdateData{Set: set})
}

// UpdateToken cập nhật page access token của một trang
func (s *FbPageService) UpdateToken(ctx context.Context, pageID string, pageAccessToken string) (*fbmodels.FbPage, error) {
	page, err := s.FindOneByPageID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"pageAccessToken": pageAccessToken},
	}
	updatedPage, err := s.UpdateById(ctx, page.ID, updateData)
	if err != nil {
		return nil, err
	}
	return &updatedPage, nil
}

// SetSubscribed đánh dấu trang đã subscribe webhook
func (s *FbPageService) SetSubscribed(ctx context.Context, id primitive.ObjectID, subscribed bool) error {
	updateData := &basesvc.UpdateData{Set: map[string]interface{}{"isSubscribed": subscribed}}
	_, err := s.UpdateById(ctx, id, updateData)
	return err
}

// TouchLastSynced ghi nhận thời điểm đồng bộ toàn trang thành công
func (s *FbPageService) TouchLastSynced(ctx context.Context, id primitive.ObjectID) error {
	updateData := &basesvc.UpdateData{Set: map[string]interface{}{"lastSyncedAt": time.Now().UnixMilli()}}
	_, err := s.UpdateById(ctx, id, updateData)
	return err
}

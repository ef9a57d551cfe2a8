// Package fbsvc chứa các service thuộc domain Facebook.
package fbsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "meta_engage/internal/api/base/service"
	fbmodels "meta_engage/internal/api/fb/models"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
)

// FbAccountService là cấu trúc chứa các phương thức liên quan đến tài khoản kết nối
type FbAccountService struct {
	*basesvc.BaseServiceMongoImpl[fbmodels.FbAccount]
}

// NewFbAccountService tạo mới FbAccountService
func NewFbAccountService() (*FbAccountService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.FbAccounts)
	if !exist {
		return nil, fmt.Errorf("failed to get fb_accounts collection: %v", common.ErrNotFound)
	}
	return &FbAccountService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[fbmodels.FbAccount](coll),
	}, nil
}

// FindOneByPlatformUserID tìm tài khoản theo ID người dùng trên nền tảng
func (s *FbAccountService) FindOneByPlatformUserID(ctx context.Context, platformUserID string) (fbmodels.FbAccount, error) {
	var account fbmodels.FbAccount
	err := s.Collection().FindOne(ctx, bson.M{"platformUserId": platformUserID}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return account, common.ErrNotFound
		}
		return account, common.ConvertMongoError(err)
	}
	return account, nil
}

// UpsertByPlatformUserID tạo hoặc cập nhật tài khoản theo ID người dùng trên nền tảng.
// Token và profile luôn được ghi đè bằng dữ liệu mới nhất từ Graph API.
func (s *FbAccountService) UpsertByPlatformUserID(ctx context.Context, platformUserID string, set map[string]interface{}) (fbmodels.FbAccount, error) {
	filter := bson.M{"platformUserId": platformUserID}
	set["platformUserId"] = platformUserID
	return s.Upsert(ctx, filter, &basesvc.UpdateData{Set: set})
}

// MarkStatus chuyển trạng thái tài khoản (active | expired | revoked)
func (s *FbAccountService) MarkStatus(ctx context.Context, platformUserID string, status string) error {
	updateData := &basesvc.UpdateData{Set: map[string]interface{}{"status": status}}
	_, err := s.UpdateOne(ctx, bson.M{"platformUserId": platformUserID}, updateData, nil)
	return err
}

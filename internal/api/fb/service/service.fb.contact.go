package fbsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "meta_engage/internal/api/base/service"
	fbmodels "meta_engage/internal/api/fb/models"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
)

// FbContactService là cấu trúc chứa các phương thức liên quan đến contact của trang
type FbContactService struct {
	*basesvc.BaseServiceMongoImpl[fbmodels.FbContact]
}

// NewFbContactService tạo mới FbContactService
func NewFbContactService() (*FbContactService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.FbContacts)
	if !exist {
		return nil, fmt.Errorf("failed to get fb_contacts collection: %v", common.ErrNotFound)
	}
	return &FbContactService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[fbmodels.FbContact](coll),
	}, nil
}

// FindOneByPageAndUser tìm contact theo cặp (trang, người dùng nền tảng)
func (s *FbContactService) FindOneByPageAndUser(ctx context.Context, pageID primitive.ObjectID, platformUserID string) (fbmodels.FbContact, error) {
	var contact fbmodels.FbContact
	filter := bson.M{"pageId": pageID, "platformUserId": platformUserID}
	err := s.Collection().FindOne(ctx, filter).Decode(&contact)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return contact, common.ErrNotFound
		}
		return contact, common.ConvertMongoError(err)
	}
	return contact, nil
}

// UpsertByPageAndUser tạo hoặc cập nhật contact theo cặp (trang, người dùng nền tảng).
// lastInteraction luôn được chạm lại, các trường thủ công (tags, notes) không bị đồng bộ ghi đè.
func (s *FbContactService) UpsertByPageAndUser(ctx context.Context, pageID primitive.ObjectID, platformUserID string, set map[string]interface{}) (fbmodels.FbContact, error) {
	filter := bson.M{"pageId": pageID, "platformUserId": platformUserID}
	set["pageId"] = pageID
	set["platformUserId"] = platformUserID
	set["lastInteraction"] = time.Now().UnixMilli()
	return s.Upsert(ctx, filter, &basesvc.UpdateData{Set: set})
}

// FindByPage liệt kê contact của một trang
func (s *FbContactService) FindByPage(ctx context.Context, pageID primitive.ObjectID) ([]fbmodels.FbContact, error) {
	results, err := s.Find(ctx, bson.M{"pageId": pageID}, nil)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []fbmodels.FbContact{}
	}
	return results, nil
}

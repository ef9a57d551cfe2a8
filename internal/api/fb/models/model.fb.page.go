package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái của FbPage.
const (
	PageStatusActive   = "active"
	PageStatusInactive = "inactive"
)

// FbPage lưu trang đã kết nối vào hệ thống (fb_pages).
// Mỗi trang giữ một page access token riêng, dùng cho mọi thao tác Graph API trên trang đó.
type FbPage struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                    // ID của trang trong hệ thống
	AccountID       primitive.ObjectID `json:"accountId" bson:"accountId" index:"single:1"`          // Tài khoản sở hữu trang
	PageId          string             `json:"pageId" bson:"pageId" index:"unique"`                  // ID của trang trên nền tảng
	PageAccessToken string             `json:"pageAccessToken" bson:"pageAccessToken"`               // Page access token
	Name            string             `json:"name,omitempty" bson:"name,omitempty"`                 // Tên trang
	Category        string             `json:"category,omitempty" bson:"category,omitempty"`         // Danh mục trang
	About           string             `json:"about,omitempty" bson:"about,omitempty"`               // Mô tả ngắn
	Phone           string             `json:"phone,omitempty" bson:"phone,omitempty"`               // Số điện thoại công khai
	Website         string             `json:"website,omitempty" bson:"website,omitempty"`           // Website của trang
	PictureUrl      string             `json:"pictureUrl,omitempty" bson:"pictureUrl,omitempty"`     // URL ảnh đại diện
	CoverUrl        string             `json:"coverUrl,omitempty" bson:"coverUrl,omitempty"`         // URL ảnh bìa
	FanCount        int64              `json:"fanCount" bson:"fanCount"`                             // Số người thích trang
	IsSubscribed    bool               `json:"isSubscribed" bson:"isSubscribed"`                     // Đã subscribe webhook hay chưa
	Status          string             `json:"status" bson:"status" default:"active"`                // active | inactive
	LastSyncedAt    int64              `json:"lastSyncedAt,omitempty" bson:"lastSyncedAt,omitempty"` // Thời điểm đồng bộ toàn trang gần nhất (Unix ms)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

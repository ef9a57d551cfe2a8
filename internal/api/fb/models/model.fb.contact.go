package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FbContact lưu người dùng đã nhắn tin với trang (fb_contacts).
// Một người dùng là duy nhất trong phạm vi một trang (compound unique pageId + platformUserId).
type FbContact struct {
	ID              primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`                                                         // ID của contact trong hệ thống
	PageID          primitive.ObjectID     `json:"pageId" bson:"pageId" index:"compound:fb_contact_page_user_unique"`                         // Trang mà contact thuộc về
	PlatformUserId  string                 `json:"platformUserId" bson:"platformUserId" index:"compound:fb_contact_page_user_unique"`         // ID người dùng trên nền tảng
	Name            string                 `json:"name,omitempty" bson:"name,omitempty"`                                                      // Tên hiển thị
	Email           string                 `json:"email,omitempty" bson:"email,omitempty"`                                                    // Email thu thập được
	Phone           string                 `json:"phone,omitempty" bson:"phone,omitempty"`                                                    // Số điện thoại thu thập được
	ProfilePic      string                 `json:"profilePic,omitempty" bson:"profilePic,omitempty"`                                          // URL ảnh đại diện
	CustomFields    map[string]interface{} `json:"customFields,omitempty" bson:"customFields,omitempty"`                                      // Trường tùy biến do người vận hành gắn
	Tags            []string               `json:"tags,omitempty" bson:"tags,omitempty"`                                                      // Nhãn phân loại contact
	Notes           string                 `json:"notes,omitempty" bson:"notes,omitempty"`                                                    // Ghi chú nội bộ
	LastInteraction int64                  `json:"lastInteraction,omitempty" bson:"lastInteraction,omitempty"`                                // Lần tương tác gần nhất (Unix ms)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

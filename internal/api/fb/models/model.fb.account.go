// Package models chứa các model thuộc domain Facebook (fb_*).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái của FbAccount.
const (
	AccountStatusActive  = "active"  // Token còn hiệu lực
	AccountStatusExpired = "expired" // Token đã hết hạn (phát hiện khi gọi Graph API)
	AccountStatusRevoked = "revoked" // Người dùng đã thu hồi quyền
)

// FbAccount lưu tài khoản người dùng đã kết nối qua OAuth (fb_accounts).
// Mỗi tài khoản giữ một user access token dài hạn dùng để liệt kê và kết nối các trang.
type FbAccount struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                     // ID của tài khoản
	PlatformUserId string             `json:"platformUserId" bson:"platformUserId" index:"unique"`   // ID người dùng trên nền tảng
	AccessToken    string             `json:"accessToken" bson:"accessToken"`                        // User access token (dài hạn)
	TokenExpiresAt int64              `json:"tokenExpiresAt,omitempty" bson:"tokenExpiresAt,omitempty"` // Thời điểm token hết hạn (Unix ms, 0 = không rõ)
	Name           string             `json:"name,omitempty" bson:"name,omitempty"`                  // Tên hiển thị của người dùng
	Email          string             `json:"email,omitempty" bson:"email,omitempty"`                // Email của người dùng
	Status         string             `json:"status" bson:"status" default:"active"`                 // active | expired | revoked

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các kiểu match của Keyword.
const (
	MatchTypeExact      = "exact"
	MatchTypeContains   = "contains"
	MatchTypeStartsWith = "starts_with"
	MatchTypeEndsWith   = "ends_with"
	MatchTypeRegex      = "regex"
)

// Keyword một keyword thuộc automation loại custom_keyword (automation_keywords).
// Mọi kiểu match đều không phân biệt hoa thường; pattern regex hỏng coi như không match.
type Keyword struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                       // ID của keyword
	AutomationID    primitive.ObjectID `json:"automationId" bson:"automationId" index:"single:1"`       // Automation sở hữu keyword
	Keyword         string             `json:"keyword" bson:"keyword"`                                  // Chuỗi hoặc pattern để so khớp
	MatchType       string             `json:"matchType" bson:"matchType" default:"contains"`           // exact | contains | starts_with | ends_with | regex
	ResponseMessage string             `json:"responseMessage" bson:"responseMessage"`                  // Tin trả lời khi match
	IsActive        bool               `json:"isActive" bson:"isActive" default:"true"`                 // Keyword có đang bật không
	MatchCount      int64              `json:"matchCount" bson:"matchCount" default:"0"`                // Số lần đã match

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

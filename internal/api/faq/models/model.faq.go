// Package models chứa các model thuộc domain FAQ (faqs, faq_logs).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Faq một cặp câu hỏi/trả lời cấu hình trên trang (faqs).
type Faq struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                    // ID của FAQ
	PageID         primitive.ObjectID `json:"pageId" bson:"pageId" index:"compound:faq_page_active"` // Trang sở hữu FAQ
	Question       string             `json:"question" bson:"question"`                             // Câu hỏi
	Answer         string             `json:"answer" bson:"answer"`                                 // Câu trả lời
	Keywords       []string           `json:"keywords,omitempty" bson:"keywords,omitempty"`         // Keyword phụ trợ cho search
	Category       string             `json:"category,omitempty" bson:"category,omitempty"`         // Nhóm FAQ
	Order          int64              `json:"order" bson:"order" default:"0"`                       // Thứ tự hiển thị thủ công
	IsActive       bool               `json:"isActive" bson:"isActive" default:"true" index:"compound:faq_page_active"` // FAQ có đang bật không
	MatchCount     int64              `json:"matchCount" bson:"matchCount" default:"0"`             // Số lần đã gửi
	HelpfulCount   int64              `json:"helpfulCount" bson:"helpfulCount" default:"0"`         // Số feedback hữu ích
	UnhelpfulCount int64              `json:"unhelpfulCount" bson:"unhelpfulCount" default:"0"`     // Số feedback không hữu ích
	LastUsedAt     int64              `json:"lastUsedAt,omitempty" bson:"lastUsedAt,omitempty"`     // Lần gửi gần nhất (Unix ms)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

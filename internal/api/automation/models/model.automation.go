// Package models chứa các model thuộc domain Automation (automations, automation_keywords, instant_replies).
package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các loại automation hỗ trợ.
const (
	AutomationTypeCommentToMessage = "comment_to_message" // Nhắn tin trực tiếp cho người comment
	AutomationTypeAwayMessage      = "away_message"       // Tin trả lời khi vắng mặt
	AutomationTypeUnansweredAlert  = "unanswered_alert"   // Cảnh báo hội thoại chưa trả lời
	AutomationTypeCustomKeyword    = "custom_keyword"     // Trả lời theo keyword cấu hình
	AutomationTypeContactInfo      = "contact_info"       // Xin thông tin liên hệ
)

// Automation một rule cấu hình trên trang (automations).
// Config là blob theo từng loại, decode qua các accessor bên dưới.
type Automation struct {
	ID              primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`                                                                   // ID của automation
	PageID          primitive.ObjectID     `json:"pageId" bson:"pageId" index:"compound:automation_page_type"`                                          // Trang sở hữu rule
	Name            string                 `json:"name" bson:"name"`                                                                                    // Tên hiển thị
	Type            string                 `json:"type" bson:"type" index:"compound:automation_page_type"`                                              // Loại rule
	IsActive        bool                   `json:"isActive" bson:"isActive" default:"true"`                                                             // Rule có đang bật không
	Config          map[string]interface{} `json:"config,omitempty" bson:"config,omitempty"`                                                            // Cấu hình theo loại
	TriggerCount    int64                  `json:"triggerCount" bson:"triggerCount" default:"0"`                                                        // Số lần rule đã bắn
	LastTriggeredAt int64                  `json:"lastTriggeredAt,omitempty" bson:"lastTriggeredAt,omitempty"`                                          // Lần bắn gần nhất (Unix ms)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật

	// Chặn xóa automation khi còn keyword / instant reply tham chiếu
	_Relationships struct{} `json:"-" bson:"-" relationship:"collection:automation_keywords,field:automationId,message:Không thể xóa automation vì còn %d keyword tham chiếu|collection:instant_replies,field:automationId,message:Không thể xóa automation vì còn %d instant reply tham chiếu"`
}

// AwayMessageConfig cấu hình cho loại away_message
type AwayMessageConfig struct {
	Message string `json:"message" bson:"message"`
}

// CommentToMessageConfig cấu hình cho loại comment_to_message
type CommentToMessageConfig struct {
	Message string `json:"message" bson:"message"`
}

// UnansweredAlertConfig cấu hình cho loại unanswered_alert
type UnansweredAlertConfig struct {
	Hours int    `json:"hours" bson:"hours"` // Ngưỡng giờ chưa trả lời, 0 = dùng mặc định hệ thống
	Email string `json:"email" bson:"email"` // Địa chỉ nhận cảnh báo, rỗng = dùng mặc định hệ thống
}

// ContactInfoConfig cấu hình cho loại contact_info
type ContactInfoConfig struct {
	Message string   `json:"message" bson:"message"` // Rỗng = dùng message mặc định
	Fields  []string `json:"fields" bson:"fields"`   // Rỗng = ["email", "phone"]
}

// decodeConfig chuyển blob config sang struct typed qua vòng BSON
func (a *Automation) decodeConfig(out interface{}) error {
	if a.Config == nil {
		return nil
	}
	raw, err := bson.Marshal(a.Config)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

// AwayConfig decode config cho away_message
func (a *Automation) AwayConfig() (AwayMessageConfig, error) {
	var cfg AwayMessageConfig
	err := a.decodeConfig(&cfg)
	return cfg, err
}

// CommentConfig decode config cho comment_to_message
func (a *Automation) CommentConfig() (CommentToMessageConfig, error) {
	var cfg CommentToMessageConfig
	err := a.decodeConfig(&cfg)
	return cfg, err
}

// AlertConfig decode config cho unanswered_alert
func (a *Automation) AlertConfig() (UnansweredAlertConfig, error) {
	var cfg UnansweredAlertConfig
	err := a.decodeConfig(&cfg)
	return cfg, err
}

// ContactConfig decode config cho contact_info
func (a *Automation) ContactConfig() (ContactInfoConfig, error) {
	var cfg ContactInfoConfig
	err := a.decodeConfig(&cfg)
	return cfg, err
}

// Package autodto chứa các DTO đầu vào của domain Automation.
package autodto

// AutomationCreateInput dữ liệu đầu vào khi tạo automation
type AutomationCreateInput struct {
	PageId   string                 `json:"pageId" validate:"required" transform:"str_objectid,map=PageID"`
	Name     string                 `json:"name" validate:"required,no_xss"`
	Type     string                 `json:"type" validate:"required,oneof=comment_to_message away_message unanswered_alert custom_keyword contact_info"`
	IsActive *bool                  `json:"isActive,omitempty"`
	Config   map[string]interface{} `json:"config,omitempty"`
}

// AutomationUpdateInput dữ liệu đầu vào khi cập nhật automation
type AutomationUpdateInput struct {
	Name     string                 `json:"name,omitempty" validate:"omitempty,no_xss"`
	IsActive *bool                  `json:"isActive,omitempty"`
	Config   map[string]interface{} `json:"config,omitempty"`
}

// KeywordCreateInput dữ liệu đầu vào khi tạo keyword
type KeywordCreateInput struct {
	AutomationId    string `json:"automationId" validate:"required" transform:"str_objectid,map=AutomationID"`
	Keyword         string `json:"keyword" validate:"required"`
	MatchType       string `json:"matchType,omitempty" validate:"omitempty,oneof=exact contains starts_with ends_with regex"`
	ResponseMessage string `json:"responseMessage" validate:"required,no_xss"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

// KeywordUpdateInput dữ liệu đầu vào khi cập nhật keyword
type KeywordUpdateInput struct {
	Keyword         string `json:"keyword,omitempty"`
	MatchType       string `json:"matchType,omitempty" validate:"omitempty,oneof=exact contains starts_with ends_with regex"`
	ResponseMessage string `json:"responseMessage,omitempty" validate:"omitempty,no_xss"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

// InstantReplyCreateInput dữ liệu đầu vào khi tạo instant reply
type InstantReplyCreateInput struct {
	AutomationId string `json:"automationId" validate:"required" transform:"str_objectid,map=AutomationID"`
	Trigger      string `json:"trigger,omitempty" validate:"omitempty,oneof=new_message new_conversation specific_time"`
	Message      string `json:"message" validate:"required,no_xss"`
	DelaySeconds int64  `json:"delaySeconds,omitempty" validate:"omitempty,min=0,max=86400"`
	IncludeName  *bool  `json:"includeName,omitempty"`
	IsActive     *bool  `json:"isActive,omitempty"`
}

// InstantReplyUpdateInput dữ liệu đầu vào khi cập nhật instant reply
type InstantReplyUpdateInput struct {
	Trigger      string `json:"trigger,omitempty" validate:"omitempty,oneof=new_message new_conversation specific_time"`
	Message      string `json:"message,omitempty" validate:"omitempty,no_xss"`
	DelaySeconds int64  `json:"delaySeconds,omitempty" validate:"omitempty,min=0,max=86400"`
	IncludeName  *bool  `json:"includeName,omitempty"`
	IsActive     *bool  `json:"isActive,omitempty"`
}

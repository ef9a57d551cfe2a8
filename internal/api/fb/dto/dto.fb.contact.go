package fbdto

// FbContactCreateInput dữ liệu đầu vào khi tạo contact thủ công
type FbContactCreateInput struct {
	PageId         string   `json:"pageId" validate:"required" transform:"str_objectid,map=PageID"`
	PlatformUserId string   `json:"platformUserId" validate:"required"`
	Name           string   `json:"name,omitempty"`
	Email          string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string   `json:"phone,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Notes          string   `json:"notes,omitempty" validate:"omitempty,no_xss"`
}

// FbContactUpdateInput dữ liệu đầu vào khi cập nhật contact
type FbContactUpdateInput struct {
	Name         string                 `json:"name,omitempty"`
	Email        string                 `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string                 `json:"phone,omitempty"`
	CustomFields map[string]interface{} `json:"customFields,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	Notes        string                 `json:"notes,omitempty" validate:"omitempty,no_xss"`
}

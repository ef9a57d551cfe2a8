package fbdto

// FbPageCreateInput dữ liệu đầu vào khi kết nối một trang
type FbPageCreateInput struct {
	AccountId       string `json:"accountId" validate:"required" transform:"str_objectid,map=AccountID"`
	PageId          string `json:"pageId" validate:"required"`
	PageAccessToken string `json:"pageAccessToken" validate:"required"`
	Name            string `json:"name,omitempty"`
	Category        string `json:"category,omitempty"`
}

// FbPageConnectInput dữ liệu đầu vào khi kết nối một trang qua Graph API.
// Token và metadata của trang được lấy từ danh sách trang của tài khoản.
type FbPageConnectInput struct {
	AccountId string `json:"accountId" validate:"required"`
	PageId    string `json:"pageId" validate:"required"`
}

// FbPageUpdateInput dữ liệu đầu vào khi cập nhật trang trong hệ thống
type FbPageUpdateInput struct {
	PageAccessToken string `json:"pageAccessToken,omitempty"`
	Name            string `json:"name,omitempty"`
	Category        string `json:"category,omitempty"`
	Status          string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// FbPageProfileUpdateInput dữ liệu đầu vào khi đẩy thay đổi profile lên nền tảng.
// Chỉ các trường khác rỗng mới được gửi đi.
type FbPageProfileUpdateInput struct {
	About   string `json:"about,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty" validate:"omitempty,url"`
}

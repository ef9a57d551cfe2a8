// Package fbdto chứa các DTO đầu vào của domain Facebook.
package fbdto

// FbAccountCreateInput dữ liệu đầu vào khi kết nối tài khoản
type FbAccountCreateInput struct {
	PlatformUserId string `json:"platformUserId" validate:"required"`
	AccessToken    string `json:"accessToken" validate:"required"`
	TokenExpiresAt int64  `json:"tokenExpiresAt,omitempty"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
}

// FbAccountUpdateInput dữ liệu đầu vào khi cập nhật tài khoản
type FbAccountUpdateInput struct {
	AccessToken    string `json:"accessToken,omitempty"`
	TokenExpiresAt int64  `json:"tokenExpiresAt,omitempty"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=active expired revoked"`
}

// FbAccountConnectInput dữ liệu đầu vào khi kết nối tài khoản bằng token OAuth.
// Hệ thống sẽ tự gọi Graph API để lấy profile và thời hạn token.
type FbAccountConnectInput struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

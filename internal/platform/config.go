// Package platform chứa client gọi Graph API của nền tảng nhắn tin.
// Mọi request outbound của hệ thống (pull hội thoại, gửi tin nhắn, subscribe webhook)
// đều đi qua package này.
package platform

import "time"

// Config cấu hình cho Graph API client
type Config struct {
	BaseURL    string        // Base URL của Graph API (ví dụ: https://graph.facebook.com)
	APIVersion string        // Version API (ví dụ: v18.0)
	Timeout    time.Duration // Timeout cho mỗi request
}

// DefaultConfig trả về cấu hình mặc định cho Graph API client
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://graph.facebook.com",
		APIVersion: "v18.0",
		Timeout:    10 * time.Second,
	}
}

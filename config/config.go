package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Nó chứa thông tin cơ sở dữ liệu, cấu hình Graph API và webhook
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Graph API Configuration
	GraphBaseURL        string `env:"GRAPH_BASE_URL" envDefault:"https://graph.facebook.com"` // Base URL của Graph API
	GraphAPIVersion     string `env:"GRAPH_API_VERSION" envDefault:"v18.0"`                   // Phiên bản Graph API
	GraphTimeoutSeconds int    `env:"GRAPH_TIMEOUT_SECONDS" envDefault:"10"`                  // Timeout gọi Graph API (giây)

	// Webhook Configuration
	WebhookVerifyToken string `env:"WEBHOOK_VERIFY_TOKEN,required"` // Verify token cho webhook subscription

	// Unanswered Alert Worker Configuration
	UnansweredCheckIntervalMinutes int `env:"UNANSWERED_CHECK_INTERVAL_MINUTES" envDefault:"30"` // Chu kỳ quét hội thoại chưa trả lời (phút)
	UnansweredDefaultHours         int `env:"UNANSWERED_DEFAULT_HOURS" envDefault:"24"`          // Ngưỡng giờ mặc định khi automation không cấu hình

	// SMTP Configuration (dùng cho alert email, optional)
	SMTPHost      string `env:"SMTP_HOST"`                // SMTP server host
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"` // SMTP server port
	SMTPUsername  string `env:"SMTP_USERNAME"`            // SMTP username
	SMTPPassword  string `env:"SMTP_PASSWORD"`            // SMTP password
	AlertEmailTo  string `env:"ALERT_EMAIL_TO"`           // Địa chỉ nhận alert (phân cách bởi dấu phẩy)
	AlertEmailFrom string `env:"ALERT_EMAIL_FROM"`        // Địa chỉ gửi alert

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}

// Package router đăng ký route cho domain FAQ.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	faqhdl "meta_engage/internal/api/faq/handler"
	apirouter "meta_engage/internal/api/router"
)

// Register đăng ký route CRUD và các action của FAQ.
// Xóa FAQ bị chặn khi còn faq log tham chiếu (trừ khi log đã được dọn).
func Register(v1 fiber.Router, r *apirouter.Router) error {
	faqHandler, err := faqhdl.NewFaqHandler()
	if err != nil {
		return fmt.Errorf("failed to create faq handler: %w", err)
	}
	logHandler, err := faqhdl.NewFaqLogHandler()
	if err != nil {
		return fmt.Errorf("failed to create faq log handler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/faqs", faqHandler, apirouter.ReadWriteConfig)
	v1.Get("/faqs/search/:pageId", faqHandler.HandleSearch)
	v1.Get("/faqs/statistics/:pageId", faqHandler.HandleStatistics)
	v1.Post("/faqs/:id/send-answer", faqHandler.HandleSendAnswer)
	v1.Post("/faq-logs/:logId/feedback", faqHandler.HandleFeedback)

	r.RegisterCRUDRoutes(v1, "/faq-logs", logHandler, apirouter.ReadOnlyConfig)

	return nil
}

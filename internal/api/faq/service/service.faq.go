// Package faqsvc chứa search, gửi câu trả lời, feedback và thống kê FAQ.
package faqsvc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "meta_engage/internal/api/base/service"
	faqmodels "meta_engage/internal/api/faq/models"
	fbmodels "meta_engage/internal/api/fb/models"
	"meta_engage/internal/common"
	"meta_engage/internal/global"
	"meta_engage/internal/logger"
	"meta_engage/internal/platform"
)

// FaqStatistics kết quả thống kê FAQ của một trang
type FaqStatistics struct {
	TotalFaqs      int64            `json:"totalFaqs"`      // Tổng số FAQ
	ActiveFaqs     int64            `json:"activeFaqs"`     // Số FAQ đang bật
	TotalMatches   int64            `json:"totalMatches"`   // Tổng số lần gửi
	TotalHelpful   int64            `json:"totalHelpful"`   // Tổng feedback hữu ích
	TotalUnhelpful int64            `json:"totalUnhelpful"` // Tổng feedback không hữu ích
	ByCategory     map[string]int64 `json:"byCategory"`     // Số FAQ theo nhóm
	TopUsed        []faqmodels.Faq  `json:"topUsed"`        // Tối đa 5 FAQ dùng nhiều nhất
}

// FaqService là cấu trúc chứa các phương thức liên quan đến FAQ
type FaqService struct {
	*basesvc.BaseServiceMongoImpl[faqmodels.Faq]
	api        platform.API
	logService *FaqLogService
}

// NewFaqService tạo mới FaqService với một platform client cho trước
func NewFaqService(api platform.API) (*FaqService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Faqs)
	if !exist {
		return nil, fmt.Errorf("failed to get faqs collection: %v", common.ErrNotFound)
	}
	logService, err := NewFaqLogService()
	if err != nil {
		return nil, err
	}
	return &FaqService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[faqmodels.Faq](coll),
		api:                  api,
		logService:           logService,
	}, nil
}

// LogService trả về service của faq_logs cho handler dùng CRUD
func (s *FaqService) LogService() *FaqLogService {
	return s.logService
}

// findActiveByPage lấy FAQ đang bật của trang theo thứ tự cấu hình rồi thứ tự tạo
func (s *FaqService) findActiveByPage(ctx context.Context, pageID primitive.ObjectID) ([]faqmodels.Faq, error) {
	filter := bson.M{"pageId": pageID, "isActive": true}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// faqMatchesQuery kiểm tra một FAQ có khớp query không: query là substring của
// question/answer, hoặc keyword và query chứa nhau (test đối xứng, chủ ý rộng).
func faqMatchesQuery(faq *faqmodels.Faq, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	if strings.Contains(strings.ToLower(faq.Question), q) || strings.Contains(strings.ToLower(faq.Answer), q) {
		return true
	}
	for _, kw := range faq.Keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(q, k) || strings.Contains(k, q) {
			return true
		}
	}
	return false
}

// Search quét tuyến tính FAQ đang bật của trang, trả về các FAQ khớp query
func (s *FaqService) Search(ctx context.Context, pageID primitive.ObjectID, query string) ([]faqmodels.Faq, error) {
	faqs, err := s.findActiveByPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	matches := []faqmodels.Faq{}
	for i := range faqs {
		if faqMatchesQuery(&faqs[i], query) {
			matches = append(matches, faqs[i])
		}
	}
	return matches, nil
}

// SendAnswer gửi câu trả lời của FAQ tới người dùng qua nền tảng, ghi một FaqLog
// và tăng usage counter. Lỗi counter/log chỉ ghi log vì tin đã gửi thành công.
func (s *FaqService) SendAnswer(ctx context.Context, faq *faqmodels.Faq, page *fbmodels.FbPage, recipientID string, conversationID primitive.ObjectID, triggeredBy string) (faqmodels.FaqLog, error) {
	var log faqmodels.FaqLog

	result, err := s.api.SendMessage(ctx, page.PageAccessToken, recipientID, faq.Answer)
	if err != nil {
		return log, err
	}

	log = faqmodels.FaqLog{
		FaqID:              faq.ID,
		ConversationID:     conversationID,
		MessageId:          result.MessageID,
		UserFeedback:       faqmodels.FeedbackNone,
		TriggeredByKeyword: triggeredBy,
	}
	created, err := s.logService.InsertOne(ctx, log)
	if err != nil {
		logger.GetAppLogger().WithError(err).WithField("faqId", faq.ID.Hex()).Warn("❓ [FAQ] Ghi log gửi FAQ thất bại")
	} else {
		log = created
	}

	if err := s.IncrementOne(ctx, bson.M{"_id": faq.ID},
		map[string]int64{"matchCount": 1},
		map[string]interface{}{"lastUsedAt": time.Now().UnixMilli()},
	); err != nil {
		logger.GetAppLogger().WithError(err).WithField("faqId", faq.ID.Hex()).Warn("❓ [FAQ] Tăng usage counter thất bại")
	}
	return log, nil
}

// RecordFeedback ghi nhận feedback cho một lần gửi FAQ.
// Giá trị ngoài {helpful, unhelpful, none} là lỗi validation, counter giữ nguyên.
// Đổi feedback sẽ điều chỉnh lại counter cũ trước khi tăng counter mới.
func (s *FaqService) RecordFeedback(ctx context.Context, logID primitive.ObjectID, feedback string) (faqmodels.FaqLog, error) {
	var zero faqmodels.FaqLog

	switch feedback {
	case faqmodels.FeedbackHelpful, faqmodels.FeedbackUnhelpful, faqmodels.FeedbackNone:
	default:
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Feedback không hợp lệ: %q (chỉ chấp nhận helpful, unhelpful, none)", feedback),
			common.StatusBadRequest,
			nil,
		)
	}

	log, err := s.logService.FindOneById(ctx, logID)
	if err != nil {
		return zero, err
	}
	if log.UserFeedback == feedback {
		return log, nil
	}

	inc := feedbackCounterDeltas(log.UserFeedback, feedback)

	updated, err := s.logService.UpdateById(ctx, logID, &basesvc.UpdateData{
		Set: map[string]interface{}{"userFeedback": feedback},
	})
	if err != nil {
		return zero, err
	}

	if len(inc) > 0 {
		if err := s.IncrementOne(ctx, bson.M{"_id": log.FaqID}, inc, nil); err != nil {
			return zero, err
		}
	}
	return updated, nil
}

// feedbackCounterDeltas tính mức tăng giảm counter của FAQ khi feedback
// chuyển từ old sang new. Counter cũ được hoàn lại trước khi tăng counter mới.
func feedbackCounterDeltas(old string, new string) map[string]int64 {
	inc := map[string]int64{}
	switch old {
	case faqmodels.FeedbackHelpful:
		inc["helpfulCount"] = -1
	case faqmodels.FeedbackUnhelpful:
		inc["unhelpfulCount"] = -1
	}
	switch new {
	case faqmodels.FeedbackHelpful:
		inc["helpfulCount"] = inc["helpfulCount"] + 1
	case faqmodels.FeedbackUnhelpful:
		inc["unhelpfulCount"] = inc["unhelpfulCount"] + 1
	}
	for k, v := range inc {
		if v == 0 {
			delete(inc, k)
		}
	}
	return inc
}

// Statistics tổng hợp counter của FAQ một trang: tổng, histogram theo nhóm
// và top 5 theo số lần dùng (hòa thì giữ thứ tự tạo).
func (s *FaqService) Statistics(ctx context.Context, pageID primitive.ObjectID) (*FaqStatistics, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	faqs, err := s.Find(ctx, bson.M{"pageId": pageID}, opts)
	if err != nil {
		return nil, err
	}

	stats := &FaqStatistics{
		ByCategory: map[string]int64{},
		TopUsed:    []faqmodels.Faq{},
	}
	for i := range faqs {
		stats.TotalFaqs++
		if faqs[i].IsActive {
			stats.ActiveFaqs++
		}
		stats.TotalMatches += faqs[i].MatchCount
		stats.TotalHelpful += faqs[i].HelpfulCount
		stats.TotalUnhelpful += faqs[i].UnhelpfulCount
		category := faqs[i].Category
		if category == "" {
			category = "uncategorized"
		}
		stats.ByCategory[category]++
	}

	ranked := make([]faqmodels.Faq, len(faqs))
	copy(ranked, faqs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchCount > ranked[j].MatchCount
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	stats.TopUsed = ranked
	return stats, nil
}

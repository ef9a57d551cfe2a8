// Package faqsvc - Test matching của FAQ search và delta counter feedback.
package faqsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	faqmodels "meta_engage/internal/api/faq/models"
)

func TestFaqMatchesQuery_QuestionSubstring(t *testing.T) {
	faq := &faqmodels.Faq{
		Question: "How do I get a refund?",
		Answer:   "Contact our support team.",
	}
	assert.True(t, faqMatchesQuery(faq, "refund"), "query là substring của question phải khớp")
	assert.True(t, faqMatchesQuery(faq, "REFUND"), "matching phải không phân biệt hoa thường")
	assert.False(t, faqMatchesQuery(faq, "shipping"), "query không liên quan không được khớp")
}

func TestFaqMatchesQuery_AnswerSubstring(t *testing.T) {
	faq := &faqmodels.Faq{
		Question: "Operating hours",
		Answer:   "We are open from 9am to 5pm.",
	}
	assert.True(t, faqMatchesQuery(faq, "9am"), "query là substring của answer phải khớp")
}

func TestFaqMatchesQuery_KeywordSymmetric(t *testing.T) {
	faq := &faqmodels.Faq{
		Question: "Return policy",
		Answer:   "30 days.",
		Keywords: []string{"refund", "return"},
	}
	// Keyword nằm trong query
	assert.True(t, faqMatchesQuery(faq, "i want a refund please"), "keyword nằm trong query phải khớp")
	// Query nằm trong keyword
	assert.True(t, faqMatchesQuery(faq, "refun"), "query nằm trong keyword phải khớp")
	assert.False(t, faqMatchesQuery(faq, "cancel"), "query không chứa keyword nào không được khớp")
}

func TestFaqMatchesQuery_EmptyQuery(t *testing.T) {
	faq := &faqmodels.Faq{Question: "Anything", Answer: "Anything"}
	assert.False(t, faqMatchesQuery(faq, ""), "query rỗng không được khớp")
	assert.False(t, faqMatchesQuery(faq, "   "), "query toàn khoảng trắng không được khớp")
}

func TestFaqMatchesQuery_BlankKeywordIgnored(t *testing.T) {
	faq := &faqmodels.Faq{
		Question: "Return policy",
		Answer:   "30 days.",
		Keywords: []string{" ", ""},
	}
	assert.False(t, faqMatchesQuery(faq, "anything else"), "keyword rỗng phải bị bỏ qua")
}

func TestFeedbackCounterDeltas(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
		want map[string]int64
	}{
		{"lần đầu helpful", faqmodels.FeedbackNone, faqmodels.FeedbackHelpful, map[string]int64{"helpfulCount": 1}},
		{"lần đầu unhelpful", faqmodels.FeedbackNone, faqmodels.FeedbackUnhelpful, map[string]int64{"unhelpfulCount": 1}},
		{"đổi helpful sang unhelpful", faqmodels.FeedbackHelpful, faqmodels.FeedbackUnhelpful, map[string]int64{"helpfulCount": -1, "unhelpfulCount": 1}},
		{"rút lại helpful", faqmodels.FeedbackHelpful, faqmodels.FeedbackNone, map[string]int64{"helpfulCount": -1}},
		{"không đổi thì không chỉnh counter", faqmodels.FeedbackHelpful, faqmodels.FeedbackHelpful, map[string]int64{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, feedbackCounterDeltas(c.old, c.new))
		})
	}
}

package fbsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	fbmodels "meta_engage/internal/api/fb/models"
)

func cutoffOf(t *testing.T, filter bson.M) int64 {
	t.Helper()
	cond, ok := filter["lastMessageTime"].(bson.M)
	require.True(t, ok, "filter phải có điều kiện lastMessageTime")
	cutoff, ok := cond["$lt"].(int64)
	require.True(t, ok, "điều kiện lastMessageTime phải là $lt int64")
	return cutoff
}

// Hội thoại có tin cuối 30 giờ trước: quá ngưỡng 24 giờ nhưng chưa quá 48 giờ.
func TestUnansweredFilter_ThresholdBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	pageID := primitive.NewObjectID()
	lastMessage := now.Add(-30 * time.Hour).UnixMilli()

	assert.Less(t, lastMessage, cutoffOf(t, unansweredFilter(pageID, 24, now)))
	assert.GreaterOrEqual(t, lastMessage, cutoffOf(t, unansweredFilter(pageID, 48, now)))
}

func TestUnansweredFilter_OnlyOpenUnanswered(t *testing.T) {
	pageID := primitive.NewObjectID()
	filter := unansweredFilter(pageID, 24, time.Now())

	assert.Equal(t, pageID, filter["pageId"])
	assert.Equal(t, false, filter["isAnswered"])
	assert.Equal(t, fbmodels.ConversationStatusOpen, filter["status"])
}

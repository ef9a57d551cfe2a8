// Package syncsvc - Test parse thời gian của Graph API.
package syncsvc

import (
	"testing"
	"time"
)

func TestParseGraphTime_GraphLayout(t *testing.T) {
	got := ParseGraphTime("2024-03-15T10:30:00+0000")
	want := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC).UnixMilli()
	if got != want {
		t.Errorf("ParseGraphTime layout Graph = %d, muốn %d", got, want)
	}
}

func TestParseGraphTime_RFC3339Fallback(t *testing.T) {
	got := ParseGraphTime("2024-03-15T10:30:00+07:00")
	want := time.Date(2024, 3, 15, 3, 30, 0, 0, time.UTC).UnixMilli()
	if got != want {
		t.Errorf("ParseGraphTime RFC3339 = %d, muốn %d", got, want)
	}
}

func TestParseGraphTime_Invalid(t *testing.T) {
	if got := ParseGraphTime(""); got != 0 {
		t.Errorf("chuỗi rỗng phải trả về 0, got %d", got)
	}
	if got := ParseGraphTime("not-a-time"); got != 0 {
		t.Errorf("chuỗi không hợp lệ phải trả về 0, got %d", got)
	}
}

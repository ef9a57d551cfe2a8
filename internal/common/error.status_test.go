// Package common - Test phân loại lỗi nền tảng và errors.Is với sentinel.
package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestPlatformErrorClassification(t *testing.T) {
	transient := NewPlatformTransientError("timeout khi gọi nền tảng", nil)
	rejected := NewPlatformRejectedError("token hết hạn", nil)

	if !IsPlatformTransient(transient) {
		t.Error("IsPlatformTransient phải nhận diện lỗi transient")
	}
	if IsPlatformTransient(rejected) {
		t.Error("IsPlatformTransient không được nhận diện lỗi rejected")
	}
	if !IsPlatformRejected(rejected) {
		t.Error("IsPlatformRejected phải nhận diện lỗi rejected")
	}
	if IsPlatformRejected(transient) {
		t.Error("IsPlatformRejected không được nhận diện lỗi transient")
	}
}

func TestPlatformErrorClassification_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("gửi tin thất bại: %w", NewPlatformRejectedError("quyền không đủ", nil))
	if !IsPlatformRejected(wrapped) {
		t.Error("IsPlatformRejected phải unwrap được lỗi bọc ngoài")
	}
	if IsPlatformRejected(errors.New("lỗi thường")) {
		t.Error("lỗi thường không được nhận diện là rejected")
	}
}

func TestErrNotFoundSentinel(t *testing.T) {
	err := fmt.Errorf("tra cứu trang: %w", ErrNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is phải nhận diện ErrNotFound qua wrap")
	}
	if errors.Is(ErrDuplicate, ErrNotFound) {
		t.Error("ErrDuplicate không được trùng với ErrNotFound")
	}
}

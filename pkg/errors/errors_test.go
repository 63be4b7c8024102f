package errors

import (
	"errors"
	"testing"
)

func TestWrap_KeepsIdentity(t *testing.T) {
	base := NotFound(12001, "事件不存在")
	err := Wrap(base, "event_id=%s", "e-1")

	if !errors.Is(err, base) {
		t.Fatal("Wrap 后 errors.Is 应识别原始错误")
	}
	appErr, ok := As(err)
	if !ok {
		t.Fatal("As 应提取到 AppError")
	}
	if appErr.Code != 12001 {
		t.Errorf("期望 Code=12001，实际=%d", appErr.Code)
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("期望 KindNotFound，实际=%s", KindOf(err))
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if KindOf(errors.New("db down")) != 0 {
		t.Error("普通错误不应有业务分类")
	}
	if KindOf(nil) != 0 {
		t.Error("nil 不应有业务分类")
	}
}

func TestErrOptimisticLock_IsConflict(t *testing.T) {
	if ErrOptimisticLock.Kind != KindConflict {
		t.Errorf("期望乐观锁错误为 conflict，实际=%s", ErrOptimisticLock.Kind)
	}
}

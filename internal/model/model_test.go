package model

import "testing"

func TestEventStatus_OwnerSettable(t *testing.T) {
	cases := map[EventStatus]bool{
		EventStatusBusy:        true,
		EventStatusSwappable:   true,
		EventStatusSwapPending: false,
		EventStatus("FREE"):    false,
	}
	for status, want := range cases {
		if got := status.OwnerSettable(); got != want {
			t.Errorf("%s.OwnerSettable() 期望 %v，实际 %v", status, want, got)
		}
	}
}

func TestEventStatus_Valid(t *testing.T) {
	if !EventStatusSwapPending.Valid() {
		t.Error("SWAP_PENDING 应为合法状态")
	}
	if EventStatus("busy").Valid() {
		t.Error("状态区分大小写，busy 不应合法")
	}
}

func TestSwapStatus_IsTerminal(t *testing.T) {
	if SwapStatusPending.IsTerminal() {
		t.Error("PENDING 不是终态")
	}
	if !SwapStatusAccepted.IsTerminal() || !SwapStatusRejected.IsTerminal() {
		t.Error("ACCEPTED / REJECTED 应为终态")
	}
}

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mayank0365/SlotSwapper/internal/model"
	"github.com/mayank0365/SlotSwapper/internal/repository"
	pkgerrors "github.com/mayank0365/SlotSwapper/pkg/errors"
)

// mockClock 单调递增的创建时间，保证倒序列表顺序确定
type mockClock struct {
	base time.Time
	n    int
}

func (c *mockClock) next() time.Time {
	c.n++
	return c.base.Add(time.Duration(c.n) * time.Second)
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock EventRepository ──
// 按值存储，模拟数据库行；软删除的行对读取不可见

type mockEventRepo struct {
	events  map[string]model.Event
	deleted map[string]bool
	users   *mockUserRepo
	seq     int
	listErr error
}

func newMockEventRepo(users *mockUserRepo) *mockEventRepo {
	return &mockEventRepo{
		events:  make(map[string]model.Event),
		deleted: make(map[string]bool),
		users:   users,
	}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		m.seq++
		event.EventID = fmt.Sprintf("event-%d", m.seq)
	}
	if event.Version == 0 {
		event.Version = 1
	}
	now := time.Now().UTC()
	event.CreatedAt, event.UpdatedAt = now, now
	m.events[event.EventID] = *event
	return nil
}

func (m *mockEventRepo) live(id string) (model.Event, bool) {
	e, ok := m.events[id]
	if !ok || m.deleted[id] {
		return model.Event{}, false
	}
	return e, true
}

func (m *mockEventRepo) withOwner(e model.Event) model.Event {
	if u, ok := m.users.users[e.OwnerID]; ok {
		e.Owner = u
	}
	return e
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	e, ok := m.live(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	e = m.withOwner(e)
	return &e, nil
}

func (m *mockEventRepo) GetByIDsForUpdate(_ context.Context, ids []string) ([]model.Event, error) {
	seen := make(map[string]bool)
	var result []model.Event
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if e, ok := m.live(id); ok {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EventID < result[j].EventID })
	return result, nil
}

func (m *mockEventRepo) sorted(filter func(model.Event) bool) []model.Event {
	var result []model.Event
	for id, e := range m.events {
		if m.deleted[id] || !filter(e) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result
}

func (m *mockEventRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Event, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sorted(func(e model.Event) bool { return e.OwnerID == ownerID }), nil
}

func (m *mockEventRepo) ListSwappable(_ context.Context, excludeOwnerID string) ([]model.Event, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := m.sorted(func(e model.Event) bool {
		return e.Status == model.EventStatusSwappable && e.OwnerID != excludeOwnerID
	})
	for i := range result {
		result[i] = m.withOwner(result[i])
	}
	return result, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	stored, ok := m.live(event.EventID)
	if !ok || stored.Version != event.Version {
		return pkgerrors.ErrOptimisticLock
	}
	event.Version++
	event.UpdatedAt = time.Now().UTC()
	row := *event
	row.Owner = nil
	m.events[event.EventID] = row
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string, _ string) error {
	m.deleted[id] = true
	return nil
}

// ── Mock SwapRequestRepository ──

type mockSwapRequestRepo struct {
	requests map[string]model.SwapRequest
	users    *mockUserRepo
	events   *mockEventRepo
	clock    *mockClock
	seq      int
}

func newMockSwapRequestRepo(users *mockUserRepo, events *mockEventRepo) *mockSwapRequestRepo {
	return &mockSwapRequestRepo{
		requests: make(map[string]model.SwapRequest),
		users:    users,
		events:   events,
		clock:    &mockClock{base: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func (m *mockSwapRequestRepo) Create(_ context.Context, req *model.SwapRequest) error {
	// 模拟部分唯一索引 uq_swap_requests_pending_pair
	if req.Status == model.SwapStatusPending {
		for _, r := range m.requests {
			if r.Status == model.SwapStatusPending && r.MySlotID == req.MySlotID && r.TheirSlotID == req.TheirSlotID {
				return repository.ErrDuplicateKey
			}
		}
	}
	if req.SwapRequestID == "" {
		m.seq++
		req.SwapRequestID = fmt.Sprintf("swap-%d", m.seq)
	}
	req.Version = 1
	req.CreatedAt = m.clock.next()
	req.UpdatedAt = req.CreatedAt
	m.requests[req.SwapRequestID] = *req
	return nil
}

func (m *mockSwapRequestRepo) populate(r model.SwapRequest) model.SwapRequest {
	r.Requester = m.users.users[r.RequesterID]
	r.Receiver = m.users.users[r.ReceiverID]
	r.MySlot, r.TheirSlot = nil, nil
	if e, ok := m.events.live(r.MySlotID); ok {
		r.MySlot = &e
	}
	if e, ok := m.events.live(r.TheirSlotID); ok {
		r.TheirSlot = &e
	}
	return r
}

func (m *mockSwapRequestRepo) GetByID(_ context.Context, id string) (*model.SwapRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r = m.populate(r)
	return &r, nil
}

func (m *mockSwapRequestRepo) GetByIDForUpdate(_ context.Context, id string) (*model.SwapRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (m *mockSwapRequestRepo) ExistsPending(_ context.Context, mySlotID, theirSlotID string) (bool, error) {
	for _, r := range m.requests {
		if r.Status == model.SwapStatusPending && r.MySlotID == mySlotID && r.TheirSlotID == theirSlotID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSwapRequestRepo) Update(_ context.Context, req *model.SwapRequest) error {
	stored, ok := m.requests[req.SwapRequestID]
	if !ok || stored.Version != req.Version {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version++
	m.requests[req.SwapRequestID] = *req
	return nil
}

func (m *mockSwapRequestRepo) list(filter func(model.SwapRequest) bool) []model.SwapRequest {
	var result []model.SwapRequest
	for _, r := range m.requests {
		if filter(r) {
			result = append(result, m.populate(r))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (m *mockSwapRequestRepo) ListByReceiver(_ context.Context, receiverID string) ([]model.SwapRequest, error) {
	return m.list(func(r model.SwapRequest) bool { return r.ReceiverID == receiverID }), nil
}

func (m *mockSwapRequestRepo) ListByRequester(_ context.Context, requesterID string) ([]model.SwapRequest, error) {
	return m.list(func(r model.SwapRequest) bool { return r.RequesterID == requesterID }), nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	tokens map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{tokens: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.tokens[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.tokens[jti]
	return ok, nil
}

// ── 测试环境 ──

type testEnv struct {
	repo   *repository.Repository
	users  *mockUserRepo
	events *mockEventRepo
	swaps  *mockSwapRequestRepo
	logger *zap.Logger
}

func newTestEnv() *testEnv {
	users := newMockUserRepo()
	events := newMockEventRepo(users)
	swaps := newMockSwapRequestRepo(users, events)
	return &testEnv{
		repo: &repository.Repository{
			User:        users,
			Event:       events,
			SwapRequest: swaps,
		},
		users:  users,
		events: events,
		swaps:  swaps,
		logger: zap.NewNop(),
	}
}

var testBase = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func (e *testEnv) addUser(id, name string) *model.User {
	u := &model.User{UserID: id, Name: name, Email: id + "@example.com"}
	e.users.users[id] = u
	return u
}

// addEvent 直接写入一行时间段，开始时间为 testBase 后 offset 小时，时长 1 小时
func (e *testEnv) addEvent(id, ownerID string, status model.EventStatus, offset int) model.Event {
	start := testBase.Add(time.Duration(offset) * time.Hour)
	ev := model.Event{
		EventID:   id,
		Title:     id,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
		OwnerID:   ownerID,
	}
	ev.Version = 1
	e.events.events[id] = ev
	return ev
}

// event 读取当前存储的时间段行
func (e *testEnv) event(id string) model.Event {
	return e.events.events[id]
}

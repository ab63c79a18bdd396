package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"employee-schedule/server/internal/model"
	"employee-schedule/server/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("uid-%03d", m.seq)
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

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
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

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.Keyword != "" &&
				!strings.Contains(u.Username, filters.Keyword) &&
				!strings.Contains(u.Email, filters.Keyword) {
				continue
			}
			if filters.Role != "" && string(u.Role) != filters.Role {
				continue
			}
		}
		result = append(result, *u)
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
	users  *mockUserRepo // 展开归属用户
	seq    int
}

func newMockShiftRepo(users *mockUserRepo) *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift), users: users}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.seq++
		shift.ShiftID = fmt.Sprintf("shift-%03d", m.seq)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	s, ok := m.shifts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.preloadUser(s)
	return s, nil
}

func (m *mockShiftRepo) preloadUser(s *model.Shift) {
	if s.UserID != nil && m.users != nil {
		if u, ok := m.users.users[*s.UserID]; ok {
			s.User = u
		}
	}
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	if _, ok := m.shifts[shift.ShiftID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string) error {
	delete(m.shifts, id)
	return nil
}

func (m *mockShiftRepo) List(_ context.Context, filters *repository.ShiftListFilters, offset, limit int) ([]model.Shift, int64, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if filters != nil {
			if filters.OwnerID != "" && (s.UserID == nil || *s.UserID != filters.OwnerID) {
				continue
			}
			if filters.UserID != "" && (s.UserID == nil || *s.UserID != filters.UserID) {
				continue
			}
			if filters.Role != "" && s.Role != filters.Role {
				continue
			}
			if filters.Location != "" && s.Location != filters.Location {
				continue
			}
			if filters.Keyword != "" &&
				!strings.Contains(s.Role, filters.Keyword) &&
				!strings.Contains(s.Location, filters.Keyword) {
				continue
			}
		}
		m.preloadUser(s)
		result = append(result, *s)
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockShiftRepo) ListByOwnerBetween(_ context.Context, ownerID string, from, to time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.UserID == nil || *s.UserID != ownerID {
			continue
		}
		if s.StartTime.Before(from) || !s.StartTime.Before(to) {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock AvailabilityRepository ──

type mockAvailabilityRepo struct {
	items map[string]*model.Availability
	seq   int
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{items: make(map[string]*model.Availability)}
}

func (m *mockAvailabilityRepo) Create(_ context.Context, a *model.Availability) error {
	if a.AvailabilityID == "" {
		m.seq++
		a.AvailabilityID = fmt.Sprintf("avail-%03d", m.seq)
	}
	m.items[a.AvailabilityID] = a
	return nil
}

func (m *mockAvailabilityRepo) GetByID(_ context.Context, id string) (*model.Availability, error) {
	if a, ok := m.items[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAvailabilityRepo) Update(_ context.Context, a *model.Availability) error {
	if _, ok := m.items[a.AvailabilityID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.items[a.AvailabilityID] = a
	return nil
}

func (m *mockAvailabilityRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockAvailabilityRepo) List(_ context.Context, filters *repository.AvailabilityListFilters, offset, limit int) ([]model.Availability, int64, error) {
	var result []model.Availability
	for _, a := range m.items {
		if filters != nil {
			if filters.OwnerID != "" && a.UserID != filters.OwnerID {
				continue
			}
			if filters.UserID != "" && a.UserID != filters.UserID {
				continue
			}
			if filters.Date != nil && !a.Date.Equal(*filters.Date) {
				continue
			}
			if filters.IsAvailable != nil && a.IsAvailable != *filters.IsAvailable {
				continue
			}
		}
		result = append(result, *a)
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

// ── Mock PTORequestRepository ──

type mockPTORepo struct {
	items map[string]*model.PTORequest
	seq   int
}

func newMockPTORepo() *mockPTORepo {
	return &mockPTORepo{items: make(map[string]*model.PTORequest)}
}

func (m *mockPTORepo) Create(_ context.Context, p *model.PTORequest) error {
	if p.PTORequestID == "" {
		m.seq++
		p.PTORequestID = fmt.Sprintf("pto-%03d", m.seq)
	}
	m.items[p.PTORequestID] = p
	return nil
}

func (m *mockPTORepo) GetByID(_ context.Context, id string) (*model.PTORequest, error) {
	if p, ok := m.items[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPTORepo) Update(_ context.Context, p *model.PTORequest) error {
	if _, ok := m.items[p.PTORequestID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.items[p.PTORequestID] = p
	return nil
}

func (m *mockPTORepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockPTORepo) List(_ context.Context, filters *repository.PTOListFilters, offset, limit int) ([]model.PTORequest, int64, error) {
	var result []model.PTORequest
	for _, p := range m.items {
		if filters != nil {
			if filters.OwnerID != "" && p.UserID != filters.OwnerID {
				continue
			}
			if filters.UserID != "" && p.UserID != filters.UserID {
				continue
			}
			if filters.Status != "" && p.Status != filters.Status {
				continue
			}
			if filters.Type != "" && p.Type != filters.Type {
				continue
			}
		}
		result = append(result, *p)
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

// ── Mock ShiftSwapRepository ──

type mockSwapRepo struct {
	items  map[string]*model.ShiftSwap
	shifts *mockShiftRepo // ApproveAndReassign 需要同步改写班次归属
	seq    int

	// failApprove 注入事务失败，验证调用方不产生部分可见状态
	failApprove error
}

func newMockSwapRepo(shifts *mockShiftRepo) *mockSwapRepo {
	return &mockSwapRepo{items: make(map[string]*model.ShiftSwap), shifts: shifts}
}

func (m *mockSwapRepo) Create(_ context.Context, s *model.ShiftSwap) error {
	if s.ShiftSwapID == "" {
		m.seq++
		s.ShiftSwapID = fmt.Sprintf("swap-%03d", m.seq)
	}
	m.items[s.ShiftSwapID] = s
	return nil
}

func (m *mockSwapRepo) GetByID(_ context.Context, id string) (*model.ShiftSwap, error) {
	if s, ok := m.items[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapRepo) Update(_ context.Context, s *model.ShiftSwap) error {
	if _, ok := m.items[s.ShiftSwapID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.items[s.ShiftSwapID] = s
	return nil
}

func (m *mockSwapRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockSwapRepo) List(_ context.Context, filters *repository.SwapListFilters, offset, limit int) ([]model.ShiftSwap, int64, error) {
	var result []model.ShiftSwap
	for _, s := range m.items {
		if filters != nil {
			if filters.InvolvedUserID != "" &&
				s.FromUserID != filters.InvolvedUserID &&
				(s.ToUserID == nil || *s.ToUserID != filters.InvolvedUserID) {
				continue
			}
			if filters.Status != "" && s.Status != filters.Status {
				continue
			}
			if filters.FromUserID != "" && s.FromUserID != filters.FromUserID {
				continue
			}
			if filters.ToUserID != "" && (s.ToUserID == nil || *s.ToUserID != filters.ToUserID) {
				continue
			}
		}
		result = append(result, *s)
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

// ApproveAndReassign 事务语义：失败时换班状态与班次归属都不变
func (m *mockSwapRepo) ApproveAndReassign(_ context.Context, swapID, shiftID, toUserID string) error {
	if m.failApprove != nil {
		return m.failApprove
	}
	swap, ok := m.items[swapID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	shift, ok := m.shifts.shifts[shiftID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	swap.Status = model.StatusApproved
	shift.UserID = &toUserID
	return nil
}

// ── Mock ResetTokenRepository ──

type mockResetTokenRepo struct {
	tokens map[string]*model.PasswordResetToken
	users  *mockUserRepo // ConsumeAndSetPassword 需要同步写入密码哈希
	seq    int

	// lookupCount 统计 GetByToken 调用次数，验证校验顺序
	lookupCount int
	// failConsume 注入事务失败
	failConsume error
}

func newMockResetTokenRepo(users *mockUserRepo) *mockResetTokenRepo {
	return &mockResetTokenRepo{tokens: make(map[string]*model.PasswordResetToken), users: users}
}

func (m *mockResetTokenRepo) Create(_ context.Context, t *model.PasswordResetToken) error {
	if t.ResetTokenID == "" {
		m.seq++
		t.ResetTokenID = fmt.Sprintf("rt-%03d", m.seq)
	}
	m.tokens[t.ResetTokenID] = t
	return nil
}

func (m *mockResetTokenRepo) GetByToken(_ context.Context, token string) (*model.PasswordResetToken, error) {
	m.lookupCount++
	for _, t := range m.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResetTokenRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, id)
		}
	}
	return nil
}

// ConsumeAndSetPassword 事务语义：失败时令牌与密码都不变
func (m *mockResetTokenRepo) ConsumeAndSetPassword(_ context.Context, tokenID, userID, passwordHash string) error {
	if m.failConsume != nil {
		return m.failConsume
	}
	t, ok := m.tokens[tokenID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u, ok := m.users.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.IsUsed = true
	u.PasswordHash = passwordHash
	return nil
}

// ── Mock Mailer ──

type sentMail struct {
	to      string
	subject string
	body    string
}

type mockMailer struct {
	sent []sentMail

	// failures 前 N 次 Send 返回错误，用于验证重试
	failures int
}

func (m *mockMailer) Send(to, subject, body string) error {
	if m.failures > 0 {
		m.failures--
		return errors.New("smtp 连接失败")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// ── 公共辅助 ──

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func newTestRepository(
	users *mockUserRepo,
	shifts *mockShiftRepo,
	avails *mockAvailabilityRepo,
	ptos *mockPTORepo,
	swaps *mockSwapRepo,
	tokens *mockResetTokenRepo,
) *repository.Repository {
	return &repository.Repository{
		User:         users,
		Shift:        shifts,
		Availability: avails,
		PTORequest:   ptos,
		ShiftSwap:    swaps,
		ResetToken:   tokens,
	}
}

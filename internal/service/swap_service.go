package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/model"
	"employee-schedule/server/internal/repository"
)

// ── 换班模块业务错误 ──

var (
	ErrSwapNotFound       = errors.New("换班申请不存在")
	ErrNotSwapRecipient   = errors.New("只能处理指派给自己的换班申请")
	ErrSwapAlreadyHandled = errors.New("换班申请已处理")
)

// SwapService 换班业务接口
// accept/reject 只允许换班申请的接班人操作；接受时班次归属转移与状态变更同事务
type SwapService interface {
	Create(ctx context.Context, req *dto.CreateSwapRequest, callerID string, callerRole model.Role) (*dto.ShiftSwapResponse, error)
	GetByID(ctx context.Context, id string, callerID string, callerRole model.Role) (*dto.ShiftSwapResponse, error)
	List(ctx context.Context, req *dto.SwapListRequest, callerID string, callerRole model.Role) ([]dto.ShiftSwapResponse, int64, error)
	Delete(ctx context.Context, id string, callerID string, callerRole model.Role) error
	Accept(ctx context.Context, id string, callerID string) (*dto.ShiftSwapResponse, error)
	Reject(ctx context.Context, id string, callerID string) (*dto.ShiftSwapResponse, error)
}

type swapService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSwapService 创建 SwapService 实例
func NewSwapService(repo *repository.Repository, logger *zap.Logger) SwapService {
	return &swapService{repo: repo, logger: logger}
}

func (s *swapService) Create(ctx context.Context, req *dto.CreateSwapRequest, callerID string, callerRole model.Role) (*dto.ShiftSwapResponse, error) {
	fromUserID := callerID
	if req.FromUserID != nil {
		fromUserID = *req.FromUserID
	}
	// 非 admin 不得以他人名义发起换班
	if fromUserID != callerID && callerRole != model.RoleAdmin {
		return nil, ErrNoPermission
	}

	if _, err := s.repo.Shift.GetByID(ctx, req.ShiftID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}

	if req.ToUserID != nil {
		if _, err := s.repo.User.GetByID(ctx, *req.ToUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	swap := &model.ShiftSwap{
		ShiftID:    req.ShiftID,
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		Status:     model.StatusPending,
	}

	if err := s.repo.ShiftSwap.Create(ctx, swap); err != nil {
		s.logger.Error("创建换班申请失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.ShiftSwap.GetByID(ctx, swap.ShiftSwapID)
	if err != nil {
		return nil, err
	}
	return toSwapResponse(created), nil
}

func (s *swapService) GetByID(ctx context.Context, id string, callerID string, callerRole model.Role) (*dto.ShiftSwapResponse, error) {
	swap, err := s.repo.ShiftSwap.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		s.logger.Error("查询换班申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// employee 只能看到自己参与的换班；越界访问与不存在同样表现为未找到
	if !callerRole.CanManage() && !involvedIn(swap, callerID) {
		return nil, ErrSwapNotFound
	}
	return toSwapResponse(swap), nil
}

func (s *swapService) List(ctx context.Context, req *dto.SwapListRequest, callerID string, callerRole model.Role) ([]dto.ShiftSwapResponse, int64, error) {
	filters := &repository.SwapListFilters{
		Status:     req.Status,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
	}

	// employee 只能看到自己作为发起方或接班方的记录
	if !callerRole.CanManage() {
		filters.InvolvedUserID = callerID
	}

	items, total, err := s.repo.ShiftSwap.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出换班申请失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ShiftSwapResponse, 0, len(items))
	for i := range items {
		result = append(result, *toSwapResponse(&items[i]))
	}
	return result, total, nil
}

func (s *swapService) Delete(ctx context.Context, id string, callerID string, callerRole model.Role) error {
	swap, err := s.repo.ShiftSwap.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSwapNotFound
		}
		s.logger.Error("查询换班申请失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 仅发起人可撤回；admin 可清理任意记录
	if callerRole != model.RoleAdmin && swap.FromUserID != callerID {
		return ErrNoPermission
	}

	if err := s.repo.ShiftSwap.Delete(ctx, id); err != nil {
		s.logger.Error("删除换班申请失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *swapService) Accept(ctx context.Context, id string, callerID string) (*dto.ShiftSwapResponse, error) {
	swap, err := s.loadForDecision(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	// 状态变更与班次归属转移必须原子生效
	if err := s.repo.ShiftSwap.ApproveAndReassign(ctx, swap.ShiftSwapID, swap.ShiftID, callerID); err != nil {
		s.logger.Error("接受换班申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.ShiftSwap.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSwapResponse(updated), nil
}

func (s *swapService) Reject(ctx context.Context, id string, callerID string) (*dto.ShiftSwapResponse, error) {
	swap, err := s.loadForDecision(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	swap.Status = model.StatusRejected
	if err := s.repo.ShiftSwap.Update(ctx, swap); err != nil {
		s.logger.Error("拒绝换班申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSwapResponse(swap), nil
}

// loadForDecision 加载待处理换班并校验：调用者必须是接班人，且申请仍处于 pending
func (s *swapService) loadForDecision(ctx context.Context, id string, callerID string) (*model.ShiftSwap, error) {
	swap, err := s.repo.ShiftSwap.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		s.logger.Error("查询换班申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if swap.ToUserID == nil || *swap.ToUserID != callerID {
		return nil, ErrNotSwapRecipient
	}
	if swap.Status != model.StatusPending {
		return nil, ErrSwapAlreadyHandled
	}
	return swap, nil
}

func involvedIn(swap *model.ShiftSwap, userID string) bool {
	if swap.FromUserID == userID {
		return true
	}
	return swap.ToUserID != nil && *swap.ToUserID == userID
}

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

// ── 班次模块业务错误 ──

var (
	ErrShiftNotFound  = errors.New("班次不存在")
	ErrShiftTimeOrder = errors.New("班次结束时间必须晚于开始时间")
)

// ShiftService 班次业务接口
// 创建/更新/删除在路由层限定 admin/manager；AssignUser 仅要求已认证（与既有客户端行为一致）
type ShiftService interface {
	Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error)
	GetByID(ctx context.Context, id string, callerID string, callerRole model.Role) (*dto.ShiftResponse, error)
	List(ctx context.Context, req *dto.ShiftListRequest, callerID string, callerRole model.Role) ([]dto.ShiftResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error)
	Delete(ctx context.Context, id string) error
	AssignUser(ctx context.Context, id string, req *dto.AssignUserRequest) (*dto.ShiftResponse, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

func (s *shiftService) Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrShiftTimeOrder
	}

	// 指定归属时校验用户存在
	if req.UserID != nil {
		if _, err := s.repo.User.GetByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	shift := &model.Shift{
		UserID:    req.UserID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Role:      req.Role,
		Location:  req.Location,
	}

	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		s.logger.Error("创建班次失败", zap.Error(err))
		return nil, err
	}

	// 重新加载以展开归属用户
	created, err := s.repo.Shift.GetByID(ctx, shift.ShiftID)
	if err != nil {
		return nil, err
	}
	return toShiftResponse(created), nil
}

func (s *shiftService) GetByID(ctx context.Context, id string, callerID string, callerRole model.Role) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// employee 只能看到自己的班次；越界访问与不存在同样表现为未找到
	if !callerRole.CanManage() {
		if shift.UserID == nil || *shift.UserID != callerID {
			return nil, ErrShiftNotFound
		}
	}

	return toShiftResponse(shift), nil
}

func (s *shiftService) List(ctx context.Context, req *dto.ShiftListRequest, callerID string, callerRole model.Role) ([]dto.ShiftResponse, int64, error) {
	filters := &repository.ShiftListFilters{
		UserID:   req.UserID,
		Role:     req.Role,
		Location: req.Location,
		Keyword:  req.Keyword,
	}

	// employee 可见性收窄为本人班次
	if !callerRole.CanManage() {
		filters.OwnerID = callerID
	}

	shifts, total, err := s.repo.Shift.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出班次失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, *toShiftResponse(&shifts[i]))
	}
	return result, total, nil
}

func (s *shiftService) Update(ctx context.Context, id string, req *dto.UpdateShiftRequest) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 应用更新字段（仅更新非 nil 字段）
	if req.UserID != nil {
		if _, err := s.repo.User.GetByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		shift.UserID = req.UserID
		shift.User = nil
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if !shift.EndTime.After(shift.StartTime) {
		return nil, ErrShiftTimeOrder
	}
	if req.Role != nil {
		shift.Role = *req.Role
	}
	if req.Location != nil {
		shift.Location = *req.Location
	}

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		s.logger.Error("更新班次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toShiftResponse(updated), nil
}

func (s *shiftService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Shift.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Shift.Delete(ctx, id); err != nil {
		s.logger.Error("删除班次失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *shiftService) AssignUser(ctx context.Context, id string, req *dto.AssignUserRequest) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", req.UserID), zap.Error(err))
		return nil, err
	}

	shift.UserID = &user.UserID
	shift.User = user

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		s.logger.Error("指派班次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toShiftResponse(shift), nil
}

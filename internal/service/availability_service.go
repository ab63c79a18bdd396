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

// ── 可用性模块业务错误 ──

var (
	ErrAvailabilityNotFound = errors.New("可用性记录不存在")
	ErrNoPermission         = errors.New("无权操作")
)

// AvailabilityService 可用性业务接口
// 对象级权限：admin 或记录归属者本人；manager 可列出全部但不能改他人记录
type AvailabilityService interface {
	Create(ctx context.Context, req *dto.CreateAvailabilityRequest, callerID string, callerRole model.Role) (*dto.AvailabilityResponse, error)
	GetByID(ctx context.Context, id string, callerID string, callerRole model.Role) (*dto.AvailabilityResponse, error)
	List(ctx context.Context, req *dto.AvailabilityListRequest, callerID string, callerRole model.Role) ([]dto.AvailabilityResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateAvailabilityRequest, callerID string, callerRole model.Role) (*dto.AvailabilityResponse, error)
	Delete(ctx context.Context, id string, callerID string, callerRole model.Role) error
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

// canAccessObject 对象级访问决策：admin 或归属者本人
func canAccessObject(callerRole model.Role, callerID, ownerID string) bool {
	return callerRole == model.RoleAdmin || callerID == ownerID
}

func (s *availabilityService) Create(ctx context.Context, req *dto.CreateAvailabilityRequest, callerID string, callerRole model.Role) (*dto.AvailabilityResponse, error) {
	ownerID := callerID
	if req.UserID != nil {
		ownerID = *req.UserID
	}
	if !canAccessObject(callerRole, callerID, ownerID) {
		return nil, ErrNoPermission
	}

	if _, err := s.repo.User.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	a := &model.Availability{
		UserID:      ownerID,
		Date:        parseDate(req.Date),
		IsAvailable: isAvailable,
	}

	if err := s.repo.Availability.Create(ctx, a); err != nil {
		s.logger.Error("创建可用性记录失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Availability.GetByID(ctx, a.AvailabilityID)
	if err != nil {
		return nil, err
	}
	return toAvailabilityResponse(created), nil
}

func (s *availabilityService) GetByID(ctx context.Context, id string, callerID string, callerRole model.Role) (*dto.AvailabilityResponse, error) {
	a, err := s.repo.Availability.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		s.logger.Error("查询可用性记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !canAccessObject(callerRole, callerID, a.UserID) {
		return nil, ErrNoPermission
	}
	return toAvailabilityResponse(a), nil
}

func (s *availabilityService) List(ctx context.Context, req *dto.AvailabilityListRequest, callerID string, callerRole model.Role) ([]dto.AvailabilityResponse, int64, error) {
	filters := &repository.AvailabilityListFilters{
		UserID:      req.UserID,
		IsAvailable: req.IsAvailable,
	}
	if req.Date != "" {
		d := parseDate(req.Date)
		filters.Date = &d
	}

	// employee 可见性收窄为本人记录
	if !callerRole.CanManage() {
		filters.OwnerID = callerID
	}

	items, total, err := s.repo.Availability.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出可用性记录失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AvailabilityResponse, 0, len(items))
	for i := range items {
		result = append(result, *toAvailabilityResponse(&items[i]))
	}
	return result, total, nil
}

func (s *availabilityService) Update(ctx context.Context, id string, req *dto.UpdateAvailabilityRequest, callerID string, callerRole model.Role) (*dto.AvailabilityResponse, error) {
	a, err := s.repo.Availability.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		s.logger.Error("查询可用性记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !canAccessObject(callerRole, callerID, a.UserID) {
		return nil, ErrNoPermission
	}

	if req.Date != nil {
		a.Date = parseDate(*req.Date)
	}
	if req.IsAvailable != nil {
		a.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Availability.Update(ctx, a); err != nil {
		s.logger.Error("更新可用性记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAvailabilityResponse(a), nil
}

func (s *availabilityService) Delete(ctx context.Context, id string, callerID string, callerRole model.Role) error {
	a, err := s.repo.Availability.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvailabilityNotFound
		}
		s.logger.Error("查询可用性记录失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if !canAccessObject(callerRole, callerID, a.UserID) {
		return ErrNoPermission
	}

	if err := s.repo.Availability.Delete(ctx, id); err != nil {
		s.logger.Error("删除可用性记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

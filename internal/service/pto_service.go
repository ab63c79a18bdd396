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

// ── 请假模块业务错误 ──

var (
	ErrPTONotFound  = errors.New("请假申请不存在")
	ErrPTODateOrder = errors.New("请假结束日期不能早于开始日期")
)

// PTOService 请假业务接口
// 审批只允许 admin/manager；对象级读写权限为 admin 或申请人本人
type PTOService interface {
	Create(ctx context.Context, req *dto.CreatePTORequest, callerID string, callerRole model.Role) (*dto.PTOResponse, error)
	GetByID(ctx context.Context, id string, callerID string, callerRole model.Role) (*dto.PTOResponse, error)
	List(ctx context.Context, req *dto.PTOListRequest, callerID string, callerRole model.Role) ([]dto.PTOResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdatePTORequest, callerID string, callerRole model.Role) (*dto.PTOResponse, error)
	Delete(ctx context.Context, id string, callerID string, callerRole model.Role) error
	Approve(ctx context.Context, id string, callerRole model.Role) (*dto.PTOResponse, error)
	Reject(ctx context.Context, id string, callerRole model.Role) (*dto.PTOResponse, error)
}

type ptoService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPTOService 创建 PTOService 实例
func NewPTOService(repo *repository.Repository, logger *zap.Logger) PTOService {
	return &ptoService{repo: repo, logger: logger}
}

func (s *ptoService) Create(ctx context.Context, req *dto.CreatePTORequest, callerID string, callerRole model.Role) (*dto.PTOResponse, error) {
	ownerID := callerID
	if req.UserID != nil {
		ownerID = *req.UserID
	}
	if !canAccessObject(callerRole, callerID, ownerID) {
		return nil, ErrNoPermission
	}

	start := parseDate(req.StartDate)
	end := parseDate(req.EndDate)
	if end.Before(start) {
		return nil, ErrPTODateOrder
	}

	if _, err := s.repo.User.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	p := &model.PTORequest{
		UserID:    ownerID,
		StartDate: start,
		EndDate:   end,
		Type:      req.Type,
		Status:    model.StatusPending,
		Reason:    req.Reason,
	}

	if err := s.repo.PTORequest.Create(ctx, p); err != nil {
		s.logger.Error("创建请假申请失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.PTORequest.GetByID(ctx, p.PTORequestID)
	if err != nil {
		return nil, err
	}
	return toPTOResponse(created), nil
}

func (s *ptoService) GetByID(ctx context.Context, id string, callerID string, callerRole model.Role) (*dto.PTOResponse, error) {
	p, err := s.repo.PTORequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPTONotFound
		}
		s.logger.Error("查询请假申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !canAccessObject(callerRole, callerID, p.UserID) {
		return nil, ErrNoPermission
	}
	return toPTOResponse(p), nil
}

func (s *ptoService) List(ctx context.Context, req *dto.PTOListRequest, callerID string, callerRole model.Role) ([]dto.PTOResponse, int64, error) {
	filters := &repository.PTOListFilters{
		UserID: req.UserID,
		Status: req.Status,
		Type:   req.Type,
	}

	// employee 可见性收窄为本人申请
	if !callerRole.CanManage() {
		filters.OwnerID = callerID
	}

	items, total, err := s.repo.PTORequest.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出请假申请失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.PTOResponse, 0, len(items))
	for i := range items {
		result = append(result, *toPTOResponse(&items[i]))
	}
	return result, total, nil
}

func (s *ptoService) Update(ctx context.Context, id string, req *dto.UpdatePTORequest, callerID string, callerRole model.Role) (*dto.PTOResponse, error) {
	p, err := s.repo.PTORequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPTONotFound
		}
		s.logger.Error("查询请假申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !canAccessObject(callerRole, callerID, p.UserID) {
		return nil, ErrNoPermission
	}

	if req.StartDate != nil {
		p.StartDate = parseDate(*req.StartDate)
	}
	if req.EndDate != nil {
		p.EndDate = parseDate(*req.EndDate)
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, ErrPTODateOrder
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	if req.Reason != nil {
		p.Reason = *req.Reason
	}

	if err := s.repo.PTORequest.Update(ctx, p); err != nil {
		s.logger.Error("更新请假申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toPTOResponse(p), nil
}

func (s *ptoService) Delete(ctx context.Context, id string, callerID string, callerRole model.Role) error {
	p, err := s.repo.PTORequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPTONotFound
		}
		s.logger.Error("查询请假申请失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if !canAccessObject(callerRole, callerID, p.UserID) {
		return ErrNoPermission
	}

	if err := s.repo.PTORequest.Delete(ctx, id); err != nil {
		s.logger.Error("删除请假申请失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *ptoService) Approve(ctx context.Context, id string, callerRole model.Role) (*dto.PTOResponse, error) {
	return s.transition(ctx, id, callerRole, model.StatusApproved)
}

func (s *ptoService) Reject(ctx context.Context, id string, callerRole model.Role) (*dto.PTOResponse, error) {
	return s.transition(ctx, id, callerRole, model.StatusRejected)
}

// transition 审批状态流转
// 终态申请允许被重复审批覆盖（幂等覆盖语义，与既有客户端行为一致）
func (s *ptoService) transition(ctx context.Context, id string, callerRole model.Role, status string) (*dto.PTOResponse, error) {
	if !callerRole.CanManage() {
		return nil, ErrNoPermission
	}

	p, err := s.repo.PTORequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPTONotFound
		}
		s.logger.Error("查询请假申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	p.Status = status
	if err := s.repo.PTORequest.Update(ctx, p); err != nil {
		s.logger.Error("审批请假申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toPTOResponse(p), nil
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/model"
)

// ── 测试辅助 ──

func setupTestPTOService() (PTOService, *mockUserRepo, *mockPTORepo) {
	users := newMockUserRepo()
	shifts := newMockShiftRepo(users)
	ptos := newMockPTORepo()
	repo := newTestRepository(users, shifts, newMockAvailabilityRepo(), ptos, newMockSwapRepo(shifts), newMockResetTokenRepo(users))
	return NewPTOService(repo, zap.NewNop()), users, ptos
}

func seedPTO(ptos *mockPTORepo, id, userID, status string) *model.PTORequest {
	p := &model.PTORequest{
		PTORequestID: id,
		UserID:       userID,
		StartDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Type:         model.PTOTypeVacation,
		Status:       status,
	}
	ptos.items[id] = p
	return p
}

// ── Create 测试 ──

func TestPTOService_Create_DateOrder(t *testing.T) {
	svc, users, _ := setupTestPTOService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)

	_, err := svc.Create(context.Background(), &dto.CreatePTORequest{
		StartDate: "2026-09-03",
		EndDate:   "2026-09-01",
		Type:      model.PTOTypeVacation,
	}, "uid-001", model.RoleEmployee)
	if !errors.Is(err, ErrPTODateOrder) {
		t.Errorf("期望 ErrPTODateOrder，实际: %v", err)
	}
}

func TestPTOService_Create_SingleDayAllowed(t *testing.T) {
	svc, users, _ := setupTestPTOService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)

	result, err := svc.Create(context.Background(), &dto.CreatePTORequest{
		StartDate: "2026-09-01",
		EndDate:   "2026-09-01",
		Type:      model.PTOTypeSick,
	}, "uid-001", model.RoleEmployee)
	if err != nil {
		t.Fatalf("同日起止应允许: %v", err)
	}
	if result.Status != model.StatusPending {
		t.Errorf("新申请状态应为 pending，实际=%s", result.Status)
	}
}

func TestPTOService_Create_EmployeeCannotImpersonate(t *testing.T) {
	svc, users, _ := setupTestPTOService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)
	seedUser(users, "uid-002", "lisi", model.RoleEmployee)

	_, err := svc.Create(context.Background(), &dto.CreatePTORequest{
		UserID:    strPtr("uid-002"),
		StartDate: "2026-09-01",
		EndDate:   "2026-09-02",
		Type:      model.PTOTypeVacation,
	}, "uid-001", model.RoleEmployee)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

// ── 审批测试 ──

func TestPTOService_Approve_EmployeeForbidden(t *testing.T) {
	svc, _, ptos := setupTestPTOService()
	seedPTO(ptos, "pto-001", "uid-001", model.StatusPending)

	_, err := svc.Approve(context.Background(), "pto-001", model.RoleEmployee)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
	if ptos.items["pto-001"].Status != model.StatusPending {
		t.Error("被拒审批不应改变状态")
	}
}

func TestPTOService_Approve_ManagerAllowed(t *testing.T) {
	svc, _, ptos := setupTestPTOService()
	seedPTO(ptos, "pto-001", "uid-001", model.StatusPending)

	result, err := svc.Approve(context.Background(), "pto-001", model.RoleManager)
	if err != nil {
		t.Fatalf("manager 审批应成功: %v", err)
	}
	if result.Status != model.StatusApproved {
		t.Errorf("期望 approved，实际=%s", result.Status)
	}
}

func TestPTOService_Reject_OverwritesApproved(t *testing.T) {
	svc, _, ptos := setupTestPTOService()
	seedPTO(ptos, "pto-001", "uid-001", model.StatusApproved)

	// 终态允许被重复审批覆盖
	result, err := svc.Reject(context.Background(), "pto-001", model.RoleAdmin)
	if err != nil {
		t.Fatalf("终态覆盖应成功: %v", err)
	}
	if result.Status != model.StatusRejected {
		t.Errorf("期望 rejected，实际=%s", result.Status)
	}
}

func TestPTOService_Approve_NotFound(t *testing.T) {
	svc, _, _ := setupTestPTOService()

	_, err := svc.Approve(context.Background(), "nonexistent", model.RoleAdmin)
	if !errors.Is(err, ErrPTONotFound) {
		t.Errorf("期望 ErrPTONotFound，实际: %v", err)
	}
}

// ── 对象级权限与可见性 ──

func TestPTOService_GetByID_OwnerOrAdminOnly(t *testing.T) {
	svc, _, ptos := setupTestPTOService()
	seedPTO(ptos, "pto-001", "uid-002", model.StatusPending)

	if _, err := svc.GetByID(context.Background(), "pto-001", "uid-002", model.RoleEmployee); err != nil {
		t.Errorf("归属者应可查看: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "pto-001", "uid-009", model.RoleAdmin); err != nil {
		t.Errorf("admin 应可查看: %v", err)
	}
	_, err := svc.GetByID(context.Background(), "pto-001", "uid-001", model.RoleEmployee)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

func TestPTOService_List_EmployeeNarrowed(t *testing.T) {
	svc, _, ptos := setupTestPTOService()
	seedPTO(ptos, "pto-001", "uid-001", model.StatusPending)
	seedPTO(ptos, "pto-002", "uid-002", model.StatusPending)

	_, total, err := svc.List(context.Background(), &dto.PTOListRequest{}, "uid-001", model.RoleEmployee)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 {
		t.Errorf("employee 期望仅本人1条，实际=%d", total)
	}
}

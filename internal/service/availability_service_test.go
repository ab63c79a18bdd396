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

func setupTestAvailabilityService() (AvailabilityService, *mockUserRepo, *mockAvailabilityRepo) {
	users := newMockUserRepo()
	shifts := newMockShiftRepo(users)
	avails := newMockAvailabilityRepo()
	repo := newTestRepository(users, shifts, avails, newMockPTORepo(), newMockSwapRepo(shifts), newMockResetTokenRepo(users))
	return NewAvailabilityService(repo, zap.NewNop()), users, avails
}

func seedAvailability(avails *mockAvailabilityRepo, id, userID string, available bool) *model.Availability {
	a := &model.Availability{
		AvailabilityID: id,
		UserID:         userID,
		Date:           time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		IsAvailable:    available,
	}
	avails.items[id] = a
	return a
}

// ── 对象级权限测试 ──

func TestAvailabilityService_Create_DefaultsToCaller(t *testing.T) {
	svc, users, avails := setupTestAvailabilityService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)

	result, err := svc.Create(context.Background(), &dto.CreateAvailabilityRequest{
		Date: "2026-09-01",
	}, "uid-001", model.RoleEmployee)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if avails.items[result.ID].UserID != "uid-001" {
		t.Error("未指定 user_id 时应归属调用者本人")
	}
	if !avails.items[result.ID].IsAvailable {
		t.Error("is_available 缺省应为 true")
	}
}

func TestAvailabilityService_Create_EmployeeCannotImpersonate(t *testing.T) {
	svc, users, _ := setupTestAvailabilityService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)
	seedUser(users, "uid-002", "lisi", model.RoleEmployee)

	_, err := svc.Create(context.Background(), &dto.CreateAvailabilityRequest{
		UserID: strPtr("uid-002"),
		Date:   "2026-09-01",
	}, "uid-001", model.RoleEmployee)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

func TestAvailabilityService_Create_AdminForAnyone(t *testing.T) {
	svc, users, _ := setupTestAvailabilityService()
	seedUser(users, "uid-001", "admin", model.RoleAdmin)
	seedUser(users, "uid-002", "lisi", model.RoleEmployee)

	_, err := svc.Create(context.Background(), &dto.CreateAvailabilityRequest{
		UserID: strPtr("uid-002"),
		Date:   "2026-09-01",
	}, "uid-001", model.RoleAdmin)
	if err != nil {
		t.Errorf("admin 应可为任意用户创建: %v", err)
	}
}

func TestAvailabilityService_GetByID_ManagerCannotAccessOthers(t *testing.T) {
	svc, users, avails := setupTestAvailabilityService()
	seedUser(users, "uid-001", "manager", model.RoleManager)
	seedUser(users, "uid-002", "lisi", model.RoleEmployee)
	seedAvailability(avails, "avail-001", "uid-002", true)

	// 对象级权限仅 admin 或归属者本人；manager 不在其列
	_, err := svc.GetByID(context.Background(), "avail-001", "uid-001", model.RoleManager)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

func TestAvailabilityService_Delete_OwnerAllowed(t *testing.T) {
	svc, users, avails := setupTestAvailabilityService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)
	seedAvailability(avails, "avail-001", "uid-001", true)

	if err := svc.Delete(context.Background(), "avail-001", "uid-001", model.RoleEmployee); err != nil {
		t.Fatalf("归属者应可删除: %v", err)
	}
	if _, ok := avails.items["avail-001"]; ok {
		t.Error("记录应已删除")
	}
}

// ── List 可见性测试 ──

func TestAvailabilityService_List_ManagerSeesAll(t *testing.T) {
	svc, users, avails := setupTestAvailabilityService()
	seedUser(users, "uid-001", "manager", model.RoleManager)
	seedUser(users, "uid-002", "lisi", model.RoleEmployee)
	seedAvailability(avails, "avail-001", "uid-001", true)
	seedAvailability(avails, "avail-002", "uid-002", false)

	// manager 可列出全部但不能改他人记录
	_, total, err := svc.List(context.Background(), &dto.AvailabilityListRequest{}, "uid-001", model.RoleManager)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 {
		t.Errorf("manager 期望全量2条，实际=%d", total)
	}

	_, total, err = svc.List(context.Background(), &dto.AvailabilityListRequest{}, "uid-002", model.RoleEmployee)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 {
		t.Errorf("employee 期望仅本人1条，实际=%d", total)
	}
}

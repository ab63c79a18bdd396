package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"employee-schedule/server/config"
	"employee-schedule/server/internal/dto"
	"employee-schedule/server/internal/model"
)

// ── 测试辅助 ──

func setupTestResetService() (PasswordResetService, *mockUserRepo, *mockResetTokenRepo, *mockMailer) {
	users := newMockUserRepo()
	shifts := newMockShiftRepo(users)
	tokens := newMockResetTokenRepo(users)
	mail := &mockMailer{}
	repo := newTestRepository(users, shifts, newMockAvailabilityRepo(), newMockPTORepo(), newMockSwapRepo(shifts), tokens)

	cfg := &config.Config{}
	cfg.Server.BaseURL = "http://localhost:5173"
	cfg.Auth.ResetTokenTTL = 24 * time.Hour

	return NewPasswordResetService(cfg, repo, mail, zap.NewNop()), users, tokens, mail
}

func seedResetToken(tokens *mockResetTokenRepo, id, userID, token string, expiresAt time.Time, used bool) *model.PasswordResetToken {
	t := &model.PasswordResetToken{
		ResetTokenID: id,
		UserID:       userID,
		Token:        token,
		ExpiresAt:    expiresAt,
		IsUsed:       used,
	}
	tokens.tokens[id] = t
	return t
}

// ── Request 测试 ──

func TestResetService_Request_UnknownEmailSilentSuccess(t *testing.T) {
	svc, _, tokens, mail := setupTestResetService()

	// 未注册邮箱：与成功路径同样返回 nil，不发信不建令牌
	err := svc.Request(context.Background(), &dto.ResetRequestRequest{Email: "ghost@test.com"})
	if err != nil {
		t.Fatalf("未注册邮箱应静默成功: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Error("未注册邮箱不应发送邮件")
	}
	if len(tokens.tokens) != 0 {
		t.Error("未注册邮箱不应创建令牌")
	}
}

func TestResetService_Request_CreatesTokenAndSendsLink(t *testing.T) {
	svc, users, tokens, mail := setupTestResetService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)

	if err := svc.Request(context.Background(), &dto.ResetRequestRequest{Email: "zhangsan@test.com"}); err != nil {
		t.Fatalf("Request 应成功: %v", err)
	}
	if len(tokens.tokens) != 1 {
		t.Fatalf("期望创建1个令牌，实际=%d", len(tokens.tokens))
	}
	if len(mail.sent) != 1 {
		t.Fatalf("期望发送1封邮件，实际=%d", len(mail.sent))
	}

	var token *model.PasswordResetToken
	for _, tk := range tokens.tokens {
		token = tk
	}
	if mail.sent[0].to != "zhangsan@test.com" {
		t.Errorf("收件人错误: %s", mail.sent[0].to)
	}
	if !strings.Contains(mail.sent[0].body, token.Token) {
		t.Error("邮件正文应包含重置令牌")
	}
	if token.IsUsed {
		t.Error("新令牌不应为已使用状态")
	}
	if remain := time.Until(token.ExpiresAt); remain < 23*time.Hour || remain > 25*time.Hour {
		t.Errorf("令牌有效期应约为24小时，实际剩余=%v", remain)
	}
}

func TestResetService_Request_SingleLiveToken(t *testing.T) {
	svc, users, tokens, _ := setupTestResetService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)
	seedResetToken(tokens, "rt-old", "uid-001", "old-token", time.Now().Add(time.Hour), false)

	if err := svc.Request(context.Background(), &dto.ResetRequestRequest{Email: "zhangsan@test.com"}); err != nil {
		t.Fatalf("Request 应成功: %v", err)
	}
	if len(tokens.tokens) != 1 {
		t.Fatalf("重复申请后用户应只剩1个令牌，实际=%d", len(tokens.tokens))
	}
	if _, ok := tokens.tokens["rt-old"]; ok {
		t.Error("旧令牌应被作废")
	}
}

func TestResetService_Request_RetriesOnceOnMailFailure(t *testing.T) {
	svc, users, _, mail := setupTestResetService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)
	mail.failures = 1

	if err := svc.Request(context.Background(), &dto.ResetRequestRequest{Email: "zhangsan@test.com"}); err != nil {
		t.Fatalf("首次失败后重试应成功: %v", err)
	}
	if len(mail.sent) != 1 {
		t.Errorf("重试成功后应有1封邮件，实际=%d", len(mail.sent))
	}
}

func TestResetService_Request_DeliveryFailure(t *testing.T) {
	svc, users, _, mail := setupTestResetService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)
	mail.failures = 2

	err := svc.Request(context.Background(), &dto.ResetRequestRequest{Email: "zhangsan@test.com"})
	if !errors.Is(err, ErrResetMailDelivery) {
		t.Errorf("期望 ErrResetMailDelivery，实际: %v", err)
	}
}

// ── Confirm 测试 ──

func TestResetService_Confirm_MismatchBeforeLookup(t *testing.T) {
	svc, _, tokens, _ := setupTestResetService()

	err := svc.Confirm(context.Background(), &dto.ResetConfirmRequest{
		Token:           "whatever",
		NewPassword:     "newpassword1",
		PasswordConfirm: "newpassword2",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("期望 ErrPasswordMismatch，实际: %v", err)
	}
	if tokens.lookupCount != 0 {
		t.Error("密码不一致时不应查询令牌")
	}
}

func TestResetService_Confirm_InvalidTokenClasses(t *testing.T) {
	svc, users, tokens, _ := setupTestResetService()
	seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)
	seedResetToken(tokens, "rt-expired", "uid-001", "expired-token", time.Now().Add(-time.Hour), false)
	seedResetToken(tokens, "rt-used", "uid-001", "used-token", time.Now().Add(time.Hour), true)

	// 未知、过期、已用对外表现为同一错误类
	for _, token := range []string{"unknown-token", "expired-token", "used-token"} {
		err := svc.Confirm(context.Background(), &dto.ResetConfirmRequest{
			Token:           token,
			NewPassword:     "newpassword1",
			PasswordConfirm: "newpassword1",
		})
		if !errors.Is(err, ErrResetTokenInvalid) {
			t.Errorf("token=%s 期望 ErrResetTokenInvalid，实际: %v", token, err)
		}
	}
}

func TestResetService_Confirm_Success(t *testing.T) {
	svc, users, tokens, _ := setupTestResetService()
	u := seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)
	oldHash := u.PasswordHash
	seedResetToken(tokens, "rt-001", "uid-001", "valid-token", time.Now().Add(time.Hour), false)

	err := svc.Confirm(context.Background(), &dto.ResetConfirmRequest{
		Token:           "valid-token",
		NewPassword:     "newpassword1",
		PasswordConfirm: "newpassword1",
	})
	if err != nil {
		t.Fatalf("Confirm 应成功: %v", err)
	}
	if !tokens.tokens["rt-001"].IsUsed {
		t.Error("令牌应被标记为已使用")
	}
	if u.PasswordHash == oldHash {
		t.Error("密码哈希应已更新")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpassword1")); err != nil {
		t.Errorf("新哈希应能校验新密码: %v", err)
	}
}

func TestResetService_Confirm_ConsumeFailureLeavesBothUnchanged(t *testing.T) {
	svc, users, tokens, _ := setupTestResetService()
	u := seedUser(users, "uid-001", "zhangsan", model.RoleEmployee)
	oldHash := u.PasswordHash
	seedResetToken(tokens, "rt-001", "uid-001", "valid-token", time.Now().Add(time.Hour), false)
	tokens.failConsume = errors.New("数据库故障")

	err := svc.Confirm(context.Background(), &dto.ResetConfirmRequest{
		Token:           "valid-token",
		NewPassword:     "newpassword1",
		PasswordConfirm: "newpassword1",
	})
	if err == nil {
		t.Fatal("事务失败应返回错误")
	}
	if tokens.tokens["rt-001"].IsUsed {
		t.Error("事务失败后令牌不应被消耗")
	}
	if u.PasswordHash != oldHash {
		t.Error("事务失败后密码不应改变")
	}
}

// ── 令牌生成 ──

func TestGenerateResetToken_UniqueAndURLSafe(t *testing.T) {
	a, err := generateResetToken()
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	b, _ := generateResetToken()
	if a == b {
		t.Error("两次生成的令牌不应相同")
	}
	if strings.ContainsAny(a, "+/=") {
		t.Errorf("令牌应为 URL 安全编码: %s", a)
	}
	if len(a) < 43 {
		t.Errorf("32字节令牌的 base64url 长度应不少于43，实际=%d", len(a))
	}
}

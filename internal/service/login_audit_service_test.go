package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"
)

func TestLoginFailReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: ErrInvalidCredentials, want: constants.LoginFailInvalidCredentials},
		{err: fmt.Errorf("wrap: %w", ErrUserInactive), want: constants.LoginFailUserInactive},
		{err: ErrCaptchaRequired, want: constants.LoginFailCaptcha},
		{err: ErrCaptchaInvalid, want: constants.LoginFailCaptcha},
		{err: errors.New("db down"), want: constants.LoginFailInternal},
	}
	for _, tt := range tests {
		if got := LoginFailReason(tt.err); got != tt.want {
			t.Fatalf("err=%v want %q got %q", tt.err, tt.want, got)
		}
	}
}

func TestLoginAuditServiceRecordAndList(t *testing.T) {
	db := setupServiceTestDB(t)
	user := createServiceTestUser(t, db, "mia", "Passw0rdX", true)
	svc := NewLoginAuditService(repository.NewLoginAuditRepository(db))

	longAgent := strings.Repeat("a", 600)
	inputs := []LoginAuditInput{
		{UserID: user.ID, Username: "mia", ClientIP: "10.0.0.1", UserAgent: longAgent, RequestID: "req-1"},
		{Username: "mia", Err: ErrInvalidCredentials, ClientIP: "10.0.0.2"},
		{UserID: user.ID, Username: " mia ", Err: ErrUserInactive, ClientIP: "10.0.0.3"},
	}
	for _, input := range inputs {
		if err := svc.Record(input); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	audits, total, err := svc.List(repository.LoginAuditListFilter{UserID: user.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(audits) != 2 {
		t.Fatalf("want 2 audits for user got total=%d", total)
	}
	if audits[0].Status != constants.LoginStatusFailed || audits[0].Username != "mia" {
		t.Fatalf("newest first with trimmed username expected, got %+v", audits[0])
	}
	if audits[1].Status != constants.LoginStatusSuccess || len(audits[1].UserAgent) != maxLoginAuditUserAgent {
		t.Fatalf("success audit should keep truncated user agent, got status=%s len=%d", audits[1].Status, len(audits[1].UserAgent))
	}

	_, total, err = svc.List(repository.LoginAuditListFilter{UserID: user.ID, Identities: []string{"MIA", user.Email}})
	if err != nil {
		t.Fatalf("list by identity failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("identity match should include the unlinked failure, got %d", total)
	}

	failed, total, err := svc.List(repository.LoginAuditListFilter{Status: " FAILED "})
	if err != nil {
		t.Fatalf("list failed status failed: %v", err)
	}
	if total != 2 || failed[0].FailReason == "" {
		t.Fatalf("want 2 failed audits got %d", total)
	}
	if _, _, err := svc.List(repository.LoginAuditListFilter{Status: "maybe"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad status want ErrInvalidInput got %v", err)
	}
}

func TestLoginAuditServicePurgeExpired(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewLoginAuditService(repository.NewLoginAuditRepository(db))
	now := time.Now()
	old := &models.LoginAudit{Username: "old", Status: constants.LoginStatusSuccess, CreatedAt: now.Add(-100 * 24 * time.Hour)}
	recent := &models.LoginAudit{Username: "recent", Status: constants.LoginStatusSuccess, CreatedAt: now.Add(-time.Hour)}
	for _, audit := range []*models.LoginAudit{old, recent} {
		if err := db.Create(audit).Error; err != nil {
			t.Fatalf("create audit failed: %v", err)
		}
	}

	removed, err := svc.PurgeExpired(now)
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("want 1 removed got %d", removed)
	}
	var remaining []models.LoginAudit
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("load remaining failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Username != "recent" {
		t.Fatalf("unexpected remaining audits %+v", remaining)
	}
}

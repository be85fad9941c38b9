package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/elisiyan/internal/models"

	"gorm.io/gorm"
)

func insertActivationToken(t *testing.T, db *gorm.DB, userID uint, raw string, expiresAt time.Time) {
	t.Helper()
	token := &models.ActivationToken{
		UserID:    userID,
		TokenHash: hashActivationToken(raw),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	if err := db.Create(token).Error; err != nil {
		t.Fatalf("insert activation token failed: %v", err)
	}
}

func TestUserAuthServiceRegister(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestUserAuthService(db)

	input := RegisterInput{
		Username:        "grace",
		FirstName:       "Grace",
		Email:           "Grace@Example.com",
		Password:        "Passw0rdX",
		ConfirmPassword: "Passw0rdX",
	}
	user, err := svc.Register(input)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.IsActive {
		t.Fatalf("new account must stay inactive until activation")
	}
	if user.Email != "grace@example.com" {
		t.Fatalf("email should be normalized, got %s", user.Email)
	}
	if user.Profile == nil || user.Profile.UserID != user.ID {
		t.Fatalf("profile should be created with the user")
	}
	var tokens int64
	if err := db.Model(&models.ActivationToken{}).Where("user_id = ?", user.ID).Count(&tokens).Error; err != nil {
		t.Fatalf("count tokens failed: %v", err)
	}
	if tokens != 1 {
		t.Fatalf("want 1 activation token got %d", tokens)
	}

	tests := []struct {
		name    string
		mutate  func(in *RegisterInput)
		wantErr error
	}{
		{name: "duplicate_username", mutate: func(in *RegisterInput) { in.Email = "other@example.com" }, wantErr: ErrUsernameExists},
		{name: "duplicate_email", mutate: func(in *RegisterInput) { in.Username = "grace2" }, wantErr: ErrEmailExists},
		{name: "mismatch", mutate: func(in *RegisterInput) { in.Username = "h1"; in.Email = "h1@example.com"; in.ConfirmPassword = "nope" }, wantErr: ErrPasswordMismatch},
		{name: "weak", mutate: func(in *RegisterInput) {
			in.Username = "h2"
			in.Email = "h2@example.com"
			in.Password = "alllower1"
			in.ConfirmPassword = "alllower1"
		}, wantErr: ErrWeakPassword},
		{name: "bad_username", mutate: func(in *RegisterInput) { in.Username = "has space"; in.Email = "h3@example.com" }, wantErr: ErrUsernameInvalid},
		{name: "bad_email", mutate: func(in *RegisterInput) { in.Username = "h4"; in.Email = "not-an-email" }, wantErr: ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input
			tt.mutate(&in)
			if _, err := svc.Register(in); !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUserAuthServiceActivateAndLogin(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestUserAuthService(db)
	user := createServiceTestUser(t, db, "henry", "Passw0rdX", false)

	if _, _, _, err := svc.Login("henry", "Passw0rdX", false); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("inactive login want ErrUserInactive got %v", err)
	}

	insertActivationToken(t, db, user.ID, "expired-token", time.Now().Add(-time.Minute))
	if _, err := svc.Activate(EncodeUID(user.ID), "expired-token"); !errors.Is(err, ErrActivationExpired) {
		t.Fatalf("expired token want ErrActivationExpired got %v", err)
	}
	if _, err := svc.Activate("!!!", "whatever"); !errors.Is(err, ErrActivationInvalid) {
		t.Fatalf("bad uid want ErrActivationInvalid got %v", err)
	}
	if _, err := svc.Activate(EncodeUID(user.ID), "unknown-token"); !errors.Is(err, ErrActivationInvalid) {
		t.Fatalf("unknown token want ErrActivationInvalid got %v", err)
	}

	insertActivationToken(t, db, user.ID, "good-token", time.Now().Add(time.Hour))
	activated, err := svc.Activate(EncodeUID(user.ID), "good-token")
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if !activated.IsActive || activated.EmailVerifiedAt == nil {
		t.Fatalf("user should be active and verified, got %+v", activated)
	}
	if _, err := svc.Activate(EncodeUID(user.ID), "good-token"); !errors.Is(err, ErrActivationInvalid) {
		t.Fatalf("reused token want ErrActivationInvalid got %v", err)
	}

	if _, _, _, err := svc.Login("henry", "wrong", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "Passw0rdX", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}

	loggedIn, token, expiresAt, err := svc.Login("henry", "Passw0rdX", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loggedIn.LastLoginAt == nil {
		t.Fatalf("last login should be recorded")
	}
	if hours := time.Until(expiresAt).Hours(); hours > 2.1 || hours < 1.9 {
		t.Fatalf("token should expire in ~2h, got %.2fh", hours)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "henry" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	_, _, rememberExpiry, err := svc.Login("henry@example.com", "Passw0rdX", true)
	if err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if hours := time.Until(rememberExpiry).Hours(); hours < 47 {
		t.Fatalf("remember me should extend expiry, got %.2fh", hours)
	}
}

func TestUserAuthServiceLogoutRevokesTokens(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestUserAuthService(db)
	user := createServiceTestUser(t, db, "iris", "Passw0rdX", true)

	_, token, _, err := svc.Login("iris", "Passw0rdX", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	state, err := svc.ResolveAuthState(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("resolve auth state failed: %v", err)
	}
	if state.TokenVersion == claims.TokenVersion {
		t.Fatalf("token version should change after logout")
	}
	if _, err := svc.ResolveAuthState(context.Background(), 999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing user want ErrUserNotFound got %v", err)
	}
	if err := svc.Logout(0); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("zero id logout want ErrUserNotFound got %v", err)
	}
}

func TestUserAuthServiceUpdateProfile(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestUserAuthService(db)
	user := createServiceTestUser(t, db, "jack", "Passw0rdX", true)

	if _, err := svc.UpdateProfile(user.ID, ProfileInput{}); !errors.Is(err, ErrProfileEmpty) {
		t.Fatalf("empty update want ErrProfileEmpty got %v", err)
	}
	tooLong := "1234567890123"
	if _, err := svc.UpdateProfile(user.ID, ProfileInput{MobileNo: &tooLong}); !errors.Is(err, ErrMobileNoInvalid) {
		t.Fatalf("long mobile want ErrMobileNoInvalid got %v", err)
	}
	letters := "12ab"
	if _, err := svc.UpdateProfile(user.ID, ProfileInput{MobileNo: &letters}); !errors.Is(err, ErrMobileNoInvalid) {
		t.Fatalf("non-digit mobile want ErrMobileNoInvalid got %v", err)
	}

	first := " Jack "
	mobile := "13800000000"
	updated, err := svc.UpdateProfile(user.ID, ProfileInput{FirstName: &first, MobileNo: &mobile})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.FirstName != "Jack" || updated.Profile == nil || updated.Profile.MobileNo != mobile {
		t.Fatalf("unexpected profile %+v", updated)
	}

	reloaded, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if reloaded.Profile.MobileNo != mobile {
		t.Fatalf("mobile not persisted, got %q", reloaded.Profile.MobileNo)
	}
}

func TestUserAuthServicePurgeStaleActivationTokens(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestUserAuthService(db)
	user := createServiceTestUser(t, db, "kate", "Passw0rdX", false)

	insertActivationToken(t, db, user.ID, "stale", time.Now().Add(-time.Hour))
	insertActivationToken(t, db, user.ID, "fresh", time.Now().Add(time.Hour))

	removed, err := svc.PurgeStaleActivationTokens(time.Now())
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("want 1 removed got %d", removed)
	}
	if _, err := svc.Activate(EncodeUID(user.ID), "fresh"); err != nil {
		t.Fatalf("fresh token should survive purge: %v", err)
	}
}

func TestActivationLinkAndUID(t *testing.T) {
	svc := newTestUserAuthService(nil)
	link := svc.BuildActivationLink(42, "abc")
	if !strings.HasPrefix(link, "http://shop.test/api/v1/users/active/") || !strings.HasSuffix(link, "/abc") {
		t.Fatalf("unexpected activation link %s", link)
	}
	id, err := DecodeUID(EncodeUID(42))
	if err != nil || id != 42 {
		t.Fatalf("uid roundtrip failed: id=%d err=%v", id, err)
	}
	if _, err := DecodeUID(EncodeUID(0)); err == nil {
		t.Fatalf("zero uid should be rejected")
	}
}

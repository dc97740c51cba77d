package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/incampus/backend/internal/pkg/apperrors"
	"github.com/incampus/backend/internal/pkg/auth"
)

func (s *stubUserStore) ClearOTP(_ context.Context, userID int64) error {
	u, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.OTPCode = nil
	u.OTPExpiresAt = nil
	return nil
}

func (s *stubUserStore) UpdateEmail(_ context.Context, userID int64, email string) error {
	for id, u := range s.byID {
		if id != userID && u.Email == email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	u, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Email = email
	return nil
}

func (s *stubUserStore) UpdatePassword(_ context.Context, userID int64, hashedPassword string) error {
	u, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (s *stubUserStore) Delete(_ context.Context, userID int64) error {
	if _, ok := s.byID[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.byID, userID)
	return nil
}

// stubFileStorage records deletions and hands out fixed URLs
type stubFileStorage struct {
	saved   int
	deleted []string
}

func (s *stubFileStorage) SaveFile(_ *multipart.FileHeader, subPath string) (string, error) {
	s.saved++
	return "http://localhost/uploads/" + subPath + "/file", nil
}

func (s *stubFileStorage) DeleteFile(fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

func userFixture(t *testing.T) (*UserService, *stubUserStore, *stubFileStorage, *recordingMailer) {
	t.Helper()

	store := newStubUserStore()
	hashed, err := auth.HashPassword("original-pass")
	if err != nil {
		t.Fatalf("hashing failed: %v", err)
	}
	user := studentUser(0, "Asha", "BWU/BCA/23/101")
	user.Email = "asha@bwu.ac.in"
	user.Password = hashed
	user.IsVerified = true
	if err := store.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}

	storage := &stubFileStorage{}
	mailer := &recordingMailer{}
	return NewUserService(store, storage, mailer), store, storage, mailer
}

func TestSecurityOTPIssuedAndMailed(t *testing.T) {
	svc, store, _, mailer := userFixture(t)
	ctx := context.Background()

	if err := svc.RequestSecurityOTP(ctx, 1); err != nil {
		t.Fatalf("RequestSecurityOTP failed: %v", err)
	}

	u, _ := store.GetByID(ctx, 1)
	if u.OTPCode == nil || u.OTPExpiresAt == nil {
		t.Fatal("security code not stored")
	}
	if mailer.codes["asha@bwu.ac.in"] != *u.OTPCode {
		t.Error("mailed code does not match stored code")
	}
	ttl := time.Until(*u.OTPExpiresAt)
	if ttl < 9*time.Minute || ttl > 11*time.Minute {
		t.Errorf("code TTL = %v, want about 10 minutes", ttl)
	}
}

func TestChangeEmail(t *testing.T) {
	svc, store, _, mailer := userFixture(t)
	ctx := context.Background()

	svc.RequestSecurityOTP(ctx, 1)
	code := mailer.codes["asha@bwu.ac.in"]

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if _, err := svc.ChangeEmail(ctx, 1, wrong, "new@bwu.ac.in"); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Errorf("wrong code: got %v, want ErrInvalidOTP", err)
	}
	if _, err := svc.ChangeEmail(ctx, 1, code, "asha@bwu.ac.in"); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("unchanged address: got %v, want validation failure", err)
	}

	other := studentUser(0, "Rohit", "BWU/BCA/23/102")
	other.Email = "rohit@bwu.ac.in"
	store.Create(ctx, other)
	if _, err := svc.ChangeEmail(ctx, 1, code, "rohit@bwu.ac.in"); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("taken address: got %v, want ErrEmailAlreadyExists", err)
	}

	profile, err := svc.ChangeEmail(ctx, 1, code, "new@bwu.ac.in")
	if err != nil {
		t.Fatalf("ChangeEmail failed: %v", err)
	}
	if profile.Email != "new@bwu.ac.in" {
		t.Errorf("profile email = %s, want new@bwu.ac.in", profile.Email)
	}

	// The code is single use
	if _, err := svc.ChangeEmail(ctx, 1, code, "again@bwu.ac.in"); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Errorf("reused code: got %v, want ErrInvalidOTP", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, store, _, mailer := userFixture(t)
	ctx := context.Background()

	svc.RequestSecurityOTP(ctx, 1)
	code := mailer.codes["asha@bwu.ac.in"]

	if err := svc.ChangePassword(ctx, 1, code, "fresh-password-9"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	u, _ := store.GetByID(ctx, 1)
	if !auth.CheckPassword(u.Password, "fresh-password-9") {
		t.Error("new password does not verify")
	}
	if auth.CheckPassword(u.Password, "original-pass") {
		t.Error("old password still verifies")
	}
	if u.OTPCode != nil {
		t.Error("security code not cleared after use")
	}
}

func TestChangePasswordExpiredCode(t *testing.T) {
	svc, store, _, mailer := userFixture(t)
	ctx := context.Background()

	svc.RequestSecurityOTP(ctx, 1)
	code := mailer.codes["asha@bwu.ac.in"]

	u, _ := store.GetByID(ctx, 1)
	past := time.Now().Add(-time.Minute)
	u.OTPExpiresAt = &past

	if err := svc.ChangePassword(ctx, 1, code, "fresh-password-9"); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Errorf("expired code: got %v, want ErrInvalidOTP", err)
	}
	if !auth.CheckPassword(u.Password, "original-pass") {
		t.Error("password changed despite expired code")
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, store, storage, mailer := userFixture(t)
	ctx := context.Background()

	avatar := "http://localhost/uploads/avatars/old"
	u, _ := store.GetByID(ctx, 1)
	u.AvatarURL = &avatar

	svc.RequestSecurityOTP(ctx, 1)
	code := mailer.codes["asha@bwu.ac.in"]

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if err := svc.DeleteAccount(ctx, 1, wrong); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Errorf("wrong code: got %v, want ErrInvalidOTP", err)
	}
	if _, err := store.GetByID(ctx, 1); err != nil {
		t.Fatal("account removed despite invalid code")
	}

	if err := svc.DeleteAccount(ctx, 1, code); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if _, err := store.GetByID(ctx, 1); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("account still present: %v", err)
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != avatar {
		t.Errorf("avatar file not cleaned up, deleted: %v", storage.deleted)
	}
}

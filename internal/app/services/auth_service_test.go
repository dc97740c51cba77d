package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/pkg/apperrors"
	"github.com/incampus/backend/internal/pkg/auth"
)

// stubUserStore layers account mutations on top of stubUserDirectory
type stubUserStore struct {
	*stubUserDirectory
	nextID int64
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{stubUserDirectory: newStubUserDirectory()}
}

func (s *stubUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range s.byID {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	s.byID[user.ID] = user
	return nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubUserStore) SetOTP(_ context.Context, userID int64, code string, expiresAt time.Time) error {
	u, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.OTPCode = &code
	u.OTPExpiresAt = &expiresAt
	return nil
}

func (s *stubUserStore) MarkVerified(_ context.Context, userID int64) error {
	u, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsVerified = true
	u.OTPCode = nil
	u.OTPExpiresAt = nil
	return nil
}

func (s *stubUserStore) UpdateProfile(_ context.Context, userID int64, name, bio, role *string) (*models.User, error) {
	u, ok := s.byID[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if bio != nil {
		u.Bio = *bio
	}
	if role != nil {
		u.Role = models.RoleType(*role)
	}
	return u, nil
}

func (s *stubUserStore) UpdateAvatarURL(_ context.Context, userID int64, url string) error {
	u, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.AvatarURL = &url
	return nil
}

func (s *stubUserStore) UpdateCoverPhotoURL(_ context.Context, userID int64, url string) error {
	u, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.CoverPhotoURL = &url
	return nil
}

// recordingMailer captures verification codes instead of sending mail
type recordingMailer struct {
	codes map[string]string
	fail  bool
}

func (m *recordingMailer) SendOTP(toEmail, _, code string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	if m.codes == nil {
		m.codes = make(map[string]string)
	}
	m.codes[toEmail] = code
	return nil
}

func authFixture() (*AuthService, *stubUserStore, *recordingMailer) {
	store := newStubUserStore()
	mailer := &recordingMailer{}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "incampus-test",
	})
	return NewAuthService(store, jwtService, mailer), store, mailer
}

func TestSignupCreatesUnverifiedUserWithOTP(t *testing.T) {
	svc, store, mailer := authFixture()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "asha@bwu.ac.in", "secret123", "BWU/BCA/23/101")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.IsVerified {
		t.Error("new user must start unverified")
	}
	if user.Role != models.RoleStudent {
		t.Errorf("role = %s, want student", user.Role)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}

	stored, _ := store.GetByEmail(ctx, "asha@bwu.ac.in")
	if stored.OTPCode == nil || stored.OTPExpiresAt == nil {
		t.Fatal("verification code not stored")
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(*stored.OTPCode) {
		t.Errorf("code %q is not six digits", *stored.OTPCode)
	}
	if mailer.codes["asha@bwu.ac.in"] != *stored.OTPCode {
		t.Error("mailed code does not match stored code")
	}

	ttl := time.Until(*stored.OTPExpiresAt)
	if ttl < 9*time.Minute || ttl > 11*time.Minute {
		t.Errorf("code TTL = %v, want about 10 minutes", ttl)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := authFixture()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "asha@bwu.ac.in", "secret123", "BWU/BCA/23/101"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(ctx, "asha@bwu.ac.in", "other456", "BWU/BCA/23/102"); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("got %v, want ErrEmailAlreadyExists", err)
	}
}

func TestSignupSurvivesMailFailure(t *testing.T) {
	svc, store, mailer := authFixture()
	mailer.fail = true

	if _, err := svc.Signup(context.Background(), "asha@bwu.ac.in", "secret123", "BWU/BCA/23/101"); err != nil {
		t.Fatalf("Signup failed on mail error: %v", err)
	}
	if _, err := store.GetByEmail(context.Background(), "asha@bwu.ac.in"); err != nil {
		t.Error("user not stored despite mail failure")
	}
}

func TestVerifyOTPActivatesAccount(t *testing.T) {
	svc, store, mailer := authFixture()
	ctx := context.Background()

	svc.Signup(ctx, "asha@bwu.ac.in", "secret123", "BWU/BCA/23/101")
	code := mailer.codes["asha@bwu.ac.in"]

	user, token, expiresIn, err := svc.VerifyOTP(ctx, "asha@bwu.ac.in", code)
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if !user.IsVerified {
		t.Error("user not marked verified")
	}
	if token == "" || expiresIn <= 0 {
		t.Errorf("expected a token with positive expiry, got %q / %d", token, expiresIn)
	}

	stored, _ := store.GetByEmail(ctx, "asha@bwu.ac.in")
	if stored.OTPCode != nil {
		t.Error("verification code not cleared")
	}
}

func TestVerifyOTPFailures(t *testing.T) {
	svc, store, mailer := authFixture()
	ctx := context.Background()

	if _, _, _, err := svc.VerifyOTP(ctx, "nobody@bwu.ac.in", "123456"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("unknown email: got %v, want ErrUserNotFound", err)
	}

	svc.Signup(ctx, "asha@bwu.ac.in", "secret123", "BWU/BCA/23/101")
	code := mailer.codes["asha@bwu.ac.in"]

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if _, _, _, err := svc.VerifyOTP(ctx, "asha@bwu.ac.in", wrong); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Errorf("wrong code: got %v, want ErrInvalidOTP", err)
	}

	// Expired codes are rejected even when they match
	stored, _ := store.GetByEmail(ctx, "asha@bwu.ac.in")
	past := time.Now().Add(-time.Minute)
	stored.OTPExpiresAt = &past
	if _, _, _, err := svc.VerifyOTP(ctx, "asha@bwu.ac.in", code); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Errorf("expired code: got %v, want ErrInvalidOTP", err)
	}

	// Verified accounts cannot be verified again
	store.MarkVerified(ctx, stored.ID)
	if _, _, _, err := svc.VerifyOTP(ctx, "asha@bwu.ac.in", code); !errors.Is(err, apperrors.ErrUserAlreadyVerified) {
		t.Errorf("already verified: got %v, want ErrUserAlreadyVerified", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, mailer := authFixture()
	ctx := context.Background()

	svc.Signup(ctx, "asha@bwu.ac.in", "secret123", "BWU/BCA/23/101")

	// Unverified accounts are turned away with the right error
	if _, _, _, err := svc.Login(ctx, "asha@bwu.ac.in", "secret123"); !errors.Is(err, apperrors.ErrEmailNotVerified) {
		t.Errorf("unverified login: got %v, want ErrEmailNotVerified", err)
	}

	svc.VerifyOTP(ctx, "asha@bwu.ac.in", mailer.codes["asha@bwu.ac.in"])

	user, token, expiresIn, err := svc.Login(ctx, "asha@bwu.ac.in", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Email != "asha@bwu.ac.in" || token == "" || expiresIn <= 0 {
		t.Errorf("unexpected login result: %v / %q / %d", user.Email, token, expiresIn)
	}

	if _, _, _, err := svc.Login(ctx, "asha@bwu.ac.in", "wrongpass"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	// Unknown accounts produce the same error as bad passwords
	if _, _, _, err := svc.Login(ctx, "nobody@bwu.ac.in", "secret123"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

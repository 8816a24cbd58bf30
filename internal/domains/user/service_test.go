package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type memRepo struct {
	users map[string]*User
}

func newMemRepo() *memRepo { return &memRepo{users: map[string]*User{}} }

func (m *memRepo) Create(u *User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memRepo) GetByID(id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *memRepo) MobileExists(mobile string) (bool, error) {
	for _, u := range m.users {
		if u.Mobile == mobile {
			return true, nil
		}
	}
	return false, nil
}

func TestQuickSignupIssuesValidToken(t *testing.T) {
	repo := newMemRepo()
	svc := NewUserService(repo, nil, "secret", time.Hour)

	resp, tokens, err := svc.QuickSignup(context.Background(), QuickSignupRequest{
		FirstName: "Ravi",
		LastName:  "Kumar",
		Mobile:    "9876543210",
		Location:  Location{District: "Salem", State: "Tamil Nadu"},
		Password:  "QuickPost@123",
	})
	if err != nil {
		t.Fatalf("QuickSignup: %v", err)
	}
	if !resp.MustChangePassword {
		t.Error("temporary password should be flagged for change")
	}

	stored := repo.users[resp.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("QuickPost@123")); err != nil {
		t.Errorf("password not hashed with bcrypt: %v", err)
	}

	claims, err := svc.ValidateToken(context.Background(), tokens.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != resp.ID || claims.Mobile != "9876543210" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestQuickSignupRejectsDuplicateMobile(t *testing.T) {
	svc := NewUserService(newMemRepo(), nil, "secret", time.Hour)
	req := QuickSignupRequest{FirstName: "Ravi", Mobile: "9876543210", Password: "QuickPost@123"}

	if _, _, err := svc.QuickSignup(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.QuickSignup(context.Background(), req); !errors.Is(err, ErrMobileAlreadyExists) {
		t.Fatalf("got %v, want ErrMobileAlreadyExists", err)
	}

	// accounts without a mobile never collide
	req.Mobile = ""
	for i := 0; i < 2; i++ {
		if _, _, err := svc.QuickSignup(context.Background(), req); err != nil {
			t.Fatalf("signup without mobile %d: %v", i, err)
		}
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	a := NewUserService(newMemRepo(), nil, "secret-a", time.Hour)
	b := NewUserService(newMemRepo(), nil, "secret-b", time.Hour)

	_, tokens, err := a.QuickSignup(context.Background(), QuickSignupRequest{FirstName: "Asha", Password: "QuickPost@123"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.ValidateToken(context.Background(), tokens.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v", err)
	}
	if _, err := a.ValidateToken(context.Background(), "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v", err)
	}
}

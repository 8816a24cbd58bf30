package user

import (
	"testing"

	"github.com/xpanvictor/quickpost/internal/domains/user"
)

func TestEntityRoundTripKeepsEmptyMobileNull(t *testing.T) {
	d := &user.User{ID: "u1", FirstName: "Asha", Location: user.Location{State: "Kerala"}}
	e := NewUserEntityFromDomain(d)
	if e.Mobile != nil {
		t.Fatalf("empty mobile stored as %q, want NULL", *e.Mobile)
	}
	if back := e.ToDomain(); back.Mobile != "" || back.Location.State != "Kerala" {
		t.Errorf("ToDomain = %+v", back)
	}

	d.Mobile = "9876543210"
	e = NewUserEntityFromDomain(d)
	if e.Mobile == nil || *e.Mobile != "9876543210" {
		t.Fatalf("mobile = %v", e.Mobile)
	}
	d.Mobile = "0000000000"
	if *e.Mobile != "9876543210" {
		t.Error("entity aliases the domain string")
	}
}

package auth

import (
	"testing"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func TestTokenRoundTripCarriesRole(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	role := domain.AdminRoleSuper

	token, exp, err := tm.GenerateToken(7, domain.SubjectTypeAdmin, &role)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if exp.IsZero() {
		t.Fatalf("expiry not set")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.SubjectID != 7 || claims.Subject != domain.SubjectTypeAdmin {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Role == nil || *claims.Role != domain.AdminRoleSuper {
		t.Fatalf("role = %v", claims.Role)
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenManager("one", 5).GenerateToken(1, domain.SubjectTypeUser, nil)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := NewTokenManager("two", 5).ParseToken(token); err == nil {
		t.Fatalf("ParseToken() accepted a token signed with another secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if err := ComparePassword(hash, "hunter22"); err != nil {
		t.Fatalf("ComparePassword() rejected the right password: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatalf("ComparePassword() accepted the wrong password")
	}
}

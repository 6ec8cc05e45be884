package security

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "hunter23") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestSignAndParseUserToken(t *testing.T) {
	signed, err := SignUserToken("test-secret", 42, true, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, errParse := ParseUserToken("test-secret", signed)
	if errParse != nil {
		t.Fatalf("parse token: %v", errParse)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if !claims.IsAdmin {
		t.Fatalf("expected admin claim set")
	}
}

func TestParseUserToken_WrongSecret(t *testing.T) {
	signed, err := SignUserToken("secret-a", 7, false, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, errParse := ParseUserToken("secret-b", signed); errParse == nil {
		t.Fatalf("expected wrong secret to fail")
	}
}

func TestSignUserToken_EmptySecret(t *testing.T) {
	if _, err := SignUserToken("  ", 1, false, time.Hour); err == nil {
		t.Fatalf("expected empty secret to fail")
	}
}

func TestGenerateRandomString(t *testing.T) {
	first, err := GenerateRandomString(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := GenerateRandomString(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct random strings")
	}
}

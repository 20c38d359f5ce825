package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/edunexa/educenter-backend/internal/requestdata"
	"github.com/edunexa/educenter-backend/internal/types"
)

func newTestAuthService(t *testing.T) *authService {
	t.Helper()
	return &authService{
		log:          testLogger(t),
		jwtSecretKey: "test-secret",
		accessTTL:    time.Hour,
		refreshTTL:   24 * time.Hour,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)
	user := &types.User{ID: uuid.New(), Role: types.RoleAdmin}

	token, err := svc.generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatal("no request data in context")
	}
	if rd.UserID != user.ID {
		t.Errorf("UserID = %s, want %s", rd.UserID, user.ID)
	}
	if rd.Role != types.RoleAdmin {
		t.Errorf("Role = %q, want admin", rd.Role)
	}
	if rd.TokenString != token {
		t.Error("token string not carried into request data")
	}
}

func TestSetContextFromTokenRejectsForgedToken(t *testing.T) {
	issuer := newTestAuthService(t)
	user := &types.User{ID: uuid.New(), Role: types.RoleParent}
	token, err := issuer.generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}

	verifier := newTestAuthService(t)
	verifier.jwtSecretKey = "a-different-secret"
	if _, err := verifier.SetContextFromToken(context.Background(), token); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestSetContextFromTokenRejectsExpired(t *testing.T) {
	svc := newTestAuthService(t)
	svc.accessTTL = -time.Minute
	user := &types.User{ID: uuid.New(), Role: types.RoleTeacher}
	token, err := svc.generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}
	if _, err := svc.SetContextFromToken(context.Background(), token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestSetContextFromTokenEmptyIsNoop(t *testing.T) {
	svc := newTestAuthService(t)
	ctx, err := svc.SetContextFromToken(context.Background(), "")
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if requestdata.GetRequestData(ctx) != nil {
		t.Fatal("empty token must not attach request data")
	}
}

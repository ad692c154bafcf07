package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"luminafi/internal/domain/entity"
	"luminafi/pkg/errors"
)

// AuthUseCase resolves the wallet/identity session: the identity half comes
// from the provider's ID token, the wallet half from the address the client
// reports as connected.
type AuthUseCase struct {
	identity   IdentityClient
	signingKey []byte
	tokenTTL   time.Duration
	isAddress  func(string) bool
}

func NewAuthUseCase(identity IdentityClient, signingKey string, tokenTTL time.Duration, isAddress func(string) bool) *AuthUseCase {
	return &AuthUseCase{
		identity:   identity,
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
		isAddress:  isAddress,
	}
}

func (uc *AuthUseCase) ResolveSession(ctx context.Context, idToken, walletAddress string) (*entity.Session, error) {
	if idToken == "" {
		return nil, errors.Unauthorized("Missing identity token", nil)
	}

	token, err := uc.identity.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired identity token", err)
	}

	session := &entity.Session{
		IdentityID: token.UID,
		Email:      token.Email,
	}
	if uc.isAddress(walletAddress) {
		session.WalletAddress = walletAddress
		session.WalletConnected = true
	}
	return session, nil
}

type sessionClaims struct {
	WalletAddress string `json:"wallet_address,omitempty"`
	jwt.RegisteredClaims
}

// MintSessionToken issues a short-lived HS256 token carrying the resolved
// session, so follow-up requests don't re-verify the provider token.
func (uc *AuthUseCase) MintSessionToken(session *entity.Session) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		WalletAddress: session.WalletAddress,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   session.IdentityID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(uc.signingKey)
	if err != nil {
		return "", errors.Internal("Failed to mint session token", err)
	}
	return signed, nil
}

func (uc *AuthUseCase) ParseSessionToken(tokenString string) (*entity.Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("Unexpected signing method", nil)
		}
		return uc.signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Unauthorized("Invalid session token", err)
	}

	session := &entity.Session{
		IdentityID:    claims.Subject,
		WalletAddress: claims.WalletAddress,
	}
	session.WalletConnected = claims.WalletAddress != ""
	return session, nil
}

type RedirectResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Target  string `json:"target"`
}

// CompleteRedirect handles the identity provider's sign-in callback: the
// provider redirects back with either a token or an error description. The
// result reports success or failure and where the client should navigate.
func (uc *AuthUseCase) CompleteRedirect(ctx context.Context, idToken, providerError string) RedirectResult {
	if providerError != "" {
		return RedirectResult{Success: false, Message: providerError, Target: LoginRoute}
	}
	if _, err := uc.identity.VerifyToken(ctx, idToken); err != nil {
		return RedirectResult{Success: false, Message: "Sign-in could not be verified", Target: LoginRoute}
	}
	return RedirectResult{Success: true, Target: "/"}
}

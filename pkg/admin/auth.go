package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator は管理者の資格情報を検証し、セッションを発行します。
type Authenticator interface {
	Authenticate(ctx context.Context, id, secret string) (*domain.Session, error)
}

// CredentialAuthenticator は設定された管理者 ID と bcrypt ハッシュで照合する Authenticator です。
type CredentialAuthenticator struct {
	adminID      string
	passwordHash []byte
	tokens       *TokenIssuer
}

// NewCredentialAuthenticator は CredentialAuthenticator を作成します。passwordHash は bcrypt 形式である必要があります。
func NewCredentialAuthenticator(adminID, passwordHash string, tokens *TokenIssuer) (*CredentialAuthenticator, error) {
	if adminID == "" || passwordHash == "" {
		return nil, fmt.Errorf("admin id and password hash are required")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("admin password hash is not a bcrypt hash: %w", err)
	}
	if tokens == nil {
		return nil, fmt.Errorf("token issuer is required")
	}
	return &CredentialAuthenticator{
		adminID:      adminID,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
	}, nil
}

func (a *CredentialAuthenticator) Authenticate(ctx context.Context, id, secret string) (*domain.Session, error) {
	idOK := subtle.ConstantTimeCompare([]byte(id), []byte(a.adminID)) == 1
	// ID が不一致でもハッシュ比較は行う
	pwErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(secret))
	if !idOK || pwErr != nil {
		slog.WarnContext(ctx, "管理者ログインに失敗しました", "id", id)
		return nil, ErrInvalidCredentials
	}

	session, err := a.tokens.Issue(a.adminID)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "管理者がログインしました", "id", id)
	return session, nil
}

var _ Authenticator = (*CredentialAuthenticator)(nil)

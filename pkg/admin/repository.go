// Package admin は手動送金の審査とユーザー管理を扱います。
package admin

import (
	"context"
	"errors"

	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPayment     = errors.New("invalid payment submission")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAlreadyDecided     = errors.New("payment request already decided")
)

// PaymentRepository は送金申請の永続化を抽象化します。
type PaymentRepository interface {
	// ListPayments は status が空なら全件、指定があればその状態の申請を新しい順に返します。
	ListPayments(ctx context.Context, status domain.PaymentStatus) ([]domain.PaymentRequest, error)
	GetPayment(ctx context.Context, id string) (*domain.PaymentRequest, error)
	CreatePayment(ctx context.Context, p domain.PaymentRequest) error
	// UpdatePaymentStatus は現在の状態が from の場合に限り to へ遷移させます。
	// 状態が from でなければ ErrAlreadyDecided を返します。確認と書き込みは不可分です。
	UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) (*domain.PaymentRequest, error)
}

// UserRepository はユーザーの永続化を抽象化します。
type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// FindUserByName は表示名が完全一致するユーザーを返します。
	FindUserByName(ctx context.Context, name string) (*domain.User, error)
	// ModifyUser は最新のユーザーに fn を適用して書き戻します。読み取りから書き込みまでは不可分です。
	ModifyUser(ctx context.Context, id string, fn func(*domain.User)) (*domain.User, error)
}

// Store は両方のリポジトリを提供するバックエンドです。
type Store interface {
	PaymentRepository
	UserRepository
}

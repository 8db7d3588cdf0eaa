package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
	"github.com/shouni/gemini-thumbnail-kit/pkg/metrics"
)

// phonePattern はエジプトの携帯番号 (Vodafone Cash 等) の 11 桁形式です。
var phonePattern = regexp.MustCompile(`^01[0125][0-9]{8}$`)

const minTransactionIDLength = 6

// Overview は管理画面トップの集計値です。
type Overview struct {
	Revenue      int64 `json:"revenue"`
	PendingCount int   `json:"pending_count"`
	ActiveUsers  int   `json:"active_users"`
}

// PaymentSubmission はチェックアウト画面から送られる送金報告です。
type PaymentSubmission struct {
	UserName      string
	Phone         string
	TransactionID string
	ReceiptURL    string
}

// Service は送金審査とユーザー管理の操作をまとめたものです。
type Service struct {
	store  Store
	quoter *Quoter
	now    func() time.Time
	newID  func() string
}

// NewService は Service を作成します。quoter が nil の場合は固定レートで見積もります。
func NewService(store Store, quoter *Quoter) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if quoter == nil {
		quoter = NewQuoter(nil)
	}
	return &Service{
		store:  store,
		quoter: quoter,
		now:    time.Now,
		newID: func() string {
			return "REQ-" + strings.ToUpper(uuid.NewString()[:8])
		},
	}, nil
}

// Quote は現在の支払額の見積もりを返します。
func (s *Service) Quote(ctx context.Context) Quote {
	return s.quoter.Quote(ctx)
}

// SubmitPayment は送金報告を検証し、審査待ちの申請として登録します。
// 金額はその時点の見積もりで確定します。
func (s *Service) SubmitPayment(ctx context.Context, sub PaymentSubmission) (*domain.PaymentRequest, error) {
	phone := strings.Join(strings.Fields(sub.Phone), "")
	tid := strings.TrimSpace(sub.TransactionID)

	var errs []error
	if strings.TrimSpace(sub.UserName) == "" {
		errs = append(errs, fmt.Errorf("%w: user is required", ErrInvalidPayment))
	}
	switch {
	case phone == "":
		errs = append(errs, fmt.Errorf("%w: phone number is required", ErrInvalidPayment))
	case !phonePattern.MatchString(phone):
		errs = append(errs, fmt.Errorf("%w: phone must be a valid 11-digit wallet number", ErrInvalidPayment))
	}
	switch {
	case tid == "":
		errs = append(errs, fmt.Errorf("%w: transaction id is required", ErrInvalidPayment))
	case len(tid) < minTransactionIDLength:
		errs = append(errs, fmt.Errorf("%w: transaction id must be at least %d characters", ErrInvalidPayment, minTransactionIDLength))
	}
	if strings.TrimSpace(sub.ReceiptURL) == "" {
		errs = append(errs, fmt.Errorf("%w: payment receipt is required", ErrInvalidPayment))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	p := domain.PaymentRequest{
		ID:            s.newID(),
		UserName:      strings.TrimSpace(sub.UserName),
		Phone:         phone,
		Amount:        s.quoter.Quote(ctx).AmountEGP,
		TransactionID: tid,
		Date:          s.now(),
		Status:        domain.PaymentPending,
		ReceiptURL:    sub.ReceiptURL,
	}
	if err := s.store.CreatePayment(ctx, p); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "送金報告を受け付けました", "id", p.ID, "user", p.UserName, "amount", p.Amount)
	return &p, nil
}

// GetPayment は申請を1件返します。
func (s *Service) GetPayment(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	return s.store.GetPayment(ctx, id)
}

// ApprovePayment は申請を承認し、同名のユーザーを Pro プランに引き上げます。
// 該当ユーザーがいない場合も承認自体は成立します。
func (s *Service) ApprovePayment(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	p, err := s.decide(ctx, id, domain.PaymentApproved)
	if err != nil {
		return nil, err
	}

	u, err := s.store.FindUserByName(ctx, p.UserName)
	if err == nil {
		u, err = s.store.ModifyUser(ctx, u.ID, func(target *domain.User) { target.Plan = domain.PlanPro })
	}
	switch {
	case errors.Is(err, ErrNotFound):
		slog.WarnContext(ctx, "承認した申請に対応するユーザーが見つかりません", "id", id, "user", p.UserName)
		return p, nil
	case err != nil:
		return nil, err
	}
	slog.InfoContext(ctx, "ユーザーを Pro プランに変更しました", "payment_id", id, "user_id", u.ID)
	return p, nil
}

// RejectPayment は申請を却下します。
func (s *Service) RejectPayment(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	return s.decide(ctx, id, domain.PaymentRejected)
}

func (s *Service) decide(ctx context.Context, id string, status domain.PaymentStatus) (*domain.PaymentRequest, error) {
	p, err := s.store.UpdatePaymentStatus(ctx, id, domain.PaymentPending, status)
	if err != nil {
		return nil, err
	}
	metrics.PaymentDecisionsTotal.WithLabelValues(string(status)).Inc()
	slog.InfoContext(ctx, "送金申請を審査しました", "id", id, "status", status)
	return p, nil
}

// BanUser はユーザーを利用停止にします。
func (s *Service) BanUser(ctx context.Context, id string) (*domain.User, error) {
	return s.setUserStatus(ctx, id, domain.UserBanned)
}

// UnbanUser は利用停止を解除します。
func (s *Service) UnbanUser(ctx context.Context, id string) (*domain.User, error) {
	return s.setUserStatus(ctx, id, domain.UserActive)
}

func (s *Service) setUserStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	u, err := s.store.ModifyUser(ctx, id, func(u *domain.User) { u.Status = status })
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "ユーザーの状態を変更しました", "user_id", id, "status", status)
	return u, nil
}

// Overview は承認済み売上、審査待ち件数、有効ユーザー数を集計します。
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	payments, err := s.store.ListPayments(ctx, "")
	if err != nil {
		return nil, err
	}
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var o Overview
	for _, p := range payments {
		switch p.Status {
		case domain.PaymentApproved:
			o.Revenue += p.Amount
		case domain.PaymentPending:
			o.PendingCount++
		}
	}
	for _, u := range users {
		if u.Status == domain.UserActive {
			o.ActiveUsers++
		}
	}
	return &o, nil
}

// SearchPayments は status で絞り込んだ申請のうち、ユーザー名・電話番号・取引 ID に term を含むものを返します。
func (s *Service) SearchPayments(ctx context.Context, term string, status domain.PaymentStatus) ([]domain.PaymentRequest, error) {
	payments, err := s.store.ListPayments(ctx, status)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return payments, nil
	}

	out := payments[:0]
	for _, p := range payments {
		if containsFold(term, p.UserName, p.Phone, p.TransactionID) {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchUsers は名前かメールアドレスに term を含むユーザーを返します。
func (s *Service) SearchUsers(ctx context.Context, term string) ([]domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return users, nil
	}

	out := users[:0]
	for _, u := range users {
		if containsFold(term, u.Name, u.Email) {
			out = append(out, u)
		}
	}
	return out, nil
}

func containsFold(lowerTerm string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerTerm) {
			return true
		}
	}
	return false
}

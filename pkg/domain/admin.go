package domain

import "time"

// PaymentStatus は手動送金申請の審査状態です。
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// UserStatus はアカウントの利用可否です。
type UserStatus string

const (
	UserActive UserStatus = "active"
	UserBanned UserStatus = "banned"
)

// Plan は契約プランです。
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// PaymentRequest はユーザーが提出した手動送金の審査申請です。
type PaymentRequest struct {
	ID            string        `json:"id"`
	UserName      string        `json:"user"`
	Phone         string        `json:"phone"`
	Amount        int64         `json:"amount"` // EGP
	TransactionID string        `json:"tid"`
	Date          time.Time     `json:"date"`
	Status        PaymentStatus `json:"status"`
	ReceiptURL    string        `json:"receipt_url,omitempty"`
}

// User は管理画面で扱うユーザー情報です。
type User struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Status UserStatus `json:"status"`
	Plan   Plan       `json:"plan"`
	Joined time.Time  `json:"joined"`
}

// Session は認証成功時に発行される管理者セッションです。
type Session struct {
	Subject   string    `json:"subject"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

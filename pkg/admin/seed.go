package admin

import (
	"time"

	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
)

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

// DemoPayments はデモ環境で使う初期の送金申請です。
func DemoPayments() []domain.PaymentRequest {
	return []domain.PaymentRequest{
		{ID: "REQ-001", UserName: "Ahmed Ali", Phone: "01012345678", Amount: 500, TransactionID: "TRX-998877", Date: day("2024-02-20"), Status: domain.PaymentPending},
		{ID: "REQ-002", UserName: "Sara Hassan", Phone: "01298765432", Amount: 500, TransactionID: "TRX-112233", Date: day("2024-02-21"), Status: domain.PaymentPending},
		{ID: "REQ-003", UserName: "Mohamed Salah", Phone: "01122334455", Amount: 500, TransactionID: "TRX-554433", Date: day("2024-02-19"), Status: domain.PaymentRejected},
		{ID: "REQ-004", UserName: "Gamal Ezz", Phone: "01555667788", Amount: 500, TransactionID: "TRX-776655", Date: day("2024-02-18"), Status: domain.PaymentApproved},
	}
}

// DemoUsers はデモ環境で使う初期ユーザーです。
func DemoUsers() []domain.User {
	return []domain.User{
		{ID: "USR-001", Name: "Ahmed Ali", Email: "ahmed@gmail.com", Status: domain.UserActive, Plan: domain.PlanFree, Joined: day("2024-01-10")},
		{ID: "USR-002", Name: "Sara Hassan", Email: "sara@yahoo.com", Status: domain.UserActive, Plan: domain.PlanFree, Joined: day("2024-01-15")},
		{ID: "USR-003", Name: "Scammer Guy", Email: "hack@fraud.com", Status: domain.UserBanned, Plan: domain.PlanFree, Joined: day("2024-02-01")},
		{ID: "USR-004", Name: "Gamal Ezz", Email: "gamal@work.com", Status: domain.UserActive, Plan: domain.PlanPro, Joined: day("2023-12-05")},
	}
}

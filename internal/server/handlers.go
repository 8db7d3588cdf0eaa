package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shouni/gemini-thumbnail-kit/pkg/admin"
	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
	"github.com/shouni/gemini-thumbnail-kit/pkg/prompt"
)

// StyleDTO はスタイル一覧の1項目です。
type StyleDTO struct {
	Name        domain.ThumbnailStyle `json:"name"`
	Description string                `json:"description"`
}

func (s *Server) listStyles(c *gin.Context) {
	styles := domain.AllStyles()
	out := make([]StyleDTO, 0, len(styles))
	for _, st := range styles {
		out = append(out, StyleDTO{Name: st, Description: prompt.StyleDescription(st)})
	}
	respondOK(c, out)
}

// maxGenerateBodyBytes は base64 化した参照画像と JSON の余白を収められる上限です。
const maxGenerateBodyBytes = domain.MaxReferenceImageBytes*4/3 + 64<<10

func (s *Server) generateThumbnails(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxGenerateBodyBytes)

	var body GenerateThumbnailsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithStatus(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	req, err := toGenerationRequest(body)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		abortWithError(c, err)
		return
	}

	images, err := s.generator.Generate(c.Request.Context(), req, s.count)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondOK(c, GenerateThumbnailsResponse{Style: req.Style, Thumbnails: toThumbnailDTOs(images)})
}

// toGenerationRequest はスタイル未指定を MrBeast として扱います。
func toGenerationRequest(body GenerateThumbnailsRequest) (domain.GenerationRequest, error) {
	style := domain.StyleMrBeast
	if body.Style != "" {
		parsed, err := domain.ParseStyle(body.Style)
		if err != nil {
			return domain.GenerationRequest{}, err
		}
		style = parsed
	}

	req := domain.GenerationRequest{
		Title:        body.Title,
		Prompt:       body.Prompt,
		Style:        style,
		ReferenceURL: body.ReferenceURL,
		Seed:         body.Seed,
	}
	if body.ReferenceImage != "" {
		ref, err := domain.DecodeDataURL(body.ReferenceImage, body.ReferenceMime)
		if err != nil {
			return domain.GenerationRequest{}, err
		}
		req.ReferenceImage = ref
		req.ReferenceURL = ""
	}
	return req, nil
}

func (s *Server) paymentQuote(c *gin.Context) {
	respondOK(c, s.admin.Quote(c.Request.Context()))
}

func (s *Server) submitPayment(c *gin.Context) {
	var body SubmitPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	p, err := s.admin.SubmitPayment(c.Request.Context(), admin.PaymentSubmission{
		UserName:      body.User,
		Phone:         body.Phone,
		TransactionID: body.TransactionID,
		ReceiptURL:    body.ReceiptURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondCreated(c, p)
}

func (s *Server) login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	session, err := s.auth.Authenticate(c.Request.Context(), body.ID, body.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondOK(c, session)
}

func (s *Server) overview(c *gin.Context) {
	o, err := s.admin.Overview(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondOK(c, o)
}

func (s *Server) listPayments(c *gin.Context) {
	status := domain.PaymentStatus(c.Query("status"))
	switch status {
	case "", domain.PaymentPending, domain.PaymentApproved, domain.PaymentRejected:
	default:
		badRequest(c, fmt.Sprintf("unknown status %q", status))
		return
	}

	payments, err := s.admin.SearchPayments(c.Request.Context(), c.Query("q"), status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondOK(c, payments)
}

func (s *Server) getPayment(c *gin.Context) {
	p, err := s.admin.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondOK(c, p)
}

func (s *Server) approvePayment(c *gin.Context) {
	p, err := s.admin.ApprovePayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondOK(c, p)
}

func (s *Server) rejectPayment(c *gin.Context) {
	p, err := s.admin.RejectPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondOK(c, p)
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.admin.SearchUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondOK(c, users)
}

func (s *Server) banUser(c *gin.Context) {
	u, err := s.admin.BanUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondOK(c, u)
}

func (s *Server) unbanUser(c *gin.Context) {
	u, err := s.admin.UnbanUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondOK(c, u)
}

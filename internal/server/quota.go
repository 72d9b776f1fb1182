package server

import (
	"github.com/gin-gonic/gin"
	quotadomain "github.com/pointraillabs/pointrail/internal/quota/domain"
	"github.com/pointraillabs/pointrail/pkg/apperrors"
)

type upsertQuotaRequest struct {
	RemainingQuotaPerDay   *int64 `json:"remaining_quota_per_day"`
	RemainingQuotaPerMonth *int64 `json:"remaining_quota_per_month"`
}

type deductQuotaRequest struct {
	DailyQuotaDeduction   *int64 `json:"daily_quota_deduction"`
	MonthlyQuotaDeduction *int64 `json:"monthly_quota_deduction"`
}

// @Summary      Get Quota
// @Description  Read a partner's remaining deduction quota
// @Tags         quota
// @Produce      json
// @Param        code  path  string  true  "Partner Code"
// @Success      200  {object}  quotadomain.Response
// @Router       /partners/{code}/quota [get]
func (s *Server) GetQuota(c *gin.Context) {
	resp, err := s.quotaSvc.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, s.log, quotaError(err))
		return
	}

	respondData(c, resp)
}

// @Summary      Upsert Quota
// @Description  Insert or fully overwrite a partner's quota balances; an
// @Description  omitted field means unlimited, not zero
// @Tags         quota
// @Accept       json
// @Produce      json
// @Param        code     path  string             true  "Partner Code"
// @Param        request  body  upsertQuotaRequest true  "Upsert Quota Request"
// @Success      200  {object}  quotadomain.Response
// @Router       /partners/{code}/quota [put]
func (s *Server) UpsertQuota(c *gin.Context) {
	var req upsertQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, s.log, invalidRequestError())
		return
	}

	resp, err := s.quotaSvc.Upsert(c.Request.Context(), quotadomain.UpsertRequest{
		PartnerCode:            c.Param("code"),
		RemainingQuotaPerDay:   req.RemainingQuotaPerDay,
		RemainingQuotaPerMonth: req.RemainingQuotaPerMonth,
	})
	if err != nil {
		AbortWithError(c, s.log, quotaError(err))
		return
	}

	respondData(c, resp)
}

// @Summary      Deduct Quota
// @Description  Subtract from a partner's remaining balances; unlimited
// @Description  balances are left untouched
// @Tags         quota
// @Accept       json
// @Produce      json
// @Param        code     path  string             true  "Partner Code"
// @Param        request  body  deductQuotaRequest true  "Deduct Quota Request"
// @Success      200  {object}  quotadomain.Response
// @Router       /partners/{code}/quota/deduct [post]
func (s *Server) DeductQuota(c *gin.Context) {
	var req deductQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, s.log, invalidRequestError())
		return
	}

	resp, err := s.quotaSvc.Deduct(c.Request.Context(), quotadomain.DeductRequest{
		PartnerCode:           c.Param("code"),
		DailyQuotaDeduction:   req.DailyQuotaDeduction,
		MonthlyQuotaDeduction: req.MonthlyQuotaDeduction,
	})
	if err != nil {
		AbortWithError(c, s.log, quotaError(err))
		return
	}

	respondData(c, resp)
}

func quotaError(err error) error {
	switch {
	case err == quotadomain.ErrInvalidPartnerCode:
		return apperrors.Validation("invalid partner code")
	case err == quotadomain.ErrInvalidQuota:
		return apperrors.Validation("quota values must be positive")
	case err == quotadomain.ErrNoDeduction:
		return apperrors.Validation("at least one deduction is required")
	case err == quotadomain.ErrPartnerNotFound:
		return apperrors.Conflict("Partner doesn't exist")
	case err == quotadomain.ErrNotFound:
		return apperrors.NotFound("quota not found")
	default:
		return err
	}
}

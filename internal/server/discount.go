package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	discountdomain "github.com/pointraillabs/pointrail/internal/discount/domain"
	"github.com/pointraillabs/pointrail/pkg/apperrors"
	"github.com/pointraillabs/pointrail/pkg/db/pagination"
)

type createDiscountRequest struct {
	Code        string  `json:"code"`
	PartnerCode string  `json:"partner_code"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

// @Summary      Create Discount
// @Description  Provision a discount for a partner
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Param        request body createDiscountRequest true "Create Discount Request"
// @Success      200  {object}  discountdomain.Response
// @Router       /discounts [post]
func (s *Server) CreateDiscount(c *gin.Context) {
	var req createDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, s.log, invalidRequestError())
		return
	}

	// Only the date format is checked here; the window bounds are not
	// cross-validated against each other for discounts.
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		AbortWithError(c, s.log, apperrors.Validation("invalid start_date"))
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		AbortWithError(c, s.log, apperrors.Validation("invalid end_date"))
		return
	}

	resp, err := s.discountSvc.Create(c.Request.Context(), discountdomain.CreateRequest{
		Code:        strings.TrimSpace(req.Code),
		PartnerCode: strings.TrimSpace(req.PartnerCode),
		Name:        strings.TrimSpace(req.Name),
		Amount:      req.Amount,
		Type:        req.Type,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		AbortWithError(c, s.log, discountError(err))
		return
	}

	respondData(c, resp)
}

// @Summary      List Discounts
// @Tags         discounts
// @Produce      json
// @Param        partner_code  query  string  false  "Partner Code"
// @Param        page_token    query  string  false  "Page Token"
// @Param        page_size     query  int     false  "Page Size"
// @Success      200  {object}  discountdomain.ListResponse
// @Router       /discounts [get]
func (s *Server) ListDiscounts(c *gin.Context) {
	var query struct {
		pagination.Pagination
		PartnerCode string `form:"partner_code"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, s.log, invalidRequestError())
		return
	}

	resp, err := s.discountSvc.List(c.Request.Context(), discountdomain.ListRequest{
		PartnerCode: strings.TrimSpace(query.PartnerCode),
		PageToken:   query.PageToken,
		PageSize:    int32(query.PageSize),
	})
	if err != nil {
		AbortWithError(c, s.log, discountError(err))
		return
	}

	respondList(c, resp.Discounts, &resp.PageInfo)
}

// @Summary      Get Discount
// @Tags         discounts
// @Produce      json
// @Param        code  path  string  true  "Discount Code"
// @Success      200  {object}  discountdomain.Response
// @Router       /discounts/{code} [get]
func (s *Server) GetDiscount(c *gin.Context) {
	resp, err := s.discountSvc.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, s.log, discountError(err))
		return
	}

	respondData(c, resp)
}

// @Summary      Delete Discount
// @Description  Soft-delete a discount
// @Tags         discounts
// @Produce      json
// @Param        code  path  string  true  "Discount Code"
// @Success      200  {object}  discountdomain.Response
// @Router       /discounts/{code} [delete]
func (s *Server) DeleteDiscount(c *gin.Context) {
	resp, err := s.discountSvc.Delete(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, s.log, discountError(err))
		return
	}

	respondData(c, resp)
}

func discountError(err error) error {
	switch {
	case err == discountdomain.ErrInvalidCode:
		return apperrors.Validation("invalid discount code")
	case err == discountdomain.ErrInvalidPartnerCode:
		return apperrors.Validation("invalid partner code")
	case err == discountdomain.ErrInvalidName:
		return apperrors.Validation("invalid discount name")
	case err == discountdomain.ErrInvalidAmount:
		return apperrors.Validation("amount must not be negative")
	case err == discountdomain.ErrInvalidType:
		return apperrors.Validation("invalid discount type")
	case err == discountdomain.ErrAlreadyRunning:
		return apperrors.Conflict("There is another discount currently running")
	case err == discountdomain.ErrCodeExists:
		return apperrors.Conflict("Code already exist")
	case err == discountdomain.ErrPartnerNotFound:
		return apperrors.Conflict("Partner doesn't exist")
	case err == discountdomain.ErrCreateFailed:
		return apperrors.NotFound("failed to add new discount")
	case err == discountdomain.ErrNotFound:
		return apperrors.NotFound("discount not found")
	default:
		return err
	}
}

package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	programdomain "github.com/pointraillabs/pointrail/internal/program/domain"
	"github.com/pointraillabs/pointrail/pkg/apperrors"
	"github.com/pointraillabs/pointrail/pkg/db/pagination"
)

const dateLayout = "2006-01-02"

type createProgramRequest struct {
	PartnerCode                  string `json:"partner_code"`
	ExchangeRate                 int64  `json:"exchange_rate"`
	MinAmountPerTransaction      *int64 `json:"min_amount_per_transaction"`
	MaxAmountPerTransaction      *int64 `json:"max_amount_per_transaction"`
	MaxTransactionAmountPerDay   *int64 `json:"max_transaction_amount_per_day"`
	MaxTransactionAmountPerMonth *int64 `json:"max_transaction_amount_per_month"`
	StartDate                    string `json:"start_date"`
	EndDate                      string `json:"end_date"`
}

// @Summary      Create Program
// @Description  Provision a commercial program for a partner and seed its quota
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        request body createProgramRequest true "Create Program Request"
// @Success      200  {object}  programdomain.Response
// @Router       /programs [post]
func (s *Server) CreateProgram(c *gin.Context) {
	var req createProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, s.log, invalidRequestError())
		return
	}

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
	if !startDate.Before(endDate) {
		AbortWithError(c, s.log, apperrors.Validation("end_date must be after start_date"))
		return
	}

	resp, err := s.programSvc.Create(c.Request.Context(), programdomain.CreateRequest{
		PartnerCode:                  strings.TrimSpace(req.PartnerCode),
		ExchangeRate:                 req.ExchangeRate,
		MinAmountPerTransaction:      req.MinAmountPerTransaction,
		MaxAmountPerTransaction:      req.MaxAmountPerTransaction,
		MaxTransactionAmountPerDay:   req.MaxTransactionAmountPerDay,
		MaxTransactionAmountPerMonth: req.MaxTransactionAmountPerMonth,
		StartDate:                    startDate,
		EndDate:                      endDate,
	})
	if err != nil {
		AbortWithError(c, s.log, programError(err))
		return
	}

	respondData(c, resp)
}

// @Summary      List Programs
// @Tags         programs
// @Produce      json
// @Param        partner_code  query  string  false  "Partner Code"
// @Param        page_token    query  string  false  "Page Token"
// @Param        page_size     query  int     false  "Page Size"
// @Success      200  {object}  programdomain.ListResponse
// @Router       /programs [get]
func (s *Server) ListPrograms(c *gin.Context) {
	var query struct {
		pagination.Pagination
		PartnerCode string `form:"partner_code"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, s.log, invalidRequestError())
		return
	}

	resp, err := s.programSvc.List(c.Request.Context(), programdomain.ListRequest{
		PartnerCode: strings.TrimSpace(query.PartnerCode),
		PageToken:   query.PageToken,
		PageSize:    int32(query.PageSize),
	})
	if err != nil {
		AbortWithError(c, s.log, programError(err))
		return
	}

	respondList(c, resp.Programs, &resp.PageInfo)
}

// @Summary      Get Program
// @Tags         programs
// @Produce      json
// @Param        id  path  string  true  "Program ID"
// @Success      200  {object}  programdomain.Response
// @Router       /programs/{id} [get]
func (s *Server) GetProgram(c *gin.Context) {
	resp, err := s.programSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, s.log, programError(err))
		return
	}

	respondData(c, resp)
}

// @Summary      Deactivate Program
// @Description  Explicitly deactivate a program, releasing its window
// @Tags         programs
// @Produce      json
// @Param        id  path  string  true  "Program ID"
// @Success      200  {object}  programdomain.Response
// @Router       /programs/{id}/deactivate [post]
func (s *Server) DeactivateProgram(c *gin.Context) {
	resp, err := s.programSvc.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, s.log, programError(err))
		return
	}

	respondData(c, resp)
}

func programError(err error) error {
	switch {
	case err == programdomain.ErrInvalidPartnerCode:
		return apperrors.Validation("invalid partner code")
	case err == programdomain.ErrInvalidExchangeRate:
		return apperrors.Validation("exchange rate must be positive")
	case err == programdomain.ErrInvalidAmount:
		return apperrors.Validation("amounts must be positive")
	case err == programdomain.ErrInvalidWindow:
		return apperrors.Validation("end_date must be after start_date")
	case err == programdomain.ErrInvalidID:
		return apperrors.Validation("invalid program id")
	case err == programdomain.ErrOverlap:
		return apperrors.Conflict("There is another program currently running")
	case err == programdomain.ErrDuplicate:
		return apperrors.Conflict("Code already exist")
	case err == programdomain.ErrPartnerNotFound:
		return apperrors.Conflict("Partner doesn't exist")
	case err == programdomain.ErrCreateFailed:
		return apperrors.NotFound("failed to add new program")
	case err == programdomain.ErrNotFound:
		return apperrors.NotFound("program not found")
	default:
		return err
	}
}

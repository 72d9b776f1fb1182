package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	partnerdomain "github.com/pointraillabs/pointrail/internal/partner/domain"
	"github.com/pointraillabs/pointrail/pkg/apperrors"
)

type createPartnerRequest struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	SegmentID     *int64         `json:"segment_id"`
	CostPackageID *int64         `json:"cost_package_id"`
	IsAcquirer    bool           `json:"is_acquirer"`
	IsIssuer      bool           `json:"is_issuer"`
	LogoURL       *string        `json:"logo_url"`
	Unit          *string        `json:"unit"`
	Metadata      map[string]any `json:"metadata"`
}

// @Summary      Create Partner
// @Description  Register a partner organization
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body createPartnerRequest true "Create Partner Request"
// @Success      200  {object}  partnerdomain.Response
// @Router       /partners [post]
func (s *Server) CreatePartner(c *gin.Context) {
	var req createPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, s.log, invalidRequestError())
		return
	}

	resp, err := s.partnerSvc.Create(c.Request.Context(), partnerdomain.CreateRequest{
		Code:          strings.TrimSpace(req.Code),
		Name:          strings.TrimSpace(req.Name),
		SegmentID:     req.SegmentID,
		CostPackageID: req.CostPackageID,
		IsAcquirer:    req.IsAcquirer,
		IsIssuer:      req.IsIssuer,
		LogoURL:       req.LogoURL,
		Unit:          req.Unit,
		Metadata:      req.Metadata,
	})
	if err != nil {
		AbortWithError(c, s.log, partnerError(err))
		return
	}

	respondData(c, resp)
}

// @Summary      List Partners
// @Tags         partners
// @Produce      json
// @Success      200  {array}  partnerdomain.Response
// @Router       /partners [get]
func (s *Server) ListPartners(c *gin.Context) {
	resp, err := s.partnerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, s.log, partnerError(err))
		return
	}

	respondList(c, resp, nil)
}

// @Summary      Get Partner
// @Tags         partners
// @Produce      json
// @Param        code  path  string  true  "Partner Code"
// @Success      200  {object}  partnerdomain.Response
// @Router       /partners/{code} [get]
func (s *Server) GetPartner(c *gin.Context) {
	resp, err := s.partnerSvc.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, s.log, partnerError(err))
		return
	}

	respondData(c, resp)
}

// @Summary      Delete Partner
// @Description  Soft-delete a partner; the code stays reserved
// @Tags         partners
// @Produce      json
// @Param        code  path  string  true  "Partner Code"
// @Success      200  {object}  partnerdomain.Response
// @Router       /partners/{code} [delete]
func (s *Server) DeletePartner(c *gin.Context) {
	resp, err := s.partnerSvc.Delete(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, s.log, partnerError(err))
		return
	}

	respondData(c, resp)
}

func partnerError(err error) error {
	switch {
	case err == partnerdomain.ErrInvalidCode:
		return apperrors.Validation("invalid partner code")
	case err == partnerdomain.ErrInvalidName:
		return apperrors.Validation("invalid partner name")
	case err == partnerdomain.ErrCodeExists:
		return apperrors.Conflict("Code already exist")
	case err == partnerdomain.ErrNotFound:
		return apperrors.NotFound("partner not found")
	default:
		return err
	}
}

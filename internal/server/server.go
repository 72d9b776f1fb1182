// Package server is the HTTP presentation layer: shape validation at the
// edge, typed requests into the domain services, and the error-to-status
// mapping on the way out.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pointraillabs/pointrail/internal/config"
	discountdomain "github.com/pointraillabs/pointrail/internal/discount/domain"
	partnerdomain "github.com/pointraillabs/pointrail/internal/partner/domain"
	programdomain "github.com/pointraillabs/pointrail/internal/program/domain"
	quotadomain "github.com/pointraillabs/pointrail/internal/quota/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(Start),
)

type Params struct {
	fx.In

	Log         *zap.Logger
	DB          *gorm.DB
	PartnerSvc  partnerdomain.Service
	ProgramSvc  programdomain.Service
	DiscountSvc discountdomain.Service
	QuotaSvc    quotadomain.Service
}

type Server struct {
	log         *zap.Logger
	db          *gorm.DB
	partnerSvc  partnerdomain.Service
	programSvc  programdomain.Service
	discountSvc discountdomain.Service
	quotaSvc    quotadomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		log:         p.Log.Named("server"),
		db:          p.DB,
		partnerSvc:  p.PartnerSvc,
		programSvc:  p.ProgramSvc,
		discountSvc: p.DiscountSvc,
		quotaSvc:    p.QuotaSvc,
	}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.POST("/partners", s.CreatePartner)
		v1.GET("/partners", s.ListPartners)
		v1.GET("/partners/:code", s.GetPartner)
		v1.DELETE("/partners/:code", s.DeletePartner)

		v1.GET("/partners/:code/quota", s.GetQuota)
		v1.PUT("/partners/:code/quota", s.UpsertQuota)
		v1.POST("/partners/:code/quota/deduct", s.DeductQuota)

		v1.POST("/programs", s.CreateProgram)
		v1.GET("/programs", s.ListPrograms)
		v1.GET("/programs/:id", s.GetProgram)
		v1.POST("/programs/:id/deactivate", s.DeactivateProgram)

		v1.POST("/discounts", s.CreateDiscount)
		v1.GET("/discounts", s.ListDiscounts)
		v1.GET("/discounts/:code", s.GetDiscount)
		v1.DELETE("/discounts/:code", s.DeleteDiscount)
	}

	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func Start(lc fx.Lifecycle, s *Server, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: s.Router(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			s.log.Info("http server listening", zap.String("addr", cfg.Server.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// Package server 暴露机票估价、酒店推荐与行程报告的 HTTP 接口（gin）。
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/feature"
	"github.com/rushteam/tripkit/hotel"
)

// FlightPredictor 由 flight.Predictor 实现
type FlightPredictor interface {
	PredictFlightPrice(ctx context.Context, q feature.FlightQuery) (float64, error)
}

// HotelRecommender 由 hotel.Ranker 实现
type HotelRecommender interface {
	Recommend(ctx context.Context, q core.HotelQuery) []hotel.Result
	Places() []string
}

// HealthChecker 是可选的依赖健康检查（远程模型服务）
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps 是 Server 的依赖，全部在启动时构建完成。
type Deps struct {
	Predictor   FlightPredictor
	Schema      *feature.Schema
	Hotels      HotelRecommender
	Health      HealthChecker // 可选
	Logger      *slog.Logger
	CORSOrigins []string
}

// Server 持有只读依赖，handler 之间不共享可变状态。
type Server struct {
	predictor FlightPredictor
	schema    *feature.Schema
	hotels    HotelRecommender
	health    HealthChecker
	logger    *slog.Logger
	engine    *gin.Engine
}

// New 创建 Server 并注册路由。
func New(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		predictor: d.Predictor,
		schema:    d.Schema,
		hotels:    d.Hotels,
		health:    d.Health,
		logger:    logger,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		AllowAllOrigins:  len(d.CORSOrigins) == 0,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/flights/options", s.handleFlightOptions)
		api.POST("/flights/predict", s.handleFlightPredict)
		api.GET("/hotels/places", s.handleHotelPlaces)
		api.POST("/hotels/recommend", s.handleHotelRecommend)
		api.POST("/report", s.handleReport)
	}
	s.engine = r
	return s
}

// Handler 返回 http.Handler，供 http.Server 使用
func (s *Server) Handler() http.Handler {
	return s.engine
}

package server

import (
	"bytes"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/feature"
	"github.com/rushteam/tripkit/hotel"
	"github.com/rushteam/tripkit/report"
)

// FlightRequest 是机票估价的请求体
type FlightRequest struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	FlightType  string `json:"flight_type" binding:"required"`
	Agency      string `json:"agency" binding:"required"`
	Month       int    `json:"month" binding:"required,min=1,max=12"`
	Day         int    `json:"day" binding:"required,min=1,max=31"`
	Year        int    `json:"year" binding:"required,min=1"`
}

func (r FlightRequest) query() feature.FlightQuery {
	return feature.FlightQuery{
		Origin:      r.Origin,
		Destination: r.Destination,
		FlightType:  r.FlightType,
		Agency:      r.Agency,
		Month:       r.Month,
		Day:         r.Day,
		Year:        r.Year,
	}
}

// HotelRequest 是酒店推荐的请求体，取值范围与前端表单一致
type HotelRequest struct {
	Place          string  `json:"place" binding:"required"`
	Days           int     `json:"days" binding:"required,min=1,max=30"`
	MaxPricePerDay float64 `json:"max_price_per_day" binding:"required,min=1,max=10000"`
	TopN           int     `json:"top_n" binding:"required,min=1,max=10"`
}

func (r HotelRequest) query() core.HotelQuery {
	return core.HotelQuery{
		Place:          r.Place,
		Days:           r.Days,
		MaxPricePerDay: r.MaxPricePerDay,
		TopN:           r.TopN,
	}
}

// ReportRequest 是行程报告的请求体
type ReportRequest struct {
	Flight FlightRequest `json:"flight"`
	Hotel  HotelRequest  `json:"hotel"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.health != nil {
		if err := s.health.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "model": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleFlightOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"origins":      s.schema.Categories(feature.PrefixOrigin),
		"destinations": s.schema.Categories(feature.PrefixDestination),
		"flight_types": s.schema.Categories(feature.PrefixFlightType),
		"agencies":     s.schema.Categories(feature.PrefixAgency),
	})
}

func (s *Server) handleFlightPredict(c *gin.Context) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	price, ok := s.predict(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": round2(price), "raw_price": price})
}

// predict 调用模型；失败时已写出错误响应并返回 false。
func (s *Server) predict(c *gin.Context, req FlightRequest) (float64, bool) {
	ctx := c.Request.Context()
	price, err := s.predictor.PredictFlightPrice(ctx, req.query())
	if err == nil {
		return price, true
	}
	switch {
	case core.IsUnknownCategory(err), core.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case core.IsInferenceFailed(err):
		s.logger.ErrorContext(ctx, "flight price inference failed",
			"request_id", core.RequestIDFromContext(ctx), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "price estimate unavailable"})
	default:
		s.logger.ErrorContext(ctx, "flight price prediction error",
			"request_id", core.RequestIDFromContext(ctx), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
	return 0, false
}

func (s *Server) handleHotelPlaces(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"places": s.hotels.Places()})
}

func (s *Server) handleHotelRecommend(c *gin.Context) {
	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotels": s.recommend(c, req)})
}

func (s *Server) recommend(c *gin.Context, req HotelRequest) []hotel.Result {
	results := s.hotels.Recommend(c.Request.Context(), req.query())
	out := make([]hotel.Result, 0, len(results))
	for _, r := range results {
		out = append(out, hotel.Result{Name: r.Name, Price: round2(r.Price)})
	}
	return out
}

func (s *Server) handleReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	price, ok := s.predict(c, req.Flight)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := report.Render(&buf, report.Trip{
		Flight:      req.Flight.query(),
		FlightPrice: round2(price),
		Hotel:       req.Hotel.query(),
		Hotels:      s.recommend(c, req.Hotel),
		GeneratedAt: time.Now(),
	})
	if err != nil {
		ctx := c.Request.Context()
		s.logger.ErrorContext(ctx, "render report failed",
			"request_id", core.RequestIDFromContext(ctx), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report unavailable"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=trip-estimate.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

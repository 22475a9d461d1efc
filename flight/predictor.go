// Package flight 提供机票价格预测：特征编码 → 标准化 → 回归模型。
package flight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/feature"
	"github.com/rushteam/tripkit/model"
)

// Scaler 是特征标准化的最小抽象，feature.FeatureScaler 实现了它。
type Scaler interface {
	Transform(schema *feature.Schema, vector []float64) ([]float64, error)
}

// Predictor 组合 encoder、scaler 与回归模型。所有依赖在启动时注入，之后只读。
type Predictor struct {
	encoder *feature.FlightEncoder
	scaler  Scaler
	model   model.Regressor
	strict  bool
	logger  *slog.Logger
}

// Option 配置 Predictor
type Option func(*Predictor)

// WithStrictCategories 开启严格模式：类别值不在 schema 中时返回 UNKNOWN_CATEGORY 错误，
// 而不是静默编码为全 0。
func WithStrictCategories(strict bool) Option {
	return func(p *Predictor) {
		p.strict = strict
	}
}

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) Option {
	return func(p *Predictor) {
		p.logger = logger
	}
}

// NewPredictor 创建 Predictor。scaler 可以为 nil（模型服务自带标准化时）。
func NewPredictor(schema *feature.Schema, scaler Scaler, m model.Regressor, opts ...Option) *Predictor {
	p := &Predictor{
		encoder: feature.NewFlightEncoder(schema),
		scaler:  scaler,
		model:   m,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Encoder 返回特征编码器
func (p *Predictor) Encoder() *feature.FlightEncoder {
	return p.encoder
}

// Model 返回回归模型
func (p *Predictor) Model() model.Regressor {
	return p.model
}

// PredictFlightPrice 预测机票价格。
//
// scaler 或模型调用失败时返回 INFERENCE_FAILED 领域错误，不重试。
func (p *Predictor) PredictFlightPrice(ctx context.Context, q feature.FlightQuery) (float64, error) {
	if unknown := p.encoder.UnknownCategories(q); len(unknown) > 0 {
		if p.strict {
			return 0, core.NewDomainError(core.ModuleFeature, core.ErrorCodeUnknownCategory,
				fmt.Sprintf("unknown category: %s", strings.Join(unknown, ", ")))
		}
		p.logger.WarnContext(ctx, "unknown category encoded as zeros",
			"request_id", core.RequestIDFromContext(ctx), "columns", unknown)
	}

	vector := p.encoder.Encode(q)

	if p.scaler != nil {
		scaled, err := p.scaler.Transform(p.encoder.Schema(), vector)
		if err != nil {
			return 0, inferenceError(err)
		}
		vector = scaled
	}

	price, err := p.model.Predict(ctx, vector)
	if err != nil {
		return 0, inferenceError(err)
	}
	return price, nil
}

func inferenceError(err error) error {
	return core.WrapDomainError(core.ModuleModel, core.ErrorCodeInferenceFailed, "flight price inference failed", err)
}

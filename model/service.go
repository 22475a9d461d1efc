package model

import (
	"context"
	"fmt"

	"github.com/rushteam/tripkit/core"
)

// ServiceModel 把 core.MLService（KServe 等）适配为 Regressor。
type ServiceModel struct {
	Service   core.MLService
	ModelName string
}

func NewServiceModel(svc core.MLService, modelName string) *ServiceModel {
	return &ServiceModel{Service: svc, ModelName: modelName}
}

func (m *ServiceModel) Name() string {
	if m.ModelName == "" {
		return "ml_service"
	}
	return m.ModelName
}

func (m *ServiceModel) Predict(ctx context.Context, vector []float64) (float64, error) {
	resp, err := m.Service.Predict(ctx, &core.MLPredictRequest{
		Instances: [][]float64{vector},
		ModelName: m.ModelName,
	})
	if err != nil {
		return 0, err
	}
	if resp == nil || len(resp.Predictions) == 0 {
		return 0, fmt.Errorf("ml service %s: empty predictions", m.Name())
	}
	return resp.Predictions[0], nil
}

// Health 透传底层服务的健康检查
func (m *ServiceModel) Health(ctx context.Context) error {
	return m.Service.Health(ctx)
}

// Close 关闭底层服务
func (m *ServiceModel) Close(ctx context.Context) error {
	return m.Service.Close(ctx)
}

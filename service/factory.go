package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/tripkit/core"
)

// NewMLService 根据配置创建 MLService 实例（工厂方法）。
// 返回 core.MLService 接口。
func NewMLService(config *ServiceConfig) (core.MLService, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	opts := []KServeOption{
		WithKServeTimeout(timeout),
	}
	if config.ModelVersion != "" {
		opts = append(opts, WithKServeVersion(config.ModelVersion))
	}
	if config.Auth != nil {
		opts = append(opts, WithKServeAuth(config.Auth))
	}

	switch config.Type {
	case ServiceTypeKServe, "":
		if config.Protocol != "" {
			opts = append(opts, WithKServeProtocol(config.Protocol))
		}
		return NewKServeClient(config.Endpoint, config.ModelName, opts...), nil

	case ServiceTypeTFServing:
		// TF Serving REST 与 KServe V1 共用 /v1/models/{name}:predict
		opts = append(opts, WithKServeProtocol(KServeV1))
		return NewKServeClient(config.Endpoint, config.ModelName, opts...), nil

	default:
		return nil, fmt.Errorf("unsupported service type: %s", config.Type)
	}
}

// ValidateConfig 验证服务配置
func ValidateConfig(config *ServiceConfig) error {
	if config == nil {
		return fmt.Errorf("config is required")
	}
	if config.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if config.ModelName == "" {
		return fmt.Errorf("model name is required")
	}
	return nil
}

// TestConnection 测试服务连接
func TestConnection(ctx context.Context, svc core.MLService) error {
	if svc == nil {
		return fmt.Errorf("service is nil")
	}
	return svc.Health(ctx)
}

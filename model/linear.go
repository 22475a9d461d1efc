package model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// LinearModel 实现了线性回归 (Linear Regression) 模型。
//
// 预测原理：y = Intercept + sum(Coef_i * x_i)
//
// Coef 按位置与特征 schema 对齐，长度必须与输入向量一致。
type LinearModel struct {
	Intercept float64   // 截距 (Intercept)
	Coef      []float64 // 系数 (Coefficients)
}

// LoadLinearModel 从 JSON 文件加载模型：{"intercept": 1.0, "coef": [..]}
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw struct {
		Intercept float64   `json:"intercept"`
		Coef      []float64 `json:"coef"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse linear model: %w", err)
	}
	if len(raw.Coef) == 0 {
		return nil, fmt.Errorf("linear model: empty coef")
	}
	return &LinearModel{Intercept: raw.Intercept, Coef: raw.Coef}, nil
}

func (m *LinearModel) Name() string { return "linear" }

func (m *LinearModel) Predict(_ context.Context, vector []float64) (float64, error) {
	if len(vector) != len(m.Coef) {
		return 0, fmt.Errorf("linear model: expected %d features, got %d", len(m.Coef), len(vector))
	}
	y := m.Intercept
	for i, x := range vector {
		y += m.Coef[i] * x
	}
	return y, nil
}

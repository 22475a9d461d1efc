package feature

import (
	"encoding/json"
	"fmt"
	"os"
)

// FeatureScaler 特征标准化器，对应 feature_scaler.json
// 每个特征对应一个 ScalerParams，包含 mean 和 std
type FeatureScaler map[string]ScalerParams

// ScalerParams 标准化参数
type ScalerParams struct {
	// Mean 均值
	Mean float64 `json:"mean"`
	// Std 标准差
	Std float64 `json:"std"`
}

// LoadScalerFromFile 从文件加载特征标准化器
func LoadScalerFromFile(path string) (FeatureScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feature scaler file: %w", err)
	}
	return ParseScaler(data)
}

// ParseScaler 解析 feature_scaler.json 格式的数据
func ParseScaler(data []byte) (FeatureScaler, error) {
	var scaler FeatureScaler
	if err := json.Unmarshal(data, &scaler); err != nil {
		return nil, fmt.Errorf("parse feature scaler: %w", err)
	}
	return scaler, nil
}

// NormalizeValue 对单个特征值进行标准化（Z-score）
//
// 公式：normalized = (x - mean) / std
//
// 如果特征不在 scaler 中，或 std <= 0，则返回原值。
func (s FeatureScaler) NormalizeValue(featureName string, value float64) float64 {
	if params, ok := s[featureName]; ok {
		if params.Std > 0 {
			return (value - params.Mean) / params.Std
		}
	}
	return value
}

// Transform 按 schema 顺序对向量逐列标准化，返回新向量。
// 向量长度与 schema 不一致时返回错误。
func (s FeatureScaler) Transform(schema *Schema, vector []float64) ([]float64, error) {
	if len(vector) != schema.Len() {
		return nil, fmt.Errorf("scaler: vector length %d does not match schema length %d", len(vector), schema.Len())
	}
	out := make([]float64, len(vector))
	for i, col := range schema.FeatureColumns {
		out[i] = s.NormalizeValue(col, vector[i])
	}
	return out, nil
}

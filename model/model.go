package model

import "context"

// Regressor 是回归模型的最小抽象：输入按 schema 顺序排列（且已标准化）的特征向量，输出一个数值。
// 具体实现可以是本地模型（线性回归）或远程服务（KServe / 自建推理服务）。
type Regressor interface {
	Name() string
	Predict(ctx context.Context, vector []float64) (float64, error)
}

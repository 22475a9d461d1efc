package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rushteam/tripkit/pipeline"
	"github.com/rushteam/tripkit/recall"
)

// TypeRecallCatalog 是目录召回节点的类型名
const TypeRecallCatalog = "recall.catalog"

// NewHotelFactory 返回包含全部注册 Node 的工厂，并把 provider 绑定到 recall.catalog。
func NewHotelFactory(provider recall.ListingProvider) *pipeline.NodeFactory {
	f := DefaultFactory()
	f.Register(TypeRecallCatalog, func(map[string]interface{}) (pipeline.Node, error) {
		if provider == nil {
			return nil, fmt.Errorf("%s: no catalog provider", TypeRecallCatalog)
		}
		return &recall.Catalog{Provider: provider}, nil
	})
	return f
}

// LoadHotelPipeline 从配置文件加载并构建酒店推荐 Pipeline，.json 按 JSON 解析，其余按 YAML。
func LoadHotelPipeline(path string, provider recall.ListingProvider) (*pipeline.Pipeline, error) {
	load := pipeline.LoadFromYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		load = pipeline.LoadFromJSON
	}
	cfg, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load pipeline %s: %w", path, err)
	}
	return BuildHotelPipeline(cfg, provider)
}

// BuildHotelPipeline 校验节点类型后构建 Pipeline。
func BuildHotelPipeline(cfg *pipeline.Config, provider recall.ListingProvider) (*pipeline.Pipeline, error) {
	if err := ValidatePipelineConfig(cfg); err != nil {
		return nil, err
	}
	return cfg.BuildPipeline(NewHotelFactory(provider))
}

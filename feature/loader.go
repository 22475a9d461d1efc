package feature

import (
	"context"
	"strings"
	"time"
)

// SchemaLoader 特征 schema 加载器接口
// 支持从不同来源加载特征 schema（本地文件、HTTP 接口等）
type SchemaLoader interface {
	// Load 加载特征 schema
	// source 是数据源标识（文件路径、URL 等）
	Load(ctx context.Context, source string) (*Schema, error)
}

// ScalerLoader 特征标准化器加载器接口
type ScalerLoader interface {
	// Load 加载特征标准化器
	// source 是数据源标识（文件路径、URL 等）
	Load(ctx context.Context, source string) (FeatureScaler, error)
}

// FileSchemaLoader 本地文件特征 schema 加载器
type FileSchemaLoader struct{}

// NewFileSchemaLoader 创建本地文件特征 schema 加载器
func NewFileSchemaLoader() *FileSchemaLoader {
	return &FileSchemaLoader{}
}

// Load 从本地文件加载特征 schema
func (l *FileSchemaLoader) Load(ctx context.Context, filePath string) (*Schema, error) {
	return LoadSchemaFromFile(filePath)
}

// FileScalerLoader 本地文件特征标准化器加载器
type FileScalerLoader struct{}

// NewFileScalerLoader 创建本地文件特征标准化器加载器
func NewFileScalerLoader() *FileScalerLoader {
	return &FileScalerLoader{}
}

// Load 从本地文件加载特征标准化器
func (l *FileScalerLoader) Load(ctx context.Context, filePath string) (FeatureScaler, error) {
	return LoadScalerFromFile(filePath)
}

// LoadSchema 根据 source 自动选择加载器：
//   - 空字符串：内置 DefaultFlightSchema
//   - http:// 或 https:// 开头：HTTPSchemaLoader
//   - 其他：本地文件
func LoadSchema(ctx context.Context, source string, timeout time.Duration) (*Schema, error) {
	switch {
	case source == "":
		return DefaultFlightSchema(), nil
	case isHTTPSource(source):
		return NewHTTPSchemaLoader(timeout).Load(ctx, source)
	default:
		return NewFileSchemaLoader().Load(ctx, source)
	}
}

// LoadScaler 根据 source 自动选择加载器；空字符串返回 nil（不做标准化）。
func LoadScaler(ctx context.Context, source string, timeout time.Duration) (FeatureScaler, error) {
	switch {
	case source == "":
		return nil, nil
	case isHTTPSource(source):
		return NewHTTPScalerLoader(timeout).Load(ctx, source)
	default:
		return NewFileScalerLoader().Load(ctx, source)
	}
}

func isHTTPSource(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

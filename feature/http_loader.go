package feature

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSchemaLoader HTTP 接口特征 schema 加载器
type HTTPSchemaLoader struct {
	client *http.Client
}

// NewHTTPSchemaLoader 创建 HTTP 接口特征 schema 加载器
//
// 用法：
//
//	loader := feature.NewHTTPSchemaLoader(5 * time.Second)
//	schema, err := loader.Load(ctx, "http://models.internal/flight/v3/feature_meta.json")
func NewHTTPSchemaLoader(timeout time.Duration) *HTTPSchemaLoader {
	return &HTTPSchemaLoader{client: newLoaderClient(timeout)}
}

// NewHTTPSchemaLoaderWithClient 使用自定义 HTTP 客户端创建加载器
func NewHTTPSchemaLoaderWithClient(client *http.Client) *HTTPSchemaLoader {
	return &HTTPSchemaLoader{client: client}
}

// Load 从 HTTP 接口加载特征 schema
func (l *HTTPSchemaLoader) Load(ctx context.Context, url string) (*Schema, error) {
	data, err := fetch(ctx, l.client, url)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}

// HTTPScalerLoader HTTP 接口特征标准化器加载器
type HTTPScalerLoader struct {
	client *http.Client
}

// NewHTTPScalerLoader 创建 HTTP 接口特征标准化器加载器
func NewHTTPScalerLoader(timeout time.Duration) *HTTPScalerLoader {
	return &HTTPScalerLoader{client: newLoaderClient(timeout)}
}

// NewHTTPScalerLoaderWithClient 使用自定义 HTTP 客户端创建加载器
func NewHTTPScalerLoaderWithClient(client *http.Client) *HTTPScalerLoader {
	return &HTTPScalerLoader{client: client}
}

// Load 从 HTTP 接口加载特征标准化器
func (l *HTTPScalerLoader) Load(ctx context.Context, url string) (FeatureScaler, error) {
	data, err := fetch(ctx, l.client, url)
	if err != nil {
		return nil, err
	}
	return ParseScaler(data)
}

func newLoaderClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("request %s: status=%d, body=%s", url, resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rushteam/tripkit/core"
)

// KServeProtocol 指定 KServe 协议版本。
const (
	KServeV1 = "v1"
	KServeV2 = "v2"
)

// KServeClient 是 KServe V1/V2 协议的客户端实现，用于调用部署在 KServe 上的机票价格模型。
//
// KServe V1（基于 TensorFlow Serving REST）：
//   - Predict: POST /v1/models/{model_name}:predict
//   - 请求：{"instances": [[...]]}
//   - 响应：{"predictions": [...]}
//   - Model Ready: GET /v1/models/{model_name}
//
// KServe V2（Open Inference Protocol）：
//   - Infer: POST /v2/models/{model_name}[/versions/{version}]/infer
//   - 请求：{"inputs": [{"name": "input0", "shape": [batch, dim], "datatype": "FP64", "data": [...]}]}
//   - 响应：{"outputs": [{"name": "...", "data": [...]}]}
//   - Server Ready: GET /v2/health/ready
//
// sklearn 的 RandomForestRegressor 可以直接用 KServe 的 sklearn runtime 部署，scaler 与模型
// 打包成一个 Pipeline 时，客户端传入未标准化的向量即可。
type KServeClient struct {
	// Endpoint 服务根地址，如 "http://localhost:8000"
	Endpoint string
	// ModelName 模型名称
	ModelName string
	// ModelVersion 模型版本（可选，V2 路径中会带 /versions/{version}）
	ModelVersion string
	// Protocol 协议版本："v1" 或 "v2"，默认 "v2"
	Protocol string
	// V2InputName V2 协议下输入张量名称，默认 "input0"
	V2InputName string
	// V2OutputName V2 协议下期望的输出张量名称；空则取 outputs[0]
	V2OutputName string
	// Timeout 请求超时
	Timeout time.Duration
	// Auth 认证配置
	Auth *AuthConfig

	httpClient *http.Client
}

// NewKServeClient 创建 KServe 客户端。endpoint 为根地址（如 http://localhost:8000），modelName 为模型名。
func NewKServeClient(endpoint, modelName string, opts ...KServeOption) *KServeClient {
	c := &KServeClient{
		Endpoint:    endpoint,
		ModelName:   modelName,
		Protocol:    KServeV2,
		V2InputName: "input0",
		Timeout:     30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

// KServeOption 配置 KServe 客户端
type KServeOption func(*KServeClient)

// WithKServeVersion 设置模型版本（V2 路径会带 /versions/{version}）
func WithKServeVersion(version string) KServeOption {
	return func(c *KServeClient) {
		c.ModelVersion = version
	}
}

// WithKServeProtocol 设置协议："v1" 或 "v2"
func WithKServeProtocol(protocol string) KServeOption {
	return func(c *KServeClient) {
		if protocol == KServeV1 || protocol == KServeV2 {
			c.Protocol = protocol
		}
	}
}

// WithKServeV2InputName 设置 V2 协议下输入张量名称
func WithKServeV2InputName(name string) KServeOption {
	return func(c *KServeClient) {
		c.V2InputName = name
	}
}

// WithKServeV2OutputName 设置 V2 协议下期望的输出张量名称
func WithKServeV2OutputName(name string) KServeOption {
	return func(c *KServeClient) {
		c.V2OutputName = name
	}
}

// WithKServeTimeout 设置超时
func WithKServeTimeout(timeout time.Duration) KServeOption {
	return func(c *KServeClient) {
		c.Timeout = timeout
		if c.httpClient != nil {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithKServeAuth 设置认证
func WithKServeAuth(auth *AuthConfig) KServeOption {
	return func(c *KServeClient) {
		c.Auth = auth
	}
}

// WithKServeHTTPClient 设置自定义 HTTP 客户端
func WithKServeHTTPClient(client *http.Client) KServeOption {
	return func(c *KServeClient) {
		c.httpClient = client
	}
}

// Predict 实现 core.MLService。
func (c *KServeClient) Predict(ctx context.Context, req *core.MLPredictRequest) (*core.MLPredictResponse, error) {
	if req == nil || len(req.Instances) == 0 {
		return nil, fmt.Errorf("instances are required")
	}

	var (
		url  string
		body interface{}
	)
	if c.Protocol == KServeV1 {
		url = fmt.Sprintf("%s/v1/models/%s:predict", c.Endpoint, c.ModelName)
		body = map[string]interface{}{"instances": req.Instances}
	} else {
		path := fmt.Sprintf("%s/v2/models/%s", c.Endpoint, c.ModelName)
		if c.ModelVersion != "" {
			path = fmt.Sprintf("%s/versions/%s", path, c.ModelVersion)
		}
		url = path + "/infer"
		body = c.v2Request(req.Instances)
	}

	bodyBytes, err := c.post(ctx, url, body)
	if err != nil {
		return nil, err
	}

	var predictions []float64
	if c.Protocol == KServeV1 {
		predictions, err = parseV1Predictions(bodyBytes)
	} else {
		predictions, err = c.parseV2Outputs(bodyBytes)
	}
	if err != nil {
		return nil, err
	}
	if len(predictions) != len(req.Instances) {
		return nil, fmt.Errorf("kserve %s: expected %d predictions, got %d", c.Protocol, len(req.Instances), len(predictions))
	}
	return &core.MLPredictResponse{
		Predictions:  predictions,
		Outputs:      string(bodyBytes),
		ModelVersion: c.ModelVersion,
	}, nil
}

// v2Request 将 Instances 展平为 V2 的 inputs[].data（行优先）
func (c *KServeClient) v2Request(instances [][]float64) map[string]interface{} {
	rows := len(instances)
	dim := len(instances[0])
	data := make([]float64, 0, rows*dim)
	for _, row := range instances {
		data = append(data, row...)
	}

	inputName := c.V2InputName
	if inputName == "" {
		inputName = "input0"
	}
	return map[string]interface{}{
		"inputs": []map[string]interface{}{
			{
				"name":     inputName,
				"shape":    []int{rows, dim},
				"datatype": "FP64",
				"data":     data,
			},
		},
	}
}

func (c *KServeClient) post(ctx context.Context, url string, body interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("kserve %s marshal request: %w", c.Protocol, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("kserve %s create request: %w", c.Protocol, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.addAuth(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("kserve %s request failed: %w", c.Protocol, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("kserve %s read response: %w", c.Protocol, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kserve %s error: status=%d, body=%s", c.Protocol, resp.StatusCode, string(bodyBytes))
	}
	return bodyBytes, nil
}

func parseV1Predictions(body []byte) ([]float64, error) {
	var out struct {
		Predictions []interface{} `json:"predictions"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("kserve v1 parse response: %w", err)
	}
	predictions := make([]float64, 0, len(out.Predictions))
	for _, v := range out.Predictions {
		// 多输出时取第一个标量
		if f, ok := toFloat64(v); ok {
			predictions = append(predictions, f)
		}
	}
	return predictions, nil
}

// v2InferResponse 对应 V2 推理响应
type v2InferResponse struct {
	ModelName    string           `json:"model_name"`
	ModelVersion string           `json:"model_version"`
	Outputs      []v2OutputTensor `json:"outputs"`
}

type v2OutputTensor struct {
	Name     string        `json:"name"`
	Shape    []int         `json:"shape"`
	Datatype string        `json:"datatype"`
	Data     []interface{} `json:"data"`
}

func (c *KServeClient) parseV2Outputs(body []byte) ([]float64, error) {
	var out v2InferResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("kserve v2 parse response: %w", err)
	}
	if len(out.Outputs) == 0 {
		return nil, fmt.Errorf("kserve v2 empty outputs")
	}
	tensor := &out.Outputs[0]
	for i := range out.Outputs {
		if c.V2OutputName != "" && out.Outputs[i].Name == c.V2OutputName {
			tensor = &out.Outputs[i]
			break
		}
	}
	predictions := make([]float64, 0, len(tensor.Data))
	for _, v := range tensor.Data {
		if f, ok := toFloat64(v); ok {
			predictions = append(predictions, f)
		}
	}
	return predictions, nil
}

// toFloat64 JSON 解码后数字均为 float64；嵌套数组取第一个元素
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case []interface{}:
		if len(val) > 0 {
			return toFloat64(val[0])
		}
		return 0, false
	default:
		return 0, false
	}
}

// Health 实现 core.MLService。V1 使用 GET /v1/models/{model_name}，V2 使用 GET /v2/health/ready。
func (c *KServeClient) Health(ctx context.Context) error {
	var url string
	if c.Protocol == KServeV1 {
		url = fmt.Sprintf("%s/v1/models/%s", c.Endpoint, c.ModelName)
	} else {
		url = fmt.Sprintf("%s/v2/health/ready", c.Endpoint)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("kserve health create request: %w", err)
	}
	c.addAuth(httpReq)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("kserve health request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("kserve health failed: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// Close 实现 core.MLService。
func (c *KServeClient) Close(ctx context.Context) error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *KServeClient) addAuth(req *http.Request) {
	if c.Auth == nil {
		return
	}
	switch c.Auth.Type {
	case "basic":
		req.SetBasicAuth(c.Auth.Username, c.Auth.Password)
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+c.Auth.Token)
	case "api_key":
		req.Header.Set("X-API-Key", c.Auth.APIKey)
	}
}

var _ core.MLService = (*KServeClient)(nil)

package service

// ServiceType 服务类型
type ServiceType string

const (
	ServiceTypeKServe    ServiceType = "kserve"     // KServe V1/V2（Open Inference Protocol）
	ServiceTypeTFServing ServiceType = "tf_serving" // TensorFlow Serving REST（与 KServe V1 路径一致）
)

// ServiceConfig 服务配置
type ServiceConfig struct {
	// Type 服务类型
	Type ServiceType `yaml:"type"`

	// Endpoint 服务根地址，如 "http://localhost:8000"
	Endpoint string `yaml:"endpoint"`

	// ModelName 模型名称
	ModelName string `yaml:"model_name"`

	// ModelVersion 模型版本
	ModelVersion string `yaml:"model_version"`

	// Protocol KServe 协议："v1" 或 "v2"，默认 "v2"
	Protocol string `yaml:"protocol"`

	// Timeout 超时时间（秒）
	Timeout int `yaml:"timeout"`

	// Auth 认证信息（可选）
	Auth *AuthConfig `yaml:"auth"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	Type     string `yaml:"type"` // "basic", "bearer", "api_key"
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Token    string `yaml:"token"`
	APIKey   string `yaml:"api_key"`
}

package feature

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// 特征分组前缀，与训练时 pandas.get_dummies 生成的列名保持一致
const (
	PrefixOrigin      = "from_"
	PrefixDestination = "destination_"
	PrefixFlightType  = "flightType_"
	PrefixAgency      = "agency_"

	ColumnMonth = "month"
	ColumnDay   = "day"
	ColumnYear  = "year"
)

// Schema 特征 schema，对应 feature_meta.json。
//
// FeatureColumns 的顺序必须与模型训练时的列顺序完全一致：模型权重按位置绑定，
// 顺序错位不会报错，只会得到错误的价格。
type Schema struct {
	// FeatureColumns 特征列名列表（按顺序）
	FeatureColumns []string `json:"feature_columns"`
	// ModelVersion 模型版本
	ModelVersion string `json:"model_version"`

	index map[string]int
}

// DefaultFlightColumns 是机票价格模型训练时使用的列顺序。
// 注意数值列的顺序是 month, year, day。
var DefaultFlightColumns = []string{
	"from_Florianopolis (SC)", "from_Sao_Paulo (SP)", "from_Salvador (BH)", "from_Brasilia (DF)",
	"from_Rio_de_Janeiro (RJ)", "from_Campo_Grande (MS)", "from_Aracaju (SE)", "from_Natal (RN)",
	"from_Recife (PE)",
	"destination_Florianopolis (SC)", "destination_Sao_Paulo (SP)", "destination_Salvador (BH)",
	"destination_Brasilia (DF)", "destination_Rio_de_Janeiro (RJ)", "destination_Campo_Grande (MS)",
	"destination_Aracaju (SE)", "destination_Natal (RN)", "destination_Recife (PE)",
	"flightType_economic", "flightType_firstClass", "flightType_premium",
	"agency_Rainbow", "agency_CloudFy", "agency_FlyingDrops",
	"month", "year", "day",
}

// NewSchema 根据列名列表创建 Schema 并校验。
func NewSchema(columns []string, modelVersion string) (*Schema, error) {
	s := &Schema{
		FeatureColumns: append([]string(nil), columns...),
		ModelVersion:   modelVersion,
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultFlightSchema 返回内置的机票特征 schema。
func DefaultFlightSchema() *Schema {
	s, err := NewSchema(DefaultFlightColumns, "builtin")
	if err != nil {
		panic(err)
	}
	return s
}

// LoadSchemaFromFile 从文件加载特征 schema
func LoadSchemaFromFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feature schema file: %w", err)
	}
	return ParseSchema(data)
}

// ParseSchema 解析 feature_meta.json 格式的数据并校验。
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse feature schema: %w", err)
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Schema) init() error {
	if len(s.FeatureColumns) == 0 {
		return fmt.Errorf("feature schema: no columns")
	}
	s.index = make(map[string]int, len(s.FeatureColumns))
	for i, col := range s.FeatureColumns {
		if strings.TrimSpace(col) == "" {
			return fmt.Errorf("feature schema: empty column at position %d", i)
		}
		if _, dup := s.index[col]; dup {
			return fmt.Errorf("feature schema: duplicate column %q", col)
		}
		s.index[col] = i
	}
	for _, col := range []string{ColumnMonth, ColumnDay, ColumnYear} {
		if _, ok := s.index[col]; !ok {
			return fmt.Errorf("feature schema: missing numeric column %q", col)
		}
	}
	return nil
}

// Len 返回特征向量长度
func (s *Schema) Len() int {
	return len(s.FeatureColumns)
}

// Index 返回列在向量中的位置
func (s *Schema) Index(column string) (int, bool) {
	i, ok := s.index[column]
	return i, ok
}

// Categories 返回某个分组（如 PrefixOrigin）下的所有类别值，按 schema 顺序。
func (s *Schema) Categories(prefix string) []string {
	var out []string
	for _, col := range s.FeatureColumns {
		if strings.HasPrefix(col, prefix) {
			out = append(out, strings.TrimPrefix(col, prefix))
		}
	}
	return out
}

package feature

// FlightQuery 是机票价格预测的输入：四个类别特征加出发日期。
type FlightQuery struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	FlightType  string `json:"flight_type"`
	Agency      string `json:"agency"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	Year        int    `json:"year"`
}

// categories 返回 (前缀, 值) 对，顺序固定
func (q FlightQuery) categories() [4][2]string {
	return [4][2]string{
		{PrefixOrigin, q.Origin},
		{PrefixDestination, q.Destination},
		{PrefixFlightType, q.FlightType},
		{PrefixAgency, q.Agency},
	}
}

// FlightEncoder 把 FlightQuery 编码为按 Schema 顺序排列的特征向量。
//
// 编码规则：
//   - 所有位置初始化为 0
//   - 每个类别分组最多一个位置为 1；类别值不在 schema 中时该分组全为 0（不报错）
//   - month / day / year 直接写入原值，不做范围校验
//
// FlightEncoder 不持有可变状态，可以被多个 goroutine 共享。
type FlightEncoder struct {
	schema *Schema
}

// NewFlightEncoder 创建机票特征编码器
func NewFlightEncoder(schema *Schema) *FlightEncoder {
	return &FlightEncoder{schema: schema}
}

// Schema 返回编码器使用的 schema
func (e *FlightEncoder) Schema() *Schema {
	return e.schema
}

// Encode 编码单个查询，返回长度等于 schema 长度的向量。
func (e *FlightEncoder) Encode(q FlightQuery) []float64 {
	vector := make([]float64, e.schema.Len())
	for _, c := range q.categories() {
		if i, ok := e.schema.Index(c[0] + c[1]); ok {
			vector[i] = 1.0
		}
	}
	e.setNumeric(vector, ColumnMonth, q.Month)
	e.setNumeric(vector, ColumnYear, q.Year)
	e.setNumeric(vector, ColumnDay, q.Day)
	return vector
}

func (e *FlightEncoder) setNumeric(vector []float64, column string, value int) {
	if i, ok := e.schema.Index(column); ok {
		vector[i] = float64(value)
	}
}

// UnknownCategories 返回在 schema 中找不到对应列的类别特征（形如 "from_Xxx"）。
func (e *FlightEncoder) UnknownCategories(q FlightQuery) []string {
	var unknown []string
	for _, c := range q.categories() {
		col := c[0] + c[1]
		if _, ok := e.schema.Index(col); !ok {
			unknown = append(unknown, col)
		}
	}
	return unknown
}

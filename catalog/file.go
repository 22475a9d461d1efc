package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rushteam/tripkit/core"
)

// csvColumns 是 CSV 必须包含的列，列顺序不限
var csvColumns = []string{"place", "days", "price", "name"}

// FileSource 从本地文件加载目录：.json 为 JSON 数组，其它按带表头的 CSV 解析。
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) Load(_ context.Context) ([]core.Listing, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(s.Path), ".json") {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		return ParseJSON(data)
	}
	return ParseCSV(f)
}

// ParseJSON 解析 [{"place","days","price","name"}, ...]
func ParseJSON(data []byte) ([]core.Listing, error) {
	var listings []core.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}
	return listings, nil
}

// ParseCSV 解析带表头的 CSV，表头需包含 place,days,price,name（大小写不敏感），允许多余列。
func ParseCSV(r io.Reader) ([]core.Listing, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("catalog csv: missing column %q", col)
		}
	}

	var listings []core.Listing
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog csv: %w", err)
		}
		days, err := strconv.Atoi(strings.TrimSpace(rec[idx["days"]]))
		if err != nil {
			return nil, fmt.Errorf("catalog csv line %d: days: %w", line, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[idx["price"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("catalog csv line %d: price: %w", line, err)
		}
		listings = append(listings, core.Listing{
			Place: strings.TrimSpace(rec[idx["place"]]),
			Days:  days,
			Price: price,
			Name:  strings.TrimSpace(rec[idx["name"]]),
		})
	}
	return listings, nil
}

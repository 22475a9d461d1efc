package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/tripkit/core"
)

// DefaultStoreKey 是目录在 Store 中的默认 key
const DefaultStoreKey = "tripkit:hotel:catalog"

// StoreSource 从 core.Store（Redis / Memory）读取 JSON 数组形式的目录。
type StoreSource struct {
	Store core.Store
	Key   string
}

func (s *StoreSource) key() string {
	if s.Key == "" {
		return DefaultStoreKey
	}
	return s.Key
}

func (s *StoreSource) Name() string { return s.Store.Name() + ":" + s.key() }

func (s *StoreSource) Load(ctx context.Context) ([]core.Listing, error) {
	data, err := s.Store.Get(ctx, s.key())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
				fmt.Sprintf("catalog key %q not found", s.key()), err)
		}
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return ParseJSON(data)
}

// Save 把目录写回 Store，用于初始化数据。
func (s *StoreSource) Save(ctx context.Context, listings []core.Listing) error {
	for i, l := range listings {
		if err := Validate(l); err != nil {
			return core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
				fmt.Sprintf("listing %d", i), err)
		}
	}
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return s.Store.Set(ctx, s.key(), data)
}

// Package catalog 提供只读的酒店目录：启动时从 Source 加载一次，之后被所有请求并发共享。
package catalog

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rushteam/tripkit/core"
)

// Source 是目录数据源，返回的顺序即目录顺序。
type Source interface {
	Name() string
	Load(ctx context.Context) ([]core.Listing, error)
}

// Catalog 是校验后的只读目录，实现 recall.ListingProvider 与 recall.PlaceIndex。
type Catalog struct {
	listings []*core.Listing
	byPlace  map[string][]*core.Listing
	places   []string
}

// New 校验记录并建立城市索引。任意一条记录非法即返回 INVALID_INPUT 错误。
func New(listings []core.Listing) (*Catalog, error) {
	c := &Catalog{
		listings: make([]*core.Listing, 0, len(listings)),
		byPlace:  make(map[string][]*core.Listing),
	}
	for i := range listings {
		l := listings[i]
		if err := Validate(l); err != nil {
			return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
				fmt.Sprintf("listing %d", i), err)
		}
		c.listings = append(c.listings, &l)
		if _, ok := c.byPlace[l.Place]; !ok {
			c.places = append(c.places, l.Place)
		}
		c.byPlace[l.Place] = append(c.byPlace[l.Place], &l)
	}
	sort.Strings(c.places)
	return c, nil
}

// Load 从 Source 读取并构建目录。
func Load(ctx context.Context, src Source) (*Catalog, error) {
	listings, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", src.Name(), err)
	}
	return New(listings)
}

// Validate 校验单条记录：place / name 非空，days >= 1，price 为有限值且 >= 0。
func Validate(l core.Listing) error {
	switch {
	case strings.TrimSpace(l.Place) == "":
		return fmt.Errorf("empty place")
	case strings.TrimSpace(l.Name) == "":
		return fmt.Errorf("empty name")
	case l.Days < 1:
		return fmt.Errorf("days must be >= 1, got %d", l.Days)
	case math.IsNaN(l.Price) || math.IsInf(l.Price, 0):
		return fmt.Errorf("price must be finite, got %v", l.Price)
	case l.Price < 0:
		return fmt.Errorf("price must be >= 0, got %v", l.Price)
	}
	return nil
}

// Listings 返回全部记录（目录顺序），调用方不得修改。
func (c *Catalog) Listings() []*core.Listing {
	return c.listings
}

// ListingsIn 返回某个城市的记录，保持目录顺序。
func (c *Catalog) ListingsIn(place string) []*core.Listing {
	return c.byPlace[place]
}

// Places 返回去重后按字母序排列的城市列表。
func (c *Catalog) Places() []string {
	return append([]string(nil), c.places...)
}

// Len 返回记录数
func (c *Catalog) Len() int {
	return len(c.listings)
}

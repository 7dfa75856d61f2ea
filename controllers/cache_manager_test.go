package controllers

import (
	"context"
	"strings"
	"testing"

	"storefront-api/services"
)

func TestCacheKeysAreVersionScoped(t *testing.T) {
	cm := NewCacheManager(nil)

	// A version bump must orphan every cached entry: the id-keyed detail,
	// the slug-keyed detail, and the listings all move to new keys.
	idKeyV1 := cm.detailKey(1, "0123456789abcdef01234567")
	slugKeyV1 := cm.detailKey(1, "phone-x")
	listKeyV1 := cm.listKey(1, services.ListProductsParams{Page: 1, Limit: 12})

	if idKeyV1 == cm.detailKey(2, "0123456789abcdef01234567") {
		t.Error("id-keyed detail survives a version bump")
	}
	if slugKeyV1 == cm.detailKey(2, "phone-x") {
		t.Error("slug-keyed detail survives a version bump")
	}
	if listKeyV1 == cm.listKey(2, services.ListProductsParams{Page: 1, Limit: 12}) {
		t.Error("listing key survives a version bump")
	}

	if idKeyV1 == slugKeyV1 {
		t.Error("id and slug details share a key")
	}
}

func TestCacheListKeyDistinguishesParams(t *testing.T) {
	cm := NewCacheManager(nil)
	min := 100.0

	base := services.ListProductsParams{Page: 1, Limit: 12}
	variants := []services.ListProductsParams{
		{Page: 2, Limit: 12},
		{Page: 1, Limit: 24},
		{Page: 1, Limit: 12, Search: "phone"},
		{Page: 1, Limit: 12, Brand: "Acme"},
		{Page: 1, Limit: 12, MinPrice: &min},
		{Page: 1, Limit: 12, Sort: "price-low"},
	}
	baseKey := cm.listKey(1, base)
	for _, v := range variants {
		if cm.listKey(1, v) == baseKey {
			t.Errorf("params %+v collide with the base key", v)
		}
	}
}

func TestCacheKeyPrefixesStayDistinct(t *testing.T) {
	cm := NewCacheManager(nil)

	detail := cm.detailKey(1, "phone-x")
	list := cm.listKey(1, services.ListProductsParams{Page: 1, Limit: 12})
	if strings.HasPrefix(detail, productListCachePrefix) || strings.HasPrefix(list, productCachePrefix) {
		t.Errorf("detail key %q and list key %q overlap prefixes", detail, list)
	}
}

func TestCacheDegradesWithoutRedis(t *testing.T) {
	ctx := context.Background()

	for _, cm := range []*CacheManager{nil, NewCacheManager(nil)} {
		if _, _, ok := cm.GetList(ctx, services.ListProductsParams{}); ok {
			t.Error("GetList reported a hit without redis")
		}
		if _, _, ok := cm.GetDetail(ctx, "phone-x"); ok {
			t.Error("GetDetail reported a hit without redis")
		}
		// Must not panic or spawn writers.
		cm.SetListAsync(1, services.ListProductsParams{}, map[string]interface{}{})
		cm.SetDetailAsync(1, "phone-x", map[string]interface{}{})
		cm.Invalidate(ctx)
	}
}

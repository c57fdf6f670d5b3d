package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBStringArray_Value(t *testing.T) {
	v, err := JSONBStringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = JSONBStringArray{"a", "b"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(v.([]byte)))
}

func TestJSONBStringArray_Scan(t *testing.T) {
	var a JSONBStringArray
	require.NoError(t, a.Scan([]byte(`["x","y"]`)))
	assert.Equal(t, JSONBStringArray{"x", "y"}, a)

	require.NoError(t, a.Scan(`["z"]`))
	assert.Equal(t, JSONBStringArray{"z"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)
}

func TestDealItems_RoundTrip(t *testing.T) {
	items := DealItems{
		{Name: "chicken thighs", Store: "MegaMart", Price: 1.99, OriginalPrice: 2.99},
		{Name: "broccoli"},
	}

	v, err := items.Value()
	require.NoError(t, err)

	var scanned DealItems
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, items, scanned)

	var empty DealItems
	ev, err := DealItems(nil).Value()
	require.NoError(t, err)
	require.NoError(t, empty.Scan(ev))
	assert.Empty(t, empty)
}

func TestRecipe_JSONShape(t *testing.T) {
	r := Recipe{
		Title:           "Deal Soup",
		Ingredients:     JSONBStringArray{"carrots"},
		Instructions:    JSONBStringArray{"simmer"},
		CookingTime:     20,
		DifficultyLevel: "easy",
		Cuisine:         "French",
		DealItems:       DealItems{{Name: "carrots"}},
		ImageURL:        "https://example.com/img.png",
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	// Client-facing field names are camelCase; internals stay hidden.
	assert.Contains(t, out, "cookingTime")
	assert.Contains(t, out, "difficultyLevel")
	assert.Contains(t, out, "dealItems")
	assert.Contains(t, out, "imageUrl")
	assert.NotContains(t, out, "user_id")
	assert.NotContains(t, out, "UserID")
	assert.NotContains(t, out, "DeletedAt")
}

func TestDealItem_OmitsDeprecatedPricingWhenAbsent(t *testing.T) {
	data, err := json.Marshal(DealItem{Name: "broccoli"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"broccoli"}`, string(data))
}

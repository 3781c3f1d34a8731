package product

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldDecodesAllShapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain string", `"Drexciya"`, "Drexciya"},
		{"padded string", `"  Drexciya "`, "Drexciya"},
		{"array", `["Techno","Electro"]`, "Techno, Electro"},
		{"array with empties", `["Techno","","  "]`, "Techno"},
		{"main object", `{"main":"Deep House"}`, "Deep House"},
		{"name object", `{"name":"Warp"}`, "Warp"},
		{"main wins over name", `{"main":"A","name":"B"}`, "A"},
		{"slug current", `{"current":"neptunes-lair"}`, "neptunes-lair"},
		{"array of refs", `[{"name":"Warp"},{"name":"Rephlex"}]`, "Warp, Rephlex"},
		{"null", `null`, ""},
		{"number absorbed", `42`, ""},
		{"nested garbage absorbed", `{"weird":{"deep":1}}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f Field
			require.NoError(t, json.Unmarshal([]byte(tc.in), &f))
			assert.Equal(t, tc.want, f.Normalize())
		})
	}
}

func TestFieldList(t *testing.T) {
	var f Field
	require.NoError(t, json.Unmarshal([]byte(`["a"," b ",""]`), &f))
	assert.Equal(t, []string{"a", "b"}, f.List())

	require.NoError(t, json.Unmarshal([]byte(`"solo"`), &f))
	assert.Equal(t, []string{"solo"}, f.List())

	require.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.Nil(t, f.List())
}

func TestFromContentZeroesCommercialFields(t *testing.T) {
	raw := []byte(`{
		"_id": "rec-1",
		"sku": "ROT-001",
		"title": "Neptune's Lair",
		"artist": {"name": "Drexciya"},
		"label": {"main": "Tresor"},
		"genre": ["Electro"],
		"week": ["4825"],
		"tags": ["detroit"],
		"featured": true
	}`)
	var rec ContentRecord
	require.NoError(t, json.Unmarshal(raw, &rec))
	rec.Raw = raw

	p := FromContent(rec)
	assert.Equal(t, "rec-1", p.ID)
	assert.Equal(t, "ROT-001", p.SKU)
	assert.Equal(t, "Neptune's Lair", p.Title)
	assert.Equal(t, "Drexciya", p.Artist)
	assert.Equal(t, "Tresor", p.Label)
	assert.Equal(t, "Electro", p.Genre)
	assert.True(t, p.Featured)
	assert.Zero(t, p.Price)
	assert.Zero(t, p.StockLevel)
	assert.False(t, p.StockPurchasable)
	assert.JSONEq(t, string(raw), string(p.RawContent))
}

func TestResolveSlugOrder(t *testing.T) {
	rec := ContentRecord{ID: "rec-1", SKU: "ROT-001"}

	assert.Equal(t, "from-commerce", ResolveSlug("from-commerce", rec))

	var slug Field
	require.NoError(t, json.Unmarshal([]byte(`{"current":"from-content"}`), &slug))
	rec.Slug = slug
	assert.Equal(t, "from-content", ResolveSlug("", rec))

	rec.Slug = Field{}
	assert.Equal(t, "ROT-001", ResolveSlug("", rec))

	rec.SKU = ""
	assert.Equal(t, "rec-1", ResolveSlug("", rec))
}

func TestInWeek(t *testing.T) {
	rec := ContentRecord{Weeks: []string{"4825", "4625"}}
	assert.True(t, rec.InWeek("4825"))
	assert.False(t, rec.InWeek("4725"))
}

package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"dirtyduck.club/storefront/internal/catalog"
)

func TestCatalogItemList(t *testing.T) {
	products := []catalog.Product{
		{ID: "a", Title: "A", Price: catalog.Amount(990), Currency: "₽", CTALink: "https://t.me/a"},
		{ID: "b", Title: "B", Price: catalog.Label("по запросу"), CTALink: "https://t.me/b"},
	}
	var got struct {
		Type  string `json:"@type"`
		Items []struct {
			Position int `json:"position"`
			Item     struct {
				SKU    string `json:"sku"`
				Offers *struct {
					Price    string `json:"price"`
					Currency string `json:"priceCurrency"`
				} `json:"offers"`
			} `json:"item"`
		} `json:"itemListElement"`
	}
	require.NoError(t, json.Unmarshal([]byte(JSON(Catalog("Shop", products))), &got))
	require.Equal(t, "ItemList", got.Type)
	require.Len(t, got.Items, 2)
	require.Equal(t, 1, got.Items[0].Position)
	require.Equal(t, "990", got.Items[0].Item.Offers.Price)
	require.Equal(t, "RUB", got.Items[0].Item.Offers.Currency)
	require.Nil(t, got.Items[1].Item.Offers, "free-text prices carry no offer")
}

func TestOrganizationSameAs(t *testing.T) {
	m := Organization("DDC", "", "", "https://t.me/x")
	require.Equal(t, []string{"https://t.me/x"}, m["sameAs"])
	require.NotContains(t, m, "url")
}

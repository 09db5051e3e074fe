package openfoodfacts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

// Product is the normalized subset of an OpenFoodFacts record the planner
// cares about.
type Product struct {
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	Quantity    string    `json:"quantity"`
	ImageURL    string    `json:"image_url"`
	Ingredients string    `json:"ingredients"`
	Nutrition   Nutrition `json:"nutrition"`
}

// Nutrition values are per 100g; nil means the catalog has no figure.
type Nutrition struct {
	Energy  *float64 `json:"energy"`
	Fat     *float64 `json:"fat"`
	Protein *float64 `json:"protein"`
}

// Client queries the OpenFoodFacts v0 product API.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultBaseURL,
	}
}

// Lookup fetches product data for a barcode. found=false means the catalog
// has no entry for the code; err covers transport and decode faults.
func (c *Client) Lookup(barcode string) (*Product, bool, error) {
	url := fmt.Sprintf("%s/api/v0/product/%s.json", c.BaseURL, barcode)
	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		return nil, false, fmt.Errorf("openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("openfoodfacts status %d", resp.StatusCode)
	}

	var payload struct {
		Status  int `json:"status"`
		Product struct {
			ProductName     string         `json:"product_name"`
			Brands          string         `json:"brands"`
			Categories      string         `json:"categories"`
			Quantity        string         `json:"quantity"`
			ImageURL        string         `json:"image_url"`
			IngredientsText string         `json:"ingredients_text"`
			Nutriments      map[string]any `json:"nutriments"`
		} `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("openfoodfacts decode: %w", err)
	}
	if payload.Status != 1 {
		return nil, false, nil
	}

	p := payload.Product
	name := p.ProductName
	if name == "" {
		name = "Unknown Product"
	}
	return &Product{
		Name:        name,
		Brand:       p.Brands,
		Category:    p.Categories,
		Quantity:    p.Quantity,
		ImageURL:    p.ImageURL,
		Ingredients: p.IngredientsText,
		Nutrition: Nutrition{
			Energy:  nutriment(p.Nutriments, "energy-kcal_100g"),
			Fat:     nutriment(p.Nutriments, "fat_100g"),
			Protein: nutriment(p.Nutriments, "proteins_100g"),
		},
	}, true, nil
}

// nutriment tolerates both numeric and string-encoded figures, which the
// API mixes freely.
func nutriment(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

package openfoodfacts

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &Client{HTTPClient: srv.Client(), BaseURL: srv.URL}, srv
}

func TestLookupFound(t *testing.T) {
	client, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/product/737628064502.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"status": 1,
			"product": {
				"product_name": "Rice Noodles",
				"brands": "Thai Kitchen",
				"categories": "Noodles",
				"quantity": "155 g",
				"image_url": "https://img.example/1.jpg",
				"ingredients_text": "rice flour, water",
				"nutriments": {
					"energy-kcal_100g": 365,
					"fat_100g": "1.2",
					"proteins_100g": 7.5
				}
			}
		}`)
	})
	defer srv.Close()

	p, found, err := client.Lookup("737628064502")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !found {
		t.Fatal("expected product to be found")
	}
	if p.Name != "Rice Noodles" || p.Brand != "Thai Kitchen" || p.Quantity != "155 g" {
		t.Fatalf("unexpected product %+v", p)
	}
	if p.Nutrition.Energy == nil || *p.Nutrition.Energy != 365 {
		t.Fatalf("energy = %v", p.Nutrition.Energy)
	}
	// the API serves some figures as strings
	if p.Nutrition.Fat == nil || *p.Nutrition.Fat != 1.2 {
		t.Fatalf("fat = %v", p.Nutrition.Fat)
	}
	if p.Nutrition.Protein == nil || *p.Nutrition.Protein != 7.5 {
		t.Fatalf("protein = %v", p.Nutrition.Protein)
	}
}

func TestLookupNamelessProduct(t *testing.T) {
	client, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": 1, "product": {"nutriments": {}}}`)
	})
	defer srv.Close()

	p, found, err := client.Lookup("000")
	if err != nil || !found {
		t.Fatalf("lookup: found=%v err=%v", found, err)
	}
	if p.Name != "Unknown Product" {
		t.Fatalf("expected placeholder name got %q", p.Name)
	}
	if p.Nutrition.Energy != nil {
		t.Fatalf("missing nutriment must stay nil, got %v", *p.Nutrition.Energy)
	}
}

func TestLookupNotFound(t *testing.T) {
	client, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": 0, "status_verbose": "product not found"}`)
	})
	defer srv.Close()

	p, found, err := client.Lookup("999999")
	if err != nil {
		t.Fatalf("not-found must not be an error, got %v", err)
	}
	if found || p != nil {
		t.Fatalf("expected no product, got found=%v p=%+v", found, p)
	}
}

func TestLookupUpstreamFailure(t *testing.T) {
	client, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	if _, _, err := client.Lookup("123"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

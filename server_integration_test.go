package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	// allow callers to pass nil for body safely
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	initDB()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// 1. Register user
	regBody, _ := json.Marshal(map[string]string{"username": "planner1", "password": "pass123"})
	resp := performRequest(r, http.MethodPost, "/register", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 2. Login
	loginBody, _ := json.Marshal(map[string]string{"username": "planner1", "password": "pass123"})
	resp = performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(loginBody), "", "application/json")
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}

	// 3. Create an item expiring in two days; the response must carry the
	// derived urgency fields.
	expiry := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	itemName := fmt.Sprintf("Spinach %d", time.Now().UnixNano())
	itemBody, _ := json.Marshal(map[string]string{
		"name":        itemName,
		"category":    "vegetables",
		"quantity":    "1",
		"unit":        "bunch",
		"expiry_date": expiry,
	})
	resp = performRequest(r, http.MethodPost, "/api/inventory", bytes.NewBuffer(itemBody), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("create inventory failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &created)
	if created["urgency"] != "critical" {
		t.Fatalf("expected critical urgency for 2-day expiry, got %v", created["urgency"])
	}
	itemID, _ := created["id"].(float64)
	if itemID == 0 {
		t.Fatalf("missing item id in response: %+v", created)
	}

	// 4. List inventory; the new item must appear
	resp = performRequest(r, http.MethodGet, "/api/inventory", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("list inventory failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var listed []map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &listed)
	found := false
	for _, it := range listed {
		if it["name"] == itemName {
			found = true
		}
	}
	if !found {
		t.Fatalf("created item %q not in inventory listing", itemName)
	}

	// 5. Dashboard: a 2-day item belongs to the expiring-this-week view
	resp = performRequest(r, http.MethodGet, "/api/dashboard/expiring-week", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("expiring-week failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var week []map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &week)
	found = false
	for _, it := range week {
		if it["name"] == itemName {
			found = true
		}
	}
	if !found {
		t.Fatalf("item expiring in 2 days missing from expiring-week view")
	}

	// 6. Shopping list flags items already held in inventory
	shopBody, _ := json.Marshal(map[string]string{"name": itemName, "quantity": "2", "unit": "bunch"})
	resp = performRequest(r, http.MethodPost, "/api/shopping", bytes.NewBuffer(shopBody), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("add shopping failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var shopItem map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &shopItem)
	if dup, _ := shopItem["is_duplicate"].(bool); !dup {
		t.Fatalf("expected duplicate flag for %q already in inventory: %+v", itemName, shopItem)
	}

	// 7. Recipe suggestions honor max_results
	resp = performRequest(r, http.MethodGet, "/api/recipes/suggestions?max_results=3", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("suggestions failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var suggestions []map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &suggestions)
	if len(suggestions) > 3 {
		t.Fatalf("expected at most 3 suggestions, got %d", len(suggestions))
	}

	// 8. Meal plan round trip
	planBody, _ := json.Marshal(map[string]string{"date": "2026-02-01", "meal_type": "dinner", "recipe_name": "Dal Tadka"})
	resp = performRequest(r, http.MethodPost, "/api/mealplan", bytes.NewBuffer(planBody), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("add mealplan failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/mealplan?date=2026-02-01", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("list mealplan failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 9. Delete the item
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/inventory/%d", int(itemID)), nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("delete inventory failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 10. Unauthorized access to protected endpoint should be 401
	unauth := performRequest(r, http.MethodGet, "/api/inventory", nil, "", "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized inventory list got %d", unauth.Code)
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initDB()
}

package main

import (
	"encoding/base64"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"fwplanner/models"
	"fwplanner/pkg/expiry"
	"fwplanner/pkg/openfoodfacts"
	"fwplanner/pkg/recipes"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// External collaborators; package-level so tests can substitute them.
var (
	recognizer expiry.Recognizer = expiry.TesseractRecognizer{}
	offClient                    = openfoodfacts.NewClient()
)

// inventoryView decorates a stored item with the derived urgency fields.
// These are recomputed against now on every read, never persisted.
type inventoryView struct {
	models.InventoryItem
	DaysToExpire *int   `json:"days_to_expire"`
	Urgency      string `json:"urgency"`
}

func viewOf(item models.InventoryItem, now time.Time) inventoryView {
	days, label := expiry.ClassifyUrgency(item.ExpiryDate, now)
	return inventoryView{InventoryItem: item, DaysToExpire: days, Urgency: label}
}

// parseExpiryInput accepts RFC3339 or plain YYYY-MM-DD. Malformed input
// degrades to nil (urgency unknown), not an error.
func parseExpiryInput(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// scopedInventory returns the inventory query for the request: admins see
// all rows, everyone else only their own.
func scopedInventory(c *gin.Context, user *models.User) *gorm.DB {
	q := db.Model(&models.InventoryItem{})
	if !isAdmin(c) {
		q = q.Where("user_id = ?", user.ID)
	}
	return q
}

func createInventoryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name       string `json:"name" binding:"required"`
		Category   string `json:"category" binding:"required"`
		Quantity   string `json:"quantity"`
		Unit       string `json:"unit"`
		ExpiryDate string `json:"expiry_date"`
		Barcode    string `json:"barcode"`
		Image      string `json:"image"`
		Brand      string `json:"brand"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := models.InventoryItem{
		UserID:     user.ID,
		Name:       req.Name,
		Category:   req.Category,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		ExpiryDate: parseExpiryInput(req.ExpiryDate),
		Barcode:    req.Barcode,
		Image:      req.Image,
		Brand:      req.Brand,
		AddedDate:  time.Now().UTC(),
	}
	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, viewOf(item, time.Now().UTC()))
}

func listInventoryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := scopedInventory(c, user)
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	var items []models.InventoryItem
	if err := q.Order("id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	now := time.Now().UTC()
	views := make([]inventoryView, 0, len(items))
	for _, it := range items {
		views = append(views, viewOf(it, now))
	}
	if c.DefaultQuery("sort_by", "expiry") == "expiry" {
		sortByDaysToExpire(views)
	}
	c.JSON(http.StatusOK, views)
}

// sortByDaysToExpire orders soonest-first; items with no expiry sink to the end.
func sortByDaysToExpire(views []inventoryView) {
	daysOrMax := func(v inventoryView) int {
		if v.DaysToExpire == nil {
			return 9999
		}
		return *v.DaysToExpire
	}
	sort.SliceStable(views, func(i, j int) bool { return daysOrMax(views[i]) < daysOrMax(views[j]) })
}

func getInventoryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var item models.InventoryItem
	if err := scopedInventory(c, user).Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, viewOf(item, time.Now().UTC()))
}

func updateInventoryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name       *string `json:"name"`
		Category   *string `json:"category"`
		Quantity   *string `json:"quantity"`
		Unit       *string `json:"unit"`
		ExpiryDate *string `json:"expiry_date"`
		Image      *string `json:"image"`
		Brand      *string `json:"brand"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.ExpiryDate != nil {
		updates["expiry_date"] = parseExpiryInput(*req.ExpiryDate)
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no update data provided"})
		return
	}
	var item models.InventoryItem
	if err := scopedInventory(c, user).Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if err := db.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if err := db.First(&item, item.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed"})
		return
	}
	c.JSON(http.StatusOK, viewOf(item, time.Now().UTC()))
}

func deleteInventoryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	res := scopedInventory(c, user).Where("id = ?", c.Param("id")).Delete(&models.InventoryItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted successfully"})
}

func barcodeLookupHandler(c *gin.Context) {
	code := c.Param("code")
	product, found, err := offClient.Lookup(code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "product lookup failed"})
		return
	}
	resp := gin.H{"found": found, "barcode": code}
	if found {
		resp["product"] = product
	}
	c.JSON(http.StatusOK, resp)
}

// ocrExpiryHandler accepts a base64 image (data-URI prefix tolerated), runs
// the preprocess/recognize/extract pipeline and always answers with a
// well-formed extraction envelope unless the bytes are not an image at all.
func ocrExpiryHandler(c *gin.Context) {
	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	data := req.Image
	if i := strings.IndexByte(data, ','); i != -1 {
		data = data[i+1:] // strip data:image/...;base64, prefix
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base64 image"})
		return
	}
	res, err := expiry.ExtractFromImage(raw, recognizer)
	if err != nil {
		if errors.Is(err, expiry.ErrDecode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image could not be decoded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ocr processing failed"})
		return
	}
	resp := gin.H{
		"success":       res.Success,
		"confidence":    res.Confidence,
		"detected_text": res.RawText,
	}
	if res.Date != nil {
		resp["expiry_date"] = res.Date.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

func recipeSuggestionsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	limit := 5
	if v := c.Query("max_results"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			limit = n
		}
	}
	var items []models.InventoryItem
	if err := scopedInventory(c, user).Order("id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	now := time.Now().UTC()
	var names, expiring []string
	for _, it := range items {
		names = append(names, it.Name)
		if days, _ := expiry.ClassifyUrgency(it.ExpiryDate, now); days != nil && *days >= 0 && *days <= 7 {
			expiring = append(expiring, it.Name)
		}
	}
	matches := recipes.MatchRecipes(recipeCatalog, names, expiring, limit)
	out := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		out = append(out, gin.H{
			"name":                  m.Recipe.Name,
			"ingredients":           m.Recipe.Ingredients,
			"available_ingredients": m.Available,
			"missing_ingredients":   m.Missing,
			"steps":                 m.Recipe.Steps,
			"cooking_time":          m.Recipe.CookingTime,
			"difficulty":            m.Recipe.Difficulty,
			"cuisine":               m.Recipe.Cuisine,
			"meal_type":             m.Recipe.MealType,
			"waste_prevented":       m.WastePrevented,
		})
	}
	c.JSON(http.StatusOK, out)
}

// dashboard views reuse the same derived urgency, filtered by day-delta.
func expiringTodayHandler(c *gin.Context) {
	dashboardByDelta(c, 0, 0)
}

func expiringWeekHandler(c *gin.Context) {
	dashboardByDelta(c, 1, 7)
}

func dashboardByDelta(c *gin.Context, min, max int) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var items []models.InventoryItem
	if err := scopedInventory(c, user).Order("id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	now := time.Now().UTC()
	out := []inventoryView{}
	for _, it := range items {
		v := viewOf(it, now)
		if v.DaysToExpire != nil && *v.DaysToExpire >= min && *v.DaysToExpire <= max {
			out = append(out, v)
		}
	}
	c.JSON(http.StatusOK, out)
}

func listShoppingHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var items []models.ShoppingItem
	q := db.Model(&models.ShoppingItem{})
	if !isAdmin(c) {
		q = q.Where("user_id = ?", user.ID)
	}
	if err := q.Order("id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func addShoppingHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name     string `json:"name" binding:"required"`
		Quantity string `json:"quantity"`
		Unit     string `json:"unit"`
		Priority string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := models.ShoppingItem{
		UserID:   user.ID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Priority: req.Priority,
	}
	// flag duplicates already held in inventory
	var existing models.InventoryItem
	if err := db.Where("user_id = ? AND LOWER(name) = LOWER(?)", user.ID, req.Name).First(&existing).Error; err == nil {
		item.IsDuplicate = true
		item.Notes = strings.TrimSpace("You already have " + existing.Quantity + " " + existing.Unit)
	}
	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func deleteShoppingHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Where("id = ?", c.Param("id"))
	if !isAdmin(c) {
		q = q.Where("user_id = ?", user.ID)
	}
	res := q.Delete(&models.ShoppingItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

func listMealPlanHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var plans []models.MealPlan
	q := db.Model(&models.MealPlan{}).Where("user_id = ?", user.ID)
	if d := c.Query("date"); d != "" {
		q = q.Where("date = ?", d)
	}
	if err := q.Order("date, meal_type").Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, plans)
}

func addMealPlanHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Date       string `json:"date" binding:"required"`
		MealType   string `json:"meal_type" binding:"required"`
		RecipeName string `json:"recipe_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan := models.MealPlan{UserID: user.ID, Date: req.Date, MealType: req.MealType, RecipeName: req.RecipeName}
	if err := db.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func deleteMealPlanHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	res := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).Delete(&models.MealPlan{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}

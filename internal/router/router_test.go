package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/salesorder-next/internal/config"
	"github.com/salesorder-next/internal/constants"
	"github.com/salesorder-next/internal/models"
	"github.com/salesorder-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type formBody struct {
	SessionID string `json:"session_id"`
	Record    struct {
		OrderName string `json:"order_name"`
		Customer  string `json:"customer"`
		Address   string `json:"address"`
		Variants  []struct {
			ID    string         `json:"id"`
			Price string         `json:"price"`
			Sizes map[string]int `json:"sizes"`
		} `json:"variants"`
		Additions []struct {
			ID string `json:"id"`
		} `json:"additions"`
		DesignFile *models.FileRef `json:"design_file"`
	} `json:"record"`
	Totals struct {
		TotalQuantity    int    `json:"total_quantity"`
		ProductAmount    string `json:"product_amount"`
		TotalBill        string `json:"total_bill"`
		RemainingPayment string `json:"remaining_payment"`
	} `json:"totals"`
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := models.SeedReferenceData(db, false); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Upload: config.UploadConfig{
			Dir:              t.TempDir(),
			MaxSize:          1 << 20,
			DesignExtensions: []string{".png", ".pdf"},
		},
		Form: config.FormConfig{
			CurrencyPrefix:    constants.DefaultCurrencyPrefix,
			DisplayLocale:     constants.DefaultDisplayLocale,
			IDStrategy:        constants.IDStrategySequence,
			SessionTTLMinutes: 10,
			MaxSessions:       10,
		},
	}
	return SetupRouter(cfg, provider.NewContainerWithDB(cfg, db, nil))
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status %d body=%s", method, path, w.Code, w.Body.String())
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func decodeForm(t *testing.T, raw json.RawMessage) formBody {
	t.Helper()
	var form formBody
	if err := json.Unmarshal(raw, &form); err != nil {
		t.Fatalf("decode form failed: %v", err)
	}
	return form
}

func createForm(t *testing.T, r *gin.Engine) formBody {
	t.Helper()
	resp := doJSON(t, r, http.MethodPost, "/api/v1/forms", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("create form failed: %+v", resp)
	}
	form := decodeForm(t, resp.Data)
	if form.SessionID == "" {
		t.Fatalf("expected session id")
	}
	return form
}

func TestReferenceEndpoint(t *testing.T) {
	r := setupTestRouter(t)
	resp := doJSON(t, r, http.MethodGet, "/api/v1/reference", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("unexpected status: %+v", resp)
	}
	var body struct {
		Customers []models.Customer `json:"customers"`
		Sizes     []string          `json:"sizes"`
		Accept    string            `json:"design_file_accept"`
	}
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Customers) != 3 || len(body.Sizes) != 9 {
		t.Fatalf("unexpected reference body: %+v", body)
	}
	if !strings.Contains(body.Accept, "image/*") {
		t.Fatalf("unexpected accept hint: %s", body.Accept)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/v1/reference/customers?search=XYZ", nil)
	var page struct {
		Items []models.Customer `json:"items"`
	}
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		t.Fatalf("decode page failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Code != "2" {
		t.Fatalf("unexpected customer search result: %+v", page.Items)
	}
}

func TestFormEditingFlow(t *testing.T) {
	r := setupTestRouter(t)
	form := createForm(t, r)
	base := "/api/v1/forms/" + form.SessionID

	resp := doJSON(t, r, http.MethodPut, base+"/customer", gin.H{"customer_id": "1"})
	form = decodeForm(t, resp.Data)
	if form.Record.Customer != "PT ABC Corporation" || form.Record.Address != "Jl. Sudirman No. 123, Jakarta" {
		t.Fatalf("customer selection should fill address: %+v", form.Record)
	}

	resp = doJSON(t, r, http.MethodPatch, base+"/fields", gin.H{"path": "address", "value": "x"})
	if resp.StatusCode != 400 {
		t.Fatalf("address should be read-only, got %+v", resp)
	}

	resp = doJSON(t, r, http.MethodPatch, base+"/variants/1", gin.H{"field": "price", "value": "100"})
	if resp.StatusCode != 0 {
		t.Fatalf("set variant price failed: %+v", resp)
	}
	resp = doJSON(t, r, http.MethodPut, base+"/variants/1/sizes/m", gin.H{"quantity": 5})
	form = decodeForm(t, resp.Data)
	if form.Totals.TotalQuantity != 5 || form.Totals.ProductAmount != "500.00" {
		t.Fatalf("unexpected totals after size update: %+v", form.Totals)
	}

	resp = doJSON(t, r, http.MethodPost, base+"/additions", nil)
	var added struct {
		ID   string   `json:"id"`
		Form formBody `json:"form"`
	}
	if err := json.Unmarshal(resp.Data, &added); err != nil {
		t.Fatalf("decode addition failed: %v", err)
	}
	if added.ID == "" || len(added.Form.Record.Additions) != 1 {
		t.Fatalf("unexpected addition response: %+v", added)
	}
	resp = doJSON(t, r, http.MethodPatch, base+"/additions/"+added.ID, gin.H{"field": "price", "value": 60})
	form = decodeForm(t, resp.Data)
	if form.Totals.TotalBill != "560.00" {
		t.Fatalf("expected total bill 560.00, got %s", form.Totals.TotalBill)
	}

	resp = doJSON(t, r, http.MethodDelete, base+"/variants/1", nil)
	var removed struct {
		Removed bool `json:"removed"`
	}
	_ = json.Unmarshal(resp.Data, &removed)
	if removed.Removed {
		t.Fatalf("last variant must not be removed")
	}

	resp = doJSON(t, r, http.MethodDelete, base+"/deductions/404", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("expected line item not found, got %+v", resp)
	}
}

func TestSubmitValidationAndResult(t *testing.T) {
	r := setupTestRouter(t)
	form := createForm(t, r)
	base := "/api/v1/forms/" + form.SessionID

	resp := doJSON(t, r, http.MethodGet, base+"/result", nil)
	var empty struct {
		HasResult bool   `json:"has_result"`
		Message   string `json:"message"`
	}
	_ = json.Unmarshal(resp.Data, &empty)
	if empty.HasResult || empty.Message == "" {
		t.Fatalf("expected empty result with message, got %+v", empty)
	}

	resp = doJSON(t, r, http.MethodPost, base+"/submit", nil)
	if resp.StatusCode != 400 {
		t.Fatalf("empty form should fail validation, got %+v", resp)
	}
	var invalid struct {
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	_ = json.Unmarshal(resp.Data, &invalid)
	if len(invalid.Fields) == 0 {
		t.Fatalf("expected field errors")
	}

	doJSON(t, r, http.MethodPut, base+"/customer", gin.H{"customer_id": "2"})
	fields := gin.H{
		"orderName":   "Seragam",
		"product":     "1",
		"segment":     "Corporate",
		"date":        "2026-01-02",
		"duePayment":  "2026-01-10",
		"spkDate":     "2026-01-03",
		"productNote": "Logo",
	}
	for _, group := range []string{"material_detail", "printing_detail", "embroidery_detail"} {
		for _, sub := range []string{"category", "material", "input_color", "expandable_input"} {
			fields[group+"."+sub] = "x"
		}
	}
	resp = doJSON(t, r, http.MethodPatch, base+"/fields", gin.H{"fields": fields})
	if resp.StatusCode != 0 {
		t.Fatalf("batch field update failed: %+v", resp)
	}

	resp = doJSON(t, r, http.MethodPost, base+"/submit", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("submit failed: %+v", resp)
	}

	resp = doJSON(t, r, http.MethodGet, base, nil)
	form = decodeForm(t, resp.Data)
	if form.Record.Customer != "" {
		t.Fatalf("form should be reset after submit: %+v", form.Record)
	}

	req := httptest.NewRequest(http.MethodGet, base+"/result?format=text", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "Seragam") || !strings.Contains(w.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("unexpected receipt: %s", w.Body.String())
	}
}

func TestUnknownFormReturnsNotFound(t *testing.T) {
	r := setupTestRouter(t)
	resp := doJSON(t, r, http.MethodGet, "/api/v1/forms/missing", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 status code, got %+v", resp)
	}
}

func TestUploadDesignFile(t *testing.T) {
	r := setupTestRouter(t)
	form := createForm(t, r)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "mockup.pdf")
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	_, _ = part.Write([]byte("%PDF-1.4 test"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/forms/"+form.SessionID+"/design-file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("upload failed: %+v", resp)
	}
	var body struct {
		File models.FileRef `json:"file"`
		Form formBody       `json:"form"`
	}
	_ = json.Unmarshal(resp.Data, &body)
	if !strings.HasPrefix(body.File.Path, "/uploads/design/") || body.Form.Record.DesignFile == nil {
		t.Fatalf("unexpected upload body: %+v", body)
	}

	missing := httptest.NewRequest(http.MethodPost, "/api/v1/forms/"+form.SessionID+"/attachment", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, missing)
	if !strings.Contains(w.Body.String(), `"status_code":400`) {
		t.Fatalf("missing file should be rejected: %s", w.Body.String())
	}
}

func TestRouteCatalogGroupsByModule(t *testing.T) {
	r := setupTestRouter(t)
	items := buildRouteCatalog(r)
	found := false
	for _, item := range items {
		if item.Path == "/api/v1/forms/:id/additions" && item.Method == http.MethodPost {
			found = item.Module == "additions"
		}
	}
	if !found {
		t.Fatalf("additions route missing from catalog")
	}
	if got := deriveRouteModule("/api/v1/reference/customers"); got != "reference" {
		t.Fatalf("unexpected module: %s", got)
	}
}

func TestRejectedBatchLeavesFormUnchanged(t *testing.T) {
	r := setupTestRouter(t)
	form := createForm(t, r)
	base := "/api/v1/forms/" + form.SessionID

	resp := doJSON(t, r, http.MethodPatch, base+"/fields", gin.H{
		"fields": gin.H{"order_name": "Batch", "shipping.price": "abc"},
	})
	if resp.StatusCode == 0 {
		t.Fatalf("invalid shipping price should reject the batch: %+v", resp)
	}
	form = decodeForm(t, doJSON(t, r, http.MethodGet, base, nil).Data)
	if form.Record.OrderName != "" {
		t.Fatalf("rejected batch must not commit earlier fields, order_name=%q", form.Record.OrderName)
	}

	resp = doJSON(t, r, http.MethodPatch, base+"/variants/1", gin.H{
		"fields": gin.H{"price": "100", "subVariant": gin.H{"bad": true}},
	})
	if resp.StatusCode == 0 {
		t.Fatalf("invalid variant field should reject the batch: %+v", resp)
	}
	form = decodeForm(t, doJSON(t, r, http.MethodGet, base, nil).Data)
	if form.Record.Variants[0].Price != "0.00" {
		t.Fatalf("rejected variant batch must not commit price, price=%s", form.Record.Variants[0].Price)
	}

	resp = doJSON(t, r, http.MethodPatch, base+"/fields", gin.H{
		"fields": gin.H{"order_name": "Batch", "shipping.price": "25"},
	})
	if resp.StatusCode != 0 {
		t.Fatalf("valid batch failed: %+v", resp)
	}
	form = decodeForm(t, resp.Data)
	if form.Record.OrderName != "Batch" {
		t.Fatalf("valid batch should commit all fields: %+v", form.Record)
	}
}

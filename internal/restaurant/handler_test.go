package restaurant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testRouter(repo *InMemoryRepository, uploader *MockUploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(repo, uploader))

	r := gin.New()

	// Stand-in for the auth chain on owner-scoped routes.
	owner := r.Group("/api/my/restaurant", func(c *gin.Context) {
		c.Set("userID", "owner-123")
	})
	owner.GET("", handler.GetMyRestaurant)
	owner.POST("", handler.CreateMyRestaurant)
	owner.PUT("", handler.UpdateMyRestaurant)

	public := r.Group("/api/restaurant")
	public.GET("/:restaurantId", handler.GetRestaurant)
	public.GET("/search/:city", handler.SearchRestaurants)

	return r
}

type formOptions struct {
	fields    map[string]string
	cuisines  []string
	imageSize int
}

func defaultForm() formOptions {
	return formOptions{
		fields: map[string]string{
			"restaurantName":        "Pizza Palace",
			"city":                  "London",
			"country":               "UK",
			"deliveryPrice":         "2.5",
			"estimatedDeliveryTime": "30",
			"menuItems":             `[{"name":"Margherita","price":8.5}]`,
		},
		cuisines:  []string{"Italian", "Pizza"},
		imageSize: 64,
	}
}

func buildForm(t *testing.T, opts formOptions) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for field, value := range opts.fields {
		if err := w.WriteField(field, value); err != nil {
			t.Fatalf("failed to write field %s: %v", field, err)
		}
	}
	for _, cuisine := range opts.cuisines {
		if err := w.WriteField("cuisines", cuisine); err != nil {
			t.Fatalf("failed to write cuisine: %v", err)
		}
	}
	if opts.imageSize > 0 {
		fw, err := w.CreateFormFile("imageFile", "restaurant.jpg")
		if err != nil {
			t.Fatalf("failed to create image part: %v", err)
		}
		if _, err := fw.Write(bytes.Repeat([]byte{0xAB}, opts.imageSize)); err != nil {
			t.Fatalf("failed to write image bytes: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close form writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func doMultipart(t *testing.T, r *gin.Engine, method string, opts formOptions) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := buildForm(t, opts)
	req := httptest.NewRequest(method, "/api/my/restaurant", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func TestCreateMyRestaurant_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	r := testRouter(repo, &MockUploader{})

	w := doMultipart(t, r, http.MethodPost, defaultForm())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created Restaurant
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.UserID != "owner-123" {
		t.Errorf("expected owner 'owner-123', got '%s'", created.UserID)
	}
	if created.ImageURL == "" {
		t.Errorf("expected image URL to be set")
	}
	if created.LastUpdated.IsZero() {
		t.Errorf("expected lastUpdated to be set")
	}
}

func TestCreateMyRestaurant_Duplicate(t *testing.T) {
	repo := NewInMemoryRepository()
	r := testRouter(repo, &MockUploader{})

	if w := doMultipart(t, r, http.MethodPost, defaultForm()); w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	if w := doMultipart(t, r, http.MethodPost, defaultForm()); w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestCreateMyRestaurant_ValidationFailureCollectsAllErrors(t *testing.T) {
	repo := NewInMemoryRepository()
	r := testRouter(repo, &MockUploader{})

	opts := defaultForm()
	opts.fields["deliveryPrice"] = "-1"
	opts.cuisines = nil

	w := doMultipart(t, r, http.MethodPost, opts)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(resp.Errors), resp.Errors)
	}

	// A rejected payload never reaches persistence.
	if _, err := repo.FindByOwner(context.Background(), "owner-123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected no record after validation failure, got %v", err)
	}
}

func TestCreateMyRestaurant_MissingImage(t *testing.T) {
	repo := NewInMemoryRepository()
	r := testRouter(repo, &MockUploader{})

	opts := defaultForm()
	opts.imageSize = 0

	w := doMultipart(t, r, http.MethodPost, opts)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestCreateMyRestaurant_OversizedImage(t *testing.T) {
	repo := NewInMemoryRepository()
	r := testRouter(repo, &MockUploader{})

	opts := defaultForm()
	opts.imageSize = MaxImageSize + 1

	w := doMultipart(t, r, http.MethodPost, opts)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

// --------------------------------------------------
// Get / Update owner-scoped
// --------------------------------------------------

func TestGetMyRestaurant_NotFound(t *testing.T) {
	r := testRouter(NewInMemoryRepository(), &MockUploader{})

	req := httptest.NewRequest(http.MethodGet, "/api/my/restaurant", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestUpdateMyRestaurant_WithoutImagePreservesURL(t *testing.T) {
	repo := NewInMemoryRepository()
	r := testRouter(repo, &MockUploader{})

	if w := doMultipart(t, r, http.MethodPost, defaultForm()); w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	created, err := repo.FindByOwner(context.Background(), "owner-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts := defaultForm()
	opts.fields["restaurantName"] = "Pizza Kingdom"
	opts.imageSize = 0

	w := doMultipart(t, r, http.MethodPut, opts)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated Restaurant
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.RestaurantName != "Pizza Kingdom" {
		t.Errorf("expected name overwrite, got '%s'", updated.RestaurantName)
	}
	if updated.ImageURL != created.ImageURL {
		t.Errorf("expected image URL preserved, got '%s'", updated.ImageURL)
	}
}

func TestUpdateMyRestaurant_NotFound(t *testing.T) {
	r := testRouter(NewInMemoryRepository(), &MockUploader{})

	opts := defaultForm()
	opts.imageSize = 0

	w := doMultipart(t, r, http.MethodPut, opts)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

// --------------------------------------------------
// Public routes
// --------------------------------------------------

func TestGetRestaurant_PublicByID(t *testing.T) {
	repo := NewInMemoryRepository()
	r := testRouter(repo, &MockUploader{})

	if w := doMultipart(t, r, http.MethodPost, defaultForm()); w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	created, err := repo.FindByOwner(context.Background(), "owner-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/restaurant/"+created.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/restaurant/missing-id", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestSearchRestaurants_UnknownCity(t *testing.T) {
	r := testRouter(NewInMemoryRepository(), &MockUploader{})

	req := httptest.NewRequest(http.MethodGet, "/api/restaurant/search/Atlantis?page=3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}

	var resp SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := Pagination{Total: 0, Page: 1, Pages: 1}
	if resp.Pagination != want {
		t.Errorf("expected pagination %+v, got %+v", want, resp.Pagination)
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected empty data, got %d", len(resp.Data))
	}
}

func TestSearchRestaurants_ServedCityFilteredEmpty(t *testing.T) {
	repo := NewInMemoryRepository()
	r := testRouter(repo, &MockUploader{})

	if w := doMultipart(t, r, http.MethodPost, defaultForm()); w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/restaurant/search/london?selectedCuisins=Klingon", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// A served city with nothing left after filtering is a 200, never the
	// 404 reserved for unknown cities.
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected empty data, got %d", len(resp.Data))
	}
	if resp.Pagination.Total != 0 {
		t.Errorf("expected total 0, got %d", resp.Pagination.Total)
	}
}

func TestSearchRestaurants_FiltersAndPaginates(t *testing.T) {
	repo := NewInMemoryRepository()
	r := testRouter(repo, &MockUploader{})

	if w := doMultipart(t, r, http.MethodPost, defaultForm()); w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/restaurant/search/london?searchQuery=pizza&selectedCuisins=Italian&page=notanumber", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Pagination.Page != 1 {
		t.Errorf("expected non-numeric page to default to 1, got %d", resp.Pagination.Page)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Data))
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"motofibra/catalog/internal/common"
	catalogdb "motofibra/catalog/internal/db"
	"motofibra/catalog/internal/models/dtos"
	"motofibra/catalog/internal/models/entities"
	gormModels "motofibra/catalog/internal/models/gorm"
	"motofibra/catalog/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Status string            `json:"status"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
	Data   *T                `json:"data"`
}

func newTestRouter(t *testing.T) (http.Handler, *Dependencies) {
	t.Helper()

	gdb, err := catalogdb.Open(catalogdb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = catalogdb.Close(gdb) })

	readDB, err := catalogdb.NewReadDB(gdb, catalogdb.DriverSQLite)
	require.NoError(t, err)

	deps, err := InitDependencies(DependencyOptions{
		DB:          gdb,
		ReadDB:      readDB,
		Cache:       common.NewCacheService(time.Minute, time.Minute),
		CacheTTL:    time.Minute,
		MergePolicy: services.MergeSkipFalsy,
	})
	require.NoError(t, err)

	h := NewHandlers(deps)
	r := chi.NewRouter()
	r.Get("/healthCheck", HealthCheckHandler(readDB, nil, time.Now()))
	r.Get("/parts", h.ListPartsHandler())
	r.Post("/parts", h.CreatePartHandler())
	r.Get("/parts/compare", h.ComparePartsHandler())
	r.Get("/parts/{id}", h.GetPartHandler())
	r.Put("/parts/{id}", h.UpdatePartHandler())
	r.Put("/parts/{id}/details", h.PutDetailsHandler())
	r.Post("/part-details", h.CreateDetailsHandler())
	r.Get("/reports/categories", h.CategoryReportHandler())
	return r, deps
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCreateAndGetPart(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/parts",
		`{"name":"R1 Fairing","brand":"Yamaha","reference":"R1-20","client":"MotoFibra","category":"front-fairing"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[gormModels.Part](t, rec)
	require.NotNil(t, created.Data)
	assert.Equal(t, "ok", created.Status)

	rec = doJSON(t, r, http.MethodGet, "/parts/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[dtos.PartView](t, rec)
	assert.Equal(t, "R1 Fairing", view.Data.Part.Name)
	assert.Nil(t, view.Data.Details)
	assert.Contains(t, rec.Body.String(), `"details":null`)
}

func TestCreatePartValidation(t *testing.T) {
	r, deps := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/parts",
		`{"name":"X","brand":"Harley","client":"MotoFibra","category":"tanks"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode[any](t, rec)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Fields, "brand")

	rec = doJSON(t, r, http.MethodPost, "/parts", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/parts", `{"name":"X","colour":"red"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	count, err := deps.Repo.Parts.Count(t.Context())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetPartErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/parts/5", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/parts/abc", "").Code)
}

func TestListPartsFilter(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []string{
		`{"name":"Front Pad Fender","brand":"Honda","client":"MotoFibra","category":"fenders"}`,
		`{"name":"Tail Section","brand":"Honda","client":"S2Concept","category":"tail-section"}`,
	} {
		require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/parts", body).Code)
	}

	rec := doJSON(t, r, http.MethodGet, "/parts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, *decode[[]gormModels.Part](t, rec).Data, 2)

	rec = doJSON(t, r, http.MethodGet, "/parts?name=pad", "")
	parts := *decode[[]gormModels.Part](t, rec).Data
	require.Len(t, parts, 1)
	assert.Equal(t, "Front Pad Fender", parts[0].Name)

	rec = doJSON(t, r, http.MethodGet, "/parts?client=Nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, *decode[[]gormModels.Part](t, rec).Data)
}

func TestUpdatePart(t *testing.T) {
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/parts",
		`{"name":"Tank","brand":"Honda","client":"MotoFibra","category":"tanks","cost":50}`).Code)

	rec := doJSON(t, r, http.MethodPut, "/parts/1", `{"name":"Tank XL","brand":"Suzuki","reference":"SZ"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	part := decode[gormModels.Part](t, rec).Data
	assert.Equal(t, "Tank XL", part.Name)
	assert.EqualValues(t, "tanks", part.Category)

	rec = doJSON(t, r, http.MethodGet, "/parts/1", "")
	view := decode[dtos.PartView](t, rec).Data
	require.NotNil(t, view.Details)
	assert.Equal(t, 50.0, *view.Details.Cost)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPut, "/parts/9", `{"name":"x","brand":"Honda"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, doJSON(t, r, http.MethodPut, "/parts/1", `{"name":"x","brand":"BMW"}`).Code)
}

func TestDetailsEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/parts",
		`{"name":"Scoop","brand":"Ducati","client":"S2Concept","category":"scoops"}`).Code)

	rec := doJSON(t, r, http.MethodPost, "/part-details", `{"part_id":1,"cost":120}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, r, http.MethodPut, "/parts/1/details", `{"cost":0,"resin_usage":3.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	details := decode[gormModels.PartDetails](t, rec).Data
	assert.Equal(t, 120.0, *details.Cost)
	assert.Equal(t, 3.5, *details.ResinUsage)
	assert.Nil(t, details.PaintTime)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPost, "/part-details", `{"part_id":99,"cost":1}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, doJSON(t, r, http.MethodPost, "/part-details", `{"cost":1}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, doJSON(t, r, http.MethodPut, "/parts/1/details", `{"cost":-1}`).Code)
}

func TestPutDetailsPartIDMustMatchPath(t *testing.T) {
	r, deps := newTestRouter(t)

	for _, body := range []string{
		`{"name":"Scoop","brand":"Ducati","client":"S2Concept","category":"scoops"}`,
		`{"name":"Tank","brand":"Ducati","client":"S2Concept","category":"tanks"}`,
	} {
		require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/parts", body).Code)
	}

	rec := doJSON(t, r, http.MethodPut, "/parts/1/details", `{"part_id":2,"cost":10}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[gormModels.PartDetails](t, rec).Fields, "part_id")

	for _, id := range []uint{1, 2} {
		details, err := deps.Services.Catalog.GetDetails(t.Context(), id)
		require.NoError(t, err)
		assert.Nil(t, details)
	}

	rec = doJSON(t, r, http.MethodPut, "/parts/1/details", `{"part_id":1,"cost":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, uint(1), decode[gormModels.PartDetails](t, rec).Data.PartID)
}

func TestComparePartsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []string{
		`{"name":"A","brand":"Honda","client":"MotoFibra","category":"tanks"}`,
		`{"name":"B","brand":"Honda","client":"MotoFibra","category":"tanks","cost":80}`,
		`{"name":"C","brand":"Honda","client":"MotoFibra","category":"tanks","cost":100}`,
	} {
		require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/parts", body).Code)
	}

	rec := doJSON(t, r, http.MethodGet, "/parts/compare?id1=1&id2=2", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode[any](t, rec).Error, "part 1")

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/parts/compare?id1=2&id2=9", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/parts/compare?id1=2", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/parts/compare?id1=2&id2=x", "").Code)

	rec = doJSON(t, r, http.MethodGet, "/parts/compare?id1=2&id2=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cmp := decode[dtos.Comparison](t, rec).Data
	assert.Equal(t, "B", cmp.Left.Part.Name)
	assert.Equal(t, "C", cmp.Right.Part.Name)
	assert.True(t, strings.Contains(rec.Body.String(), `"delta":"20"`), rec.Body.String())
}

func TestCategoryReportEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/parts",
		`{"name":"A","brand":"Honda","client":"MotoFibra","category":"tanks","cost":10}`).Code)

	rec := doJSON(t, r, http.MethodGet, "/reports/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rows := *decode[[]dtos.CategorySummary](t, rec).Data
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].WithDetails)

	assert.Equal(t, http.StatusUnprocessableEntity, doJSON(t, r, http.MethodGet, "/reports/categories?client=Acme", "").Code)
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/healthCheck", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entities.HealthCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Services["database"].Status)
}

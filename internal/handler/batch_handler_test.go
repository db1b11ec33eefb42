package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-agrichain/internal/service"
	"go-agrichain/internal/store"
)

func setupApp() *fiber.App {
	ledgerStore := store.NewMemoryStore()
	chainService := service.NewChainService(ledgerStore, nil)
	lookupService := service.NewLookupService(ledgerStore)

	batchHandler := NewBatchHandler(chainService)
	lookupHandler := NewLookupHandler(lookupService, "http://localhost:3000")

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/stats", batchHandler.GetStats)
	api.Get("/listings", batchHandler.GetListings)
	api.Post("/listings", batchHandler.CreateListing)
	api.Post("/listings/seed", batchHandler.SeedListings)
	api.Post("/batches/:id/distributor-purchase", batchHandler.DistributorPurchase)
	api.Post("/batches/:id/retail", batchHandler.RetailerPurchase)
	api.Post("/batches/:id/consumer-purchase", batchHandler.ConsumerPurchase)
	api.Get("/batches/:id", lookupHandler.GetBatch)
	api.Get("/batches/:id/qr", lookupHandler.GetQR)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Data
}

func TestListingLifecycleOverHTTP(t *testing.T) {
	app := setupApp()

	resp := doJSON(t, app, "POST", "/api/v1/listings", `{"crop":"Wheat","grade":"A","qty":500,"price":22}`)
	require.Equal(t, 201, resp.StatusCode)
	batch := decodeData(t, resp)
	id := batch["id"].(string)
	assert.Equal(t, "AVAILABLE", batch["status"])

	resp = doJSON(t, app, "POST", "/api/v1/batches/"+id+"/distributor-purchase", `{"transportation":2,"storage":1,"handling":1}`)
	require.Equal(t, 201, resp.StatusCode)

	// A second distributor purchase conflicts with the ledger.
	resp = doJSON(t, app, "POST", "/api/v1/batches/"+id+"/distributor-purchase", `{}`)
	assert.Equal(t, 409, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/v1/batches/"+id+"/retail", `{"margin":20}`)
	require.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "RETAIL", decodeData(t, resp)["status"])

	resp = doJSON(t, app, "POST", "/api/v1/batches/"+id+"/consumer-purchase", `{"qty":600,"channel":"retail"}`)
	assert.Equal(t, 409, resp.StatusCode, "over-request is rejected")

	resp = doJSON(t, app, "POST", "/api/v1/batches/"+id+"/consumer-purchase", `{"qty":500,"channel":"retail"}`)
	require.Equal(t, 201, resp.StatusCode)
}

func TestCreateListingRejectsBadInput(t *testing.T) {
	app := setupApp()

	resp := doJSON(t, app, "POST", "/api/v1/listings", `{"crop":"","qty":500,"price":22}`)
	assert.Equal(t, 400, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/v1/listings", `{"crop":"Wheat","qty":-1,"price":22}`)
	assert.Equal(t, 400, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/v1/listings", `not json`)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestLookupOverHTTP(t *testing.T) {
	app := setupApp()

	resp := doJSON(t, app, "GET", "/api/v1/batches/B000000?role=consumer", "")
	assert.Equal(t, 404, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/v1/listings/seed", "")
	require.Equal(t, 201, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/listings?status=AVAILABLE", "")
	require.Equal(t, 200, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var listings []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &listings))
	require.Len(t, listings, 3)

	id := listings[0]["id"].(string)
	resp = doJSON(t, app, "GET", "/api/v1/batches/"+id+"?role=farmer", "")
	require.Equal(t, 200, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/batches/"+id+"/qr", "")
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

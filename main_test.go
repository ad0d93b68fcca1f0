package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

func testConfig(driver string) *config.Config {
	return &config.Config{
		Port:           "0",
		DBDriver:       driver,
		SQLitePath:     "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		CacheTTL:       time.Minute,
		RequestTimeout: 5 * time.Second,
		BodyLimitMB:    10,
		MaxImageMB:     2,
		CORSOrigins:    "*",
	}
}

func memoryDeps() Dependencies {
	return Dependencies{
		Users:    repositories.NewMemoryUserRepository(),
		Products: repositories.NewMemoryProductRepository(),
		Reviews:  repositories.NewMemoryReviewRepository(),
	}
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestHealth(t *testing.T) {
	app := NewApp(testConfig(config.DriverMemory), memoryDeps())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["store"])
	assert.Equal(t, false, body["events"])
}

func TestCORSHeaders(t *testing.T) {
	app := NewApp(testConfig(config.DriverMemory), memoryDeps())

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "http://shop.example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestEventsArePublished(t *testing.T) {
	deps := memoryDeps()
	publisher := &recordingPublisher{}
	deps.Events = publisher
	app := NewApp(testConfig(config.DriverMemory), deps)

	payload, _ := json.Marshal(map[string]interface{}{
		"name": "Kettle", "price": 25, "category": "home-appliance",
	})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{services.EventProductCreated}, publisher.keys)
}

func TestFormBodiesAreNotOverwrittenByLaterRequests(t *testing.T) {
	deps := memoryDeps()
	app := NewApp(testConfig(config.DriverMemory), deps)

	create := func(name, category string) {
		form := url.Values{"name": {name}, "price": {"10"}, "category": {category}}
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	first := strings.Repeat("A", 16)
	create(first, "smartphone")
	for i := 0; i < 20; i++ {
		create(strings.Repeat("Z", 16), "electronics")
	}

	products, err := deps.Products.List(context.Background(), repositories.ProductFilter{Category: "smartphone"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, first, products[0].Name)
	assert.Equal(t, "smartphone", products[0].Category)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products?category=smartphone", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var listed []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, first, listed[0]["name"])
}

func TestOpenStoreMemorySeedsCatalog(t *testing.T) {
	st, err := openStore(context.Background(), testConfig(config.DriverMemory))
	require.NoError(t, err)
	defer st.close()

	products, err := st.products.List(context.Background(), repositories.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 3)
	for _, p := range products {
		assert.NoError(t, p.Validate())
	}
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := testConfig(config.DriverSQLite)
	st, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	defer st.close()

	app := NewApp(cfg, Dependencies{Users: st.users, Products: st.products, Reviews: st.reviews})

	payload, _ := json.Marshal(map[string]interface{}{
		"email": "a@example.com", "username": "a", "password": "secret",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	users, err := st.users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@example.com", users[0].Email)
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), testConfig("cassandra"))
	assert.Error(t, err)
}

package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scentworks/perfumeshop/internal/service"
	"github.com/scentworks/perfumeshop/internal/store"
	"github.com/scentworks/perfumeshop/internal/transport/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newTestServer wires the full HTTP handler onto an in-memory store so the
// routes can be exercised end to end without a database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	deps := &Dependencies{
		CatalogService: service.NewService(store.NewInMemoryStore()),
		Logger:         slog.New(slog.DiscardHandler),
		Diag:           rest.DiagInfo{DatabaseName: "perfume_shop", DatabaseURLSet: true},
	}
	server := httptest.NewServer(SetupHttpHandler(deps))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func Test_App_CreateThenGetRoundTrip(t *testing.T) {
	// given
	server := newTestServer(t)

	// when: create with only the required fields
	resp, body := postJSON(t, server.URL+"/products", `{"title":"X","price":10}`)

	// then: the response is the new id in the store's native hex form
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var id string
	require.NoError(t, json.Unmarshal(body, &id))
	_, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err, "created id should be a well-formed 24-hex id")

	// and: reading it back yields the input plus catalog defaults
	resp, body = get(t, server.URL+"/products/"+id)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	expected := fmt.Sprintf(`{"id":%q,"title":"X","price":10,"category":"perfume","in_stock":true,"rating":4.5,"notes":[]}`, id)
	assert.JSONEq(t, expected, string(body))
}

func Test_App_GetMalformedID(t *testing.T) {
	// given
	server := newTestServer(t)

	// when
	resp, body := get(t, server.URL+"/products/abc")

	// then: a malformed id is a client error, never a 404
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Invalid product id: abc"}`, string(body))
}

func Test_App_GetUnknownID(t *testing.T) {
	// given
	server := newTestServer(t)
	unknown := primitive.NewObjectID().Hex()

	// when
	resp, _ := get(t, server.URL+"/products/"+unknown)

	// then: a well-formed id without a record is a 404
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_App_SeedTwice(t *testing.T) {
	// given
	server := newTestServer(t)

	// when: the first seed populates the empty store
	resp, body := postJSON(t, server.URL+"/seed", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","inserted":3,"count":3}`, string(body))

	// then: the second seed inserts nothing and reports the existing count
	resp, body = postJSON(t, server.URL+"/seed", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","message":"Products already exist","inserted":0,"count":3}`, string(body))

	// and: the catalog lists exactly the three samples
	resp, body = get(t, server.URL+"/products")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []service.ProductDto
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 3)
}

func Test_App_ListWithFilterAndLimit(t *testing.T) {
	// given
	server := newTestServer(t)
	resp, _ := postJSON(t, server.URL+"/seed", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// when: filter on a title substring, case-insensitively
	resp, body := get(t, server.URL+"/products?q=amber")

	// then
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []service.ProductDto
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Amber Leaf Elixir", list[0].Title)

	// when: a limit below the seeded count
	resp, body = get(t, server.URL+"/products?limit=2")

	// then
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 2)
}

func Test_App_RootAndDiagnostics(t *testing.T) {
	// given
	server := newTestServer(t)

	// when / then
	resp, body := get(t, server.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Perfume 3D Shop API is running"}`, string(body))

	resp, _ = get(t, server.URL+"/test")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prowebkong/woosync/pkg/errors"
)

func TestBasicAuthApplied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "ck_test", user)
		assert.Equal(t, "cs_test", pass)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(&BasicAuth{Key: "ck_test", Secret: "cs_test"})
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, nil))
}

func TestPostJSONSetsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "toners", body["name"])
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer server.Close()

	client := New(nil)
	resp, err := client.PostJSON(context.Background(), server.URL, map[string]string{"name": "toners"})
	require.NoError(t, err)

	var decoded struct {
		ID int `json:"id"`
	}
	require.NoError(t, DecodeResponse(resp, &decoded))
	assert.Equal(t, 7, decoded.ID)
}

func TestDecodeResponseNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"term_exists","data":{"resource_id":42}}`))
	}))
	defer server.Close()

	client := New(nil)
	resp, err := client.Get(context.Background(), server.URL+"/products/categories")
	require.NoError(t, err)

	err = DecodeResponse(resp, &struct{}{})
	require.Error(t, err)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "/products/categories", apiErr.Endpoint)
	assert.Contains(t, apiErr.Body, "term_exists", "raw body preserved for structured decoding")
}

func TestDecodeResponseMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := New(nil)
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)

	err = DecodeResponse(resp, &struct{}{})
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

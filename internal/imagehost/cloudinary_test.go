package imagehost

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	config "example.com/socialhub/internal/init"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	// hex SHA-1 of "public_id=abc123&timestamp=1700000000topsecret"
	got := Signature("abc123", "1700000000", "topsecret")
	assert.Equal(t, "d03b2ffc115f4a2aa229dff1298e7cefecbf6ac4", got)
}

func TestPublicIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v123/sample.jpg": "sample",
		"https://res.cloudinary.com/demo/image/upload/sample.png":      "sample",
		"https://res.cloudinary.com/demo/image/upload/noext":           "noext",
	}
	for url, want := range cases {
		assert.Equal(t, want, PublicIDFromURL(url), url)
	}
}

func testClient(baseURL string) *Cloudinary {
	return &Cloudinary{
		BaseURL:      baseURL,
		CloudName:    "demo",
		APIKey:       "key123",
		APISecret:    "topsecret",
		UploadPreset: "preset1",
		HTTPClient:   &http.Client{Timeout: time.Second},
	}
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "base64-payload", r.FormValue("file"))
		assert.Equal(t, "preset1", r.FormValue("upload_preset"))

		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/xyz.png",
		})
	}))
	defer srv.Close()

	url, err := testClient(srv.URL).Upload(t.Context(), "base64-payload")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/xyz.png", url)
}

func TestUpload_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid preset"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Upload(t.Context(), "base64-payload")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestDestroy(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/demo/image/destroy", r.URL.Path)
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded"))
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"public_id": r.FormValue("public_id"),
			"api_key":   r.FormValue("api_key"),
			"timestamp": r.FormValue("timestamp"),
			"signature": r.FormValue("signature"),
		}
		json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	require.NoError(t, client.Destroy(t.Context(), "abc123"))

	assert.Equal(t, "abc123", gotForm["public_id"])
	assert.Equal(t, "key123", gotForm["api_key"])
	assert.NotEmpty(t, gotForm["timestamp"])
	assert.Equal(t, Signature("abc123", gotForm["timestamp"], client.APISecret), gotForm["signature"])
}

func TestDestroy_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	err := testClient(srv.URL).Destroy(t.Context(), "abc123")
	require.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	c := New(&config.Config{
		CloudinaryCloudName:    "demo",
		CloudinaryAPIKey:       "key123",
		CloudinaryAPISecret:    "topsecret",
		CloudinaryUploadPreset: "preset1",
	})
	assert.Equal(t, defaultBaseURL, c.BaseURL)
	assert.Equal(t, "demo", c.CloudName)
	assert.NotNil(t, c.HTTPClient)
}

package registry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depvet/depvet/internal/adapters/registry"
	"github.com/depvet/depvet/internal/core/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *registry.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return registry.NewClientWithBase(srv.URL)
}

func packumentFor(versions ...string) string {
	doc := `{"versions":{`
	for i, v := range versions {
		if i > 0 {
			doc += ","
		}
		doc += `"` + v + `":{}`
	}
	return doc + `}}`
}

func TestResolveVersion_PicksHighestSatisfying(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leftpad-safe", r.URL.Path)
		_, _ = w.Write([]byte(packumentFor("1.0.0", "1.2.1", "2.0.0", "2.1.0", "3.0.0-beta.1")))
	})

	v, err := client.ResolveVersion(context.Background(), "npm:leftpad-safe@^2")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "2.1.0", v.String())
}

func TestResolveVersion_ScopedPackagePath(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/@nolyfill/side-channel", r.URL.Path)
		_, _ = w.Write([]byte(packumentFor("1.0.44")))
	})

	v, err := client.ResolveVersion(context.Background(), "npm:@nolyfill/side-channel@^1")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "1.0.44", v.String())
}

func TestResolveVersion_NothingSatisfies(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(packumentFor("1.0.0")))
	})

	v, err := client.ResolveVersion(context.Background(), "npm:leftpad-safe@^5")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestResolveVersion_NotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.ResolveVersion(context.Background(), "npm:leftpad-safe@^1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRegistryLookupFailed)
}

func TestResolveVersion_SpecWithoutRange(t *testing.T) {
	client := registry.NewClientWithBase("http://127.0.0.1:0")
	_, err := client.ResolveVersion(context.Background(), "left-pad")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRegistryLookupFailed)
}

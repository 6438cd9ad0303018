package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body><div id="coverpage-title"><h1>Paint</h1></div></body></html>`

func TestLoadURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/manual/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/manual/index.html", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p, err := Load(context.Background(), srv.Client(), srv.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, page, p.HTML)
	require.NotNil(t, p.Base)
	assert.Equal(t, "/manual/index.html", p.Base.Path)

	_, err = Load(context.Background(), srv.Client(), srv.URL+"/missing")
	assert.EqualError(t, err, "could not get manual: 404 Not Found")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	p, err := Load(context.Background(), nil, path)
	require.NoError(t, err)
	assert.Equal(t, page, p.HTML)
	assert.Nil(t, p.Base)

	_, err = Load(context.Background(), nil, filepath.Join(t.TempDir(), "nope.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/manual"))
	assert.True(t, IsURL("http://example.com"))
	assert.False(t, IsURL("manual/index.html"))
	assert.False(t, IsURL("ftp://example.com"))
}

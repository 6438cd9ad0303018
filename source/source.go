// Package source fetches legacy manual pages from disk or over HTTP.
package source

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// maxSize bounds the size of a manual page.
const maxSize = 32 << 20

// Page is a fetched manual.
type Page struct {
	HTML string
	// Base is the URL the page was served from after redirects, nil for
	// local files.
	Base *url.URL
}

// IsURL reports whether location is fetched over HTTP.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load reads the manual at location, a file path or an http(s) URL. A nil
// client uses http.DefaultClient.
func Load(ctx context.Context, client *http.Client, location string) (*Page, error) {
	if !IsURL(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, errors.Wrap(err, "could not read manual")
		}
		return &Page{HTML: string(data)}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid manual url %q", location)
	}
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not get manual")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, errors.Errorf("could not get manual: %s", res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxSize))
	if err != nil {
		return nil, errors.Wrap(err, "could not read manual")
	}
	return &Page{HTML: string(data), Base: res.Request.URL}, nil
}

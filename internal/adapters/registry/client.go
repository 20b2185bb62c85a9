// Package registry implements version lookups against the npm registry.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"

	"github.com/depvet/depvet/internal/core/domain"
)

const (
	defaultBaseURL    = "https://registry.npmjs.org"
	httpClientTimeout = 30 * time.Second
)

// Client implements ports.Registry against an npm-compatible registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client against the public npm registry.
func NewClient() *Client {
	return NewClientWithBase(defaultBaseURL)
}

// NewClientWithBase creates a Client against a custom registry base URL.
// Used for private registries and for tests.
func NewClientWithBase(base string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(base, "/"),
		httpClient: &http.Client{
			Timeout: httpClientTimeout,
		},
	}
}

// packument is the subset of the registry document we care about.
type packument struct {
	Versions map[string]struct{} `json:"versions"`
}

// ResolveVersion resolves a spec such as "npm:leftpad-safe@^1" or
// "leftpad-safe@2.0.0" to the highest published version satisfying its range.
// Returns nil without error when no published version satisfies it.
func (c *Client) ResolveVersion(ctx context.Context, spec string) (*semver.Version, error) {
	name, rangeStr, err := splitSpec(spec)
	if err != nil {
		return nil, err
	}
	constraint, err := semver.NewConstraint(rangeStr)
	if err != nil {
		lookupErr := errors.Join(domain.ErrRegistryLookupFailed, err)
		return nil, zerr.With(lookupErr, "spec", spec)
	}

	versions, err := c.fetchVersions(ctx, name)
	if err != nil {
		return nil, err
	}

	var best *semver.Version
	for _, raw := range versions {
		v, err := semver.StrictNewVersion(raw)
		if err != nil {
			continue
		}
		if !constraint.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	return best, nil
}

func (c *Client) fetchVersions(ctx context.Context, name string) ([]string, error) {
	// Scoped names keep their slash URL-encoded, matching registry convention.
	endpoint := c.baseURL + "/" + strings.ReplaceAll(url.PathEscape(name), "%2F", "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(domain.ErrRegistryLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		lookupErr := errors.Join(domain.ErrRegistryLookupFailed, err)
		return nil, zerr.With(lookupErr, "package", name)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		lookupErr := zerr.With(domain.ErrRegistryLookupFailed, "package", name)
		return nil, zerr.With(lookupErr, "status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, errors.Join(domain.ErrRegistryLookupFailed, err)
	}
	var doc packument
	if err := json.Unmarshal(body, &doc); err != nil {
		lookupErr := errors.Join(domain.ErrRegistryLookupFailed, err)
		return nil, zerr.With(lookupErr, "package", name)
	}

	versions := make([]string, 0, len(doc.Versions))
	for v := range doc.Versions {
		versions = append(versions, v)
	}
	return versions, nil
}

// splitSpec splits "npm:name@range" or "name@range" into name and range,
// accounting for the @ in scoped package names.
func splitSpec(spec string) (name, rangeStr string, err error) {
	s := strings.TrimPrefix(spec, domain.EcosystemPrefix)
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		lookupErr := zerr.With(domain.ErrRegistryLookupFailed, "spec", spec)
		return "", "", zerr.With(lookupErr, "reason", "spec has no version range")
	}
	return s[:at], s[at+1:], nil
}

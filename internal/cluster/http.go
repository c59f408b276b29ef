package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"konverge/internal/resource"
)

// HTTPClient talks to a cluster management API over plain HTTP/JSON.
// Resources live under
// /api/v1alpha1/namespaces/<namespace>/<kind-plural>/<name>, cluster-scoped
// kinds directly under /api/v1alpha1/<kind-plural>/<name>.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// kindPaths maps kinds to their URL path segment.
var kindPaths = map[resource.Kind]string{
	resource.KindPod:              "pods",
	resource.KindScaleGroup:       "scalegroups",
	resource.KindService:          "services",
	resource.KindNamespace:        "namespaces",
	resource.KindRoute:            "routes",
	resource.KindBuildConfig:      "buildconfigs",
	resource.KindDeploymentConfig: "deploymentconfigs",
	resource.KindImageStream:      "imagestreams",
	resource.KindOAuthClient:      "oauthclients",
	resource.KindTemplate:         "templates",
	resource.KindServiceAccount:   "serviceaccounts",
	resource.KindSecret:           "secrets",
}

// NewHTTPClient creates a client for the API at baseURL. The token, when
// non-empty, is sent as a bearer token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) resourceURL(kind resource.Kind, namespace, name string) (string, error) {
	segment, ok := kindPaths[kind]
	if !ok {
		return "", fmt.Errorf("unknown kind %q", kind)
	}
	parts := []string{c.baseURL, "api/v1alpha1"}
	if !kind.ClusterScoped() && namespace != "" {
		parts = append(parts, "namespaces", url.PathEscape(namespace))
	}
	parts = append(parts, segment)
	if name != "" {
		parts = append(parts, url.PathEscape(name))
	}
	return strings.Join(parts, "/"), nil
}

func (c *HTTPClient) do(ctx context.Context, method, u string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}

func (c *HTTPClient) roundTrip(ctx context.Context, method string, kind resource.Kind, namespace, name string, r resource.Resource) (resource.Resource, error) {
	u, err := c.resourceURL(kind, namespace, name)
	if err != nil {
		return nil, err
	}

	var body []byte
	if r != nil {
		body, err = json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s %q: %w", kind, name, err)
		}
	}

	data, status, err := c.do(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	case status >= 300:
		return nil, fmt.Errorf("%s %s: server returned %d: %s", method, u, status, strings.TrimSpace(string(data)))
	}
	if len(data) == 0 {
		return nil, nil
	}

	entity, err := resource.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server response: %w", err)
	}
	res, ok := entity.(resource.Resource)
	if !ok {
		return nil, fmt.Errorf("server returned a list where a %s was expected", kind)
	}
	return res, nil
}

// Get implements Client.
func (c *HTTPClient) Get(ctx context.Context, kind resource.Kind, namespace, name string) (resource.Resource, error) {
	return c.roundTrip(ctx, http.MethodGet, kind, namespace, name, nil)
}

// Create implements Client.
func (c *HTTPClient) Create(ctx context.Context, namespace string, r resource.Resource) (resource.Resource, error) {
	return c.roundTrip(ctx, http.MethodPost, r.GetKind(), namespace, "", r)
}

// Replace implements Client.
func (c *HTTPClient) Replace(ctx context.Context, namespace, name string, r resource.Resource) (resource.Resource, error) {
	return c.roundTrip(ctx, http.MethodPut, r.GetKind(), namespace, name, r)
}

// Delete implements Client.
func (c *HTTPClient) Delete(ctx context.Context, kind resource.Kind, namespace, name string) error {
	_, err := c.roundTrip(ctx, http.MethodDelete, kind, namespace, name, nil)
	return err
}

// DeleteManagedPods implements Client.
func (c *HTTPClient) DeleteManagedPods(ctx context.Context, namespace, scaleGroup string) error {
	u, err := c.resourceURL(resource.KindScaleGroup, namespace, scaleGroup)
	if err != nil {
		return err
	}
	data, status, err := c.do(ctx, http.MethodDelete, u+"/pods", nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("DELETE %s/pods: server returned %d: %s", u, status, strings.TrimSpace(string(data)))
	}
	return nil
}

// ProcessTemplate implements TemplateProcessor by posting the template to
// the server's process endpoint.
func (c *HTTPClient) ProcessTemplate(ctx context.Context, namespace string, t *resource.Template) (*resource.List, error) {
	u, err := c.resourceURL(resource.KindTemplate, namespace, t.GetName())
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize template %q: %w", t.GetName(), err)
	}

	data, status, err := c.do(ctx, http.MethodPost, u+"/process", body)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, fmt.Errorf("POST %s/process: server returned %d: %s", u, status, strings.TrimSpace(string(data)))
	}

	entity, err := resource.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse processed template: %w", err)
	}
	list, ok := entity.(*resource.List)
	if !ok {
		list = resource.NewList(entity)
	}
	return list, nil
}

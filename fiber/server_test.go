package fiber_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/pagemeta"
	pmfiber "github.com/fwojciec/pagemeta/fiber"
	"github.com/fwojciec/pagemeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInspector struct {
	inspectFn     func(ctx context.Context, url string) (*pagemeta.Inspection, error)
	inspectHTMLFn func(ctx context.Context, pageURL, html string) (*pagemeta.Inspection, error)
}

func (f *fakeInspector) Inspect(ctx context.Context, url string) (*pagemeta.Inspection, error) {
	return f.inspectFn(ctx, url)
}

func (f *fakeInspector) InspectHTML(ctx context.Context, pageURL, html string) (*pagemeta.Inspection, error) {
	return f.inspectHTMLFn(ctx, pageURL, html)
}

func ptr(s string) *string { return &s }

func do(t *testing.T, srv *pmfiber.Server, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeError(t *testing.T, body []byte) pmfiber.ErrorResponse {
	t.Helper()
	var got pmfiber.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &got))
	return got
}

func TestServer_Healthz(t *testing.T) {
	t.Parallel()

	srv := pmfiber.NewServer(&fakeInspector{}, nil, nil)
	resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestServer_Inspect(t *testing.T) {
	t.Parallel()

	t.Run("returns the inspection as json", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		inspector := &fakeInspector{
			inspectFn: func(ctx context.Context, url string) (*pagemeta.Inspection, error) {
				gotURL = url
				return &pagemeta.Inspection{
					URL:         url,
					Title:       ptr("Pricing | Acme"),
					BestTitle:   ptr("Pricing | Acme"),
					Description: "Plans for teams",
				}, nil
			},
		}
		srv := pmfiber.NewServer(inspector, nil, nil)

		resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/inspect?url=https://acme.test/pricing", nil))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "https://acme.test/pricing", gotURL)
		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Pricing | Acme", got["title"])
		assert.Nil(t, got["siteName"])
		assert.Contains(t, got, "siteName")
		assert.Equal(t, "Plans for teams", got["description"])
	})

	t.Run("rejects a missing url", func(t *testing.T) {
		t.Parallel()

		srv := pmfiber.NewServer(&fakeInspector{}, nil, nil)
		resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/inspect", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, pagemeta.EINVALID, decodeError(t, body).Code)
	})

	t.Run("maps invalid and not found errors", func(t *testing.T) {
		t.Parallel()

		inspector := &fakeInspector{
			inspectFn: func(ctx context.Context, url string) (*pagemeta.Inspection, error) {
				if strings.Contains(url, "private") {
					return nil, pagemeta.Errorf(pagemeta.EINVALID, "disallowed by robots.txt: %s", url)
				}
				return nil, pagemeta.Errorf(pagemeta.ENOTFOUND, "HTTP 404 for %s", url)
			},
		}
		srv := pmfiber.NewServer(inspector, nil, nil)

		resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/inspect?url=https://acme.test/private", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, body).Error, "robots.txt")

		resp, _ = do(t, srv, httptest.NewRequest(http.MethodGet, "/inspect?url=https://acme.test/gone", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("reports fetch failures as bad gateway without the cause", func(t *testing.T) {
		t.Parallel()

		inspector := &fakeInspector{
			inspectFn: func(ctx context.Context, url string) (*pagemeta.Inspection, error) {
				return nil, errors.New("connection refused")
			},
		}
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		srv := pmfiber.NewServer(inspector, nil, logger)

		resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/inspect?url=https://acme.test/", nil))

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		got := decodeError(t, body)
		assert.Equal(t, pagemeta.EINTERNAL, got.Code)
		assert.Equal(t, "Could not fetch page.", got.Error)
		assert.NotContains(t, string(body), "connection refused")
		assert.Contains(t, buf.String(), "upstream fetch failed")
		assert.Contains(t, buf.String(), `err="connection refused"`)
	})
}

func TestServer_InspectHTML(t *testing.T) {
	t.Parallel()

	t.Run("inspects posted markup", func(t *testing.T) {
		t.Parallel()

		var gotURL, gotHTML string
		inspector := &fakeInspector{
			inspectHTMLFn: func(ctx context.Context, pageURL, html string) (*pagemeta.Inspection, error) {
				gotURL, gotHTML = pageURL, html
				return &pagemeta.Inspection{URL: pageURL, Title: ptr("Hello")}, nil
			},
		}
		srv := pmfiber.NewServer(inspector, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/inspect",
			strings.NewReader(`{"url":"https://acme.test/","html":"<title>Hello</title>"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, body := do(t, srv, req)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "https://acme.test/", gotURL)
		assert.Equal(t, "<title>Hello</title>", gotHTML)
		assert.Contains(t, string(body), `"title":"Hello"`)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		t.Parallel()

		srv := pmfiber.NewServer(&fakeInspector{}, nil, nil)
		req := httptest.NewRequest(http.MethodPost, "/inspect", strings.NewReader(`{"url":"https://acme.test/"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := do(t, srv, req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_Inspections(t *testing.T) {
	t.Parallel()

	t.Run("lists inspections with filter", func(t *testing.T) {
		t.Parallel()

		var got pagemeta.InspectionFilter
		inspections := &mock.InspectionService{
			FindInspectionsFn: func(ctx context.Context, filter pagemeta.InspectionFilter) ([]*pagemeta.Inspection, error) {
				got = filter
				return []*pagemeta.Inspection{{ID: "a"}, {ID: "b"}}, nil
			},
		}
		srv := pmfiber.NewServer(&fakeInspector{}, inspections, nil)

		resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/inspections?url=HTTPS://Acme.test&limit=5&offset=10", nil))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, 10, got.Offset)
		require.NotNil(t, got.URL)
		assert.Equal(t, "https://acme.test/", *got.URL)
		var list []pagemeta.Inspection
		require.NoError(t, json.Unmarshal(body, &list))
		assert.Len(t, list, 2)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		t.Parallel()

		srv := pmfiber.NewServer(&fakeInspector{}, &mock.InspectionService{}, nil)
		resp, _ := do(t, srv, httptest.NewRequest(http.MethodGet, "/inspections?limit=-1", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("returns one inspection", func(t *testing.T) {
		t.Parallel()

		inspections := &mock.InspectionService{
			FindInspectionByIDFn: func(ctx context.Context, id string) (*pagemeta.Inspection, error) {
				return &pagemeta.Inspection{ID: id, URL: "https://acme.test/"}, nil
			},
		}
		srv := pmfiber.NewServer(&fakeInspector{}, inspections, nil)

		resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/inspections/abc", nil))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), `"id":"abc"`)
	})

	t.Run("returns 404 for a missing inspection", func(t *testing.T) {
		t.Parallel()

		inspections := &mock.InspectionService{
			FindInspectionByIDFn: func(ctx context.Context, id string) (*pagemeta.Inspection, error) {
				return nil, pagemeta.Errorf(pagemeta.ENOTFOUND, "inspection not found")
			},
		}
		srv := pmfiber.NewServer(&fakeInspector{}, inspections, nil)

		resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/inspections/missing", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, pagemeta.ENOTFOUND, decodeError(t, body).Code)
	})

	t.Run("deletes an inspection", func(t *testing.T) {
		t.Parallel()

		var deleted string
		inspections := &mock.InspectionService{
			DeleteInspectionFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		srv := pmfiber.NewServer(&fakeInspector{}, inspections, nil)

		resp, _ := do(t, srv, httptest.NewRequest(http.MethodDelete, "/inspections/abc", nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "abc", deleted)
	})

	t.Run("hides storage errors", func(t *testing.T) {
		t.Parallel()

		inspections := &mock.InspectionService{
			DeleteInspectionFn: func(ctx context.Context, id string) error {
				return errors.New("database is locked")
			},
		}
		srv := pmfiber.NewServer(&fakeInspector{}, inspections, nil)

		resp, body := do(t, srv, httptest.NewRequest(http.MethodDelete, "/inspections/abc", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, string(body), "locked")
	})

	t.Run("routes are absent without storage", func(t *testing.T) {
		t.Parallel()

		srv := pmfiber.NewServer(&fakeInspector{}, nil, nil)
		resp, _ := do(t, srv, httptest.NewRequest(http.MethodGet, "/inspections", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_RequestLogging(t *testing.T) {
	t.Parallel()

	t.Run("echoes the request id and logs the request", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		srv := pmfiber.NewServer(&fakeInspector{}, nil, logger)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(pmfiber.RequestIDHeader, "req-42")
		resp, _ := do(t, srv, req)

		assert.Equal(t, "req-42", resp.Header.Get(pmfiber.RequestIDHeader))
		output := buf.String()
		assert.Contains(t, output, "request_id=req-42")
		assert.Contains(t, output, "path=/healthz")
		assert.Contains(t, output, "status=200")
	})

	t.Run("generates a request id when none is sent", func(t *testing.T) {
		t.Parallel()

		srv := pmfiber.NewServer(&fakeInspector{}, nil, nil)
		resp, _ := do(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Len(t, resp.Header.Get(pmfiber.RequestIDHeader), 36)
	})

	t.Run("logs the final status of failed requests", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		srv := pmfiber.NewServer(&fakeInspector{}, nil, logger)

		resp, _ := do(t, srv, httptest.NewRequest(http.MethodGet, "/inspect", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, buf.String(), "status=400")
	})
}

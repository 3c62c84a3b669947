package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/findyi/opensearch-go/internal/errors"
)

func TestAppOperations_Params(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cases := []struct {
		name   string
		call   func(*fakeCaller) error
		path   string
		method string
		params map[string]string
	}{
		{
			name: "create",
			call: func(c *fakeCaller) error { _, err := CreateApp(ctx, c, "app", "builtin_novel"); return err },
			path: "/index/app", method: http.MethodPost,
			params: map[string]string{"action": "create", "template": "builtin_novel"},
		},
		{
			name: "delete",
			call: func(c *fakeCaller) error { _, err := DeleteApp(ctx, c, "app"); return err },
			path: "/index/app", method: http.MethodPost,
			params: map[string]string{"action": "delete"},
		},
		{
			name: "status",
			call: func(c *fakeCaller) error { _, err := AppInfo(ctx, c, "app"); return err },
			path: "/index/app", method: http.MethodPost,
			params: map[string]string{"action": "status"},
		},
		{
			name: "list",
			call: func(c *fakeCaller) error { _, err := ListApps(ctx, c, 2, 20); return err },
			path: "/index", method: http.MethodPost,
			params: map[string]string{"page": "2", "page_size": "20"},
		},
		{
			name: "reindex",
			call: func(c *fakeCaller) error { _, err := Reindex(ctx, c, "app"); return err },
			path: "/index/app", method: http.MethodGet,
			params: map[string]string{"action": "createtask"},
		},
		{
			name: "reindex import",
			call: func(c *fakeCaller) error {
				_, err := ReindexImport(ctx, c, "app", []string{"main", "ext"})
				return err
			},
			path: "/index/app", method: http.MethodGet,
			params: map[string]string{"action": "createtask", "operate": "import", "table_name": "main,ext"},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := &fakeCaller{}
			if err := tc.call(c); err != nil {
				t.Fatalf("call: %v", err)
			}
			got := c.last(t)
			if got.path != tc.path || got.method != tc.method {
				t.Fatalf("got %s %s, want %s %s", got.method, got.path, tc.method, tc.path)
			}
			if len(got.params) != len(tc.params) {
				t.Fatalf("params: got %v want %v", got.params, tc.params)
			}
			for k, v := range tc.params {
				if got.params[k] != v {
					t.Fatalf("%s: got %q want %q", k, got.params[k], v)
				}
			}
		})
	}
}

func TestAppOperations_ValidationNeverCalls(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := &fakeCaller{}
	checks := []error{
		func() error { _, err := CreateApp(ctx, c, "", "tpl"); return err }(),
		func() error { _, err := CreateApp(ctx, c, "app", ""); return err }(),
		func() error { _, err := DeleteApp(ctx, c, ""); return err }(),
		func() error { _, err := AppInfo(ctx, c, ""); return err }(),
		func() error { _, err := ListApps(ctx, c, 0, 10); return err }(),
		func() error { _, err := ListApps(ctx, c, 1, 0); return err }(),
		func() error { _, err := Reindex(ctx, c, ""); return err }(),
		func() error { _, err := ReindexImport(ctx, c, "app", nil); return err }(),
	}
	for i, err := range checks {
		if !stderrors.Is(err, errors.ErrArgument) {
			t.Fatalf("check %d: expected argument error, got %v", i, err)
		}
	}
	if c.count() != 0 {
		t.Fatalf("validation failures reached the caller %d times", c.count())
	}
}

func TestAppInfo_ReturnsResultAndAPIError(t *testing.T) {
	t.Parallel()
	c := &fakeCaller{body: `{"status":"OK","result":{"id":"100","name":"app"}}`}
	raw, err := AppInfo(context.Background(), c, "app")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if string(raw) != `{"id":"100","name":"app"}` {
		t.Fatalf("raw result: %s", raw)
	}

	c = &fakeCaller{body: `{"status":"FAIL","errors":[{"code":"2001","message":"missing"}]}`}
	_, err = AppInfo(context.Background(), c, "app")
	var apiErr *errors.APIError
	if !stderrors.As(err, &apiErr) || apiErr.Code != "2001" {
		t.Fatalf("expected APIError 2001, got %v", err)
	}
}

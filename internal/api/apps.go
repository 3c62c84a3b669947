package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/findyi/opensearch-go/internal/errors"
	"github.com/findyi/opensearch-go/internal/types"
)

// Resource path prefixes.
const (
	pathApp      = "/index"
	pathDocument = "/index/doc"
	pathErrorLog = "/index/error"
	pathSearch   = "/search"
	pathSuggest  = "/suggest"
)

// CreateApp creates application app from a template.
func CreateApp(ctx context.Context, c types.Caller, app, template string) (json.RawMessage, error) {
	if err := types.ValidateAppName(app); err != nil {
		return nil, err
	}
	if template == "" {
		return nil, errors.Argumentf("template is required")
	}
	return callRaw(ctx, c, resourcePath(pathApp, app), http.MethodPost, map[string]string{
		"action":   "create",
		"template": template,
	})
}

// DeleteApp deletes application app.
func DeleteApp(ctx context.Context, c types.Caller, app string) (json.RawMessage, error) {
	if err := types.ValidateAppName(app); err != nil {
		return nil, err
	}
	return callRaw(ctx, c, resourcePath(pathApp, app), http.MethodPost, map[string]string{"action": "delete"})
}

// AppInfo returns the status of application app.
func AppInfo(ctx context.Context, c types.Caller, app string) (json.RawMessage, error) {
	if err := types.ValidateAppName(app); err != nil {
		return nil, err
	}
	return callRaw(ctx, c, resourcePath(pathApp, app), http.MethodPost, map[string]string{"action": "status"})
}

// ListApps returns one page of the account's applications.
func ListApps(ctx context.Context, c types.Caller, page, pageSize int) (json.RawMessage, error) {
	if err := types.ValidatePage(page, pageSize); err != nil {
		return nil, err
	}
	return callRaw(ctx, c, pathApp, http.MethodPost, map[string]string{
		"page":      strconv.Itoa(page),
		"page_size": strconv.Itoa(pageSize),
	})
}

// Reindex starts a rebuild task for application app.
func Reindex(ctx context.Context, c types.Caller, app string) (json.RawMessage, error) {
	if err := types.ValidateAppName(app); err != nil {
		return nil, err
	}
	return callRaw(ctx, c, resourcePath(pathApp, app), http.MethodGet, map[string]string{"action": "createtask"})
}

// ReindexImport starts a rebuild task that imports tables from their data
// sources.
func ReindexImport(ctx context.Context, c types.Caller, app string, tables []string) (json.RawMessage, error) {
	if err := types.ValidateAppName(app); err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, errors.Argumentf("at least one table name is required")
	}
	return callRaw(ctx, c, resourcePath(pathApp, app), http.MethodGet, map[string]string{
		"action":     "createtask",
		"operate":    "import",
		"table_name": strings.Join(tables, ","),
	})
}

// callRaw performs the call and returns the undecoded result.
func callRaw(ctx context.Context, c types.Caller, path, method string, params map[string]string) (json.RawMessage, error) {
	env, err := c.Call(ctx, path, method, params)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := env.DecodeResult(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

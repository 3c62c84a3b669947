package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/findyi/opensearch-go/internal/errors"
	"github.com/findyi/opensearch-go/internal/types"
	"github.com/findyi/opensearch-go/query"
)

// Search runs q against app (or opts.IndexNames) and decodes the result.
// The query is built before any network call, so query and argument errors
// never reach the wire.
func Search(ctx context.Context, c types.Caller, app string, q query.Builder, opts types.SearchOptions) (*types.SearchResult, error) {
	raw, err := SearchRaw(ctx, c, app, q, opts)
	if err != nil {
		return nil, err
	}
	var sr types.SearchResult
	if err := json.Unmarshal(raw, &sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

// SearchRaw is Search returning the undecoded result, for formats other
// than json.
func SearchRaw(ctx context.Context, c types.Caller, app string, q query.Builder, opts types.SearchOptions) (json.RawMessage, error) {
	params, err := searchParams(app, q, opts)
	if err != nil {
		return nil, err
	}
	return callRaw(ctx, c, pathSearch, http.MethodGet, params)
}

func searchParams(app string, q query.Builder, opts types.SearchOptions) (map[string]string, error) {
	if q == nil {
		return nil, errors.Argumentf("query is required")
	}
	if opts.Disable != "" && opts.Disable != "qp" {
		return nil, errors.Argumentf("parameter 'disable' only support 'qp' now.")
	}
	indexName := app
	if len(opts.IndexNames) > 0 {
		indexName = strings.Join(opts.IndexNames, ";")
	}
	if indexName == "" {
		return nil, errors.Argumentf("app name or index names required")
	}
	if opts.Summary != nil && opts.Summary.Field == "" {
		return nil, errors.Argumentf("summary field is required")
	}

	stmt, err := q.Build()
	if err != nil {
		return nil, err
	}

	params := map[string]string{
		"query":      stmt,
		"index_name": indexName,
	}
	setIfNotEmpty(params, "fetch_fields", strings.Join(opts.FetchFields, ";"))
	setIfNotEmpty(params, "qp", opts.QP)
	setIfNotEmpty(params, "disable", opts.Disable)
	setIfNotEmpty(params, "first_formula_name", opts.FirstFormulaName)
	setIfNotEmpty(params, "formula_name", opts.FormulaName)
	if opts.Summary != nil {
		params["summary"] = opts.Summary.String()
	}
	return params, nil
}

// Suggest returns query suggestions for text from suggestName of app.
func Suggest(ctx context.Context, c types.Caller, app, text, suggestName string, opts types.SuggestOptions) (*types.SuggestResult, error) {
	if err := types.ValidateAppName(app); err != nil {
		return nil, err
	}
	if suggestName == "" {
		return nil, errors.Argumentf("suggest_name is required")
	}
	if opts.Hint < 0 {
		return nil, errors.Argumentf("hint must be positive, got %d", opts.Hint)
	}
	params := map[string]string{
		"query":        text,
		"index_name":   app,
		"suggest_name": suggestName,
	}
	if opts.Hint > 0 {
		params["hint"] = strconv.Itoa(opts.Hint)
	}

	env, err := c.Call(ctx, pathSuggest, http.MethodGet, params)
	if err != nil {
		return nil, err
	}
	var sr types.SuggestResult
	if err := env.DecodeResult(&sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

// ErrorLog returns one page of the error log of app.
func ErrorLog(ctx context.Context, c types.Caller, app string, req types.ErrorLogRequest) (json.RawMessage, error) {
	if err := types.ValidateAppName(app); err != nil {
		return nil, err
	}
	if err := types.ValidatePage(req.Page, req.PageSize); err != nil {
		return nil, err
	}
	params := map[string]string{
		"page":      strconv.Itoa(req.Page),
		"page_size": strconv.Itoa(req.PageSize),
	}
	switch strings.ToUpper(req.SortMode) {
	case "":
	case "ASC", "DESC":
		params["sort_mode"] = strings.ToUpper(req.SortMode)
	default:
		return nil, errors.Argumentf("sort_mode must be ASC or DESC, got %q", req.SortMode)
	}
	return callRaw(ctx, c, resourcePath(pathErrorLog, app), http.MethodPost, params)
}

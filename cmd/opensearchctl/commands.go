package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	opensearch "github.com/findyi/opensearch-go"
	"github.com/findyi/opensearch-go/internal/signature"
	"github.com/findyi/opensearch-go/query"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCreateAppCmd() *cobra.Command {
	var app, template string

	cmd := &cobra.Command{
		Use:   "create-app",
		Short: "Create an application from a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Debug().Str("app", app).Str("template", template).Msg("creating app")
			return runRaw(cmd, "create-app", func(ctx context.Context, c *opensearch.Client) (json.RawMessage, error) {
				return c.App(app).Create(ctx, template)
			})
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "Application name (required)")
	cmd.Flags().StringVar(&template, "template", "", "Template name (required)")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func newDeleteAppCmd() *cobra.Command {
	var app string

	cmd := &cobra.Command{
		Use:   "delete-app",
		Short: "Delete an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRaw(cmd, "delete-app", func(ctx context.Context, c *opensearch.Client) (json.RawMessage, error) {
				return c.App(app).Delete(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "Application name (required)")
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

func newAppInfoCmd() *cobra.Command {
	var app string

	cmd := &cobra.Command{
		Use:   "app-info",
		Short: "Show application status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRaw(cmd, "app-info", func(ctx context.Context, c *opensearch.Client) (json.RawMessage, error) {
				return c.App(app).Info(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "Application name (required)")
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

func newListAppsCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list-apps",
		Short: "List applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRaw(cmd, "list-apps", func(ctx context.Context, c *opensearch.Client) (json.RawMessage, error) {
				return c.ListApps(ctx, page, pageSize)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "Page size")
	return cmd
}

func newReindexCmd() *cobra.Command {
	var app, tables string

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild an application index, optionally re-importing tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRaw(cmd, "reindex", func(ctx context.Context, c *opensearch.Client) (json.RawMessage, error) {
				if names := splitList(tables); len(names) > 0 {
					return c.App(app).ReindexImport(ctx, names...)
				}
				return c.App(app).Reindex(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "Application name (required)")
	cmd.Flags().StringVar(&tables, "import-tables", "", "Comma separated tables to re-import (optional)")
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

func newPushDocsCmd() *cobra.Command {
	var app, table, file string
	var async bool

	cmd := &cobra.Command{
		Use:   "push-docs",
		Short: "Push document operations read from a JSON array of {cmd, timestamp, fields}",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if file == "-" {
				data, err = readAll(cmd)
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("read items: %w", err)
			}
			var items []opensearch.DocumentItem
			if err := json.Unmarshal(data, &items); err != nil {
				return fmt.Errorf("parse items: %w", err)
			}

			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }() // Ensure queues are drained before returning

			docs := c.Documents(app, table)
			for _, it := range items {
				var opts []opensearch.ItemOption
				if it.Timestamp != nil {
					opts = append(opts, opensearch.WithTimestamp(*it.Timestamp))
				}
				switch it.Cmd {
				case opensearch.CmdAdd:
					err = docs.Add(it.Fields, opts...)
				case opensearch.CmdUpdate:
					err = docs.Update(it.Fields, opts...)
				case opensearch.CmdDelete:
					err = docs.Delete(it.Fields, opts...)
				default:
					err = fmt.Errorf("unknown cmd %q", it.Cmd)
				}
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			start := time.Now()
			if async {
				ack, err := docs.PushAsync(ctx)
				if err != nil {
					return err
				}
				if err := c.AwaitConsistency(ctx, app, table); err != nil {
					return err
				}
				log.Debug().Str("app", app).Str("table", table).Int("items", ack.Items).
					Dur("elapsed", time.Since(start)).Msg("async push flushed")
				return printJSON(cmd.OutOrStdout(), ack)
			}
			res, err := docs.Push(ctx)
			if err != nil {
				log.Error().Err(err).Str("app", app).Str("table", table).Msg("push failed")
				return err
			}
			log.Debug().Str("app", app).Str("table", table).Dur("elapsed", time.Since(start)).Msg("push completed")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(res))
			return err
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "Application name (required)")
	cmd.Flags().StringVar(&table, "table", "", "Table name (required)")
	cmd.Flags().StringVar(&file, "file", "-", "Items file, - for stdin")
	cmd.Flags().BoolVar(&async, "async", false, "Push through the background executor and wait for it")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var app, q, filter, sort, indexNames, fetchFields, qp, disable, summaryField string
	var start, hint int
	var raw bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			sq := query.NewSimpleQuery().Query(q).ConfigBy(query.WithStart(start), query.WithHint(hint))
			if filter != "" {
				sq.Filter(filter)
			}
			if sort != "" {
				sq.Sort(sort)
			}
			opts := opensearch.SearchOptions{
				IndexNames:  splitList(indexNames),
				FetchFields: splitList(fetchFields),
				QP:          qp,
				Disable:     disable,
			}
			if summaryField != "" {
				opts.Summary = &opensearch.SearchSummary{Field: summaryField}
			}

			if raw {
				return runRaw(cmd, "search", func(ctx context.Context, c *opensearch.Client) (json.RawMessage, error) {
					return c.SearchRaw(ctx, app, sq, opts)
				})
			}

			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			res, err := c.Search(ctx, app, sq, opts)
			if err != nil {
				return err
			}
			log.Debug().Int("total", res.Total).Float64("searchtime", res.SearchTime).Msg("search completed")
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&app, "app", "", "Application name (required)")
	f.StringVar(&q, "query", "", "Query clause, e.g. default:'kobe' (required)")
	f.StringVar(&filter, "filter", "", "Filter clause")
	f.StringVar(&sort, "sort", "", "Sort clause, e.g. -hit;+id")
	f.StringVar(&indexNames, "index-names", "", "Comma separated applications to search instead of --app")
	f.StringVar(&fetchFields, "fetch-fields", "", "Comma separated fields to return")
	f.StringVar(&qp, "qp", "", "Query analysis rule")
	f.StringVar(&disable, "disable", "", "Disable a feature (only qp)")
	f.StringVar(&summaryField, "summary-field", "", "Field to build a summary for")
	f.IntVar(&start, "start", 0, "Offset of the first result")
	f.IntVar(&hint, "hint", 10, "Number of results")
	f.BoolVar(&raw, "raw", false, "Print the result undecoded")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func newSuggestCmd() *cobra.Command {
	var app, text, name string
	var hint int

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Get query suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			res, err := c.Suggest(ctx, app, text, name, opensearch.SuggestOptions{Hint: hint})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "Application name (required)")
	cmd.Flags().StringVar(&text, "text", "", "Text to complete (required)")
	cmd.Flags().StringVar(&name, "name", "", "Suggestion rule name (required)")
	cmd.Flags().IntVar(&hint, "hint", 0, "Number of suggestions (optional)")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newErrorLogCmd() *cobra.Command {
	var app, sortMode string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "error-log",
		Short: "Show the application error log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRaw(cmd, "error-log", func(ctx context.Context, c *opensearch.Client) (json.RawMessage, error) {
				return c.ErrorLog(ctx, app, opensearch.ErrorLogRequest{Page: page, PageSize: pageSize, SortMode: sortMode})
			})
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "Application name (required)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "Page size")
	cmd.Flags().StringVar(&sortMode, "sort-mode", "DESC", "ASC or DESC")
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

// newSignCmd computes a signature offline, for comparing against a
// rejected request.
func newSignCmd() *cobra.Command {
	var method, key string

	cmd := &cobra.Command{
		Use:   "sign key=value...",
		Short: "Compute the request signature of a parameter set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := make(map[string]string, len(args))
			for _, a := range args {
				k, v, ok := cutParam(a)
				if !ok {
					return fmt.Errorf("expected key=value, got %q", a)
				}
				params[k] = v
			}
			if key == "" {
				key = secret
			}
			sig, err := signature.Sign(key, method, params)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sig)
			return err
		},
	}

	cmd.Flags().StringVar(&method, "method", "POST", "HTTP method")
	cmd.Flags().StringVar(&key, "secret", "", "Access key secret (defaults to --access-key-secret)")
	return cmd
}

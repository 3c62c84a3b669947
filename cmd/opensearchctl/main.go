package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	opensearch "github.com/findyi/opensearch-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	apiHost     string
	accessKeyID string
	secret      string
	profilePath string
	transport   string
	timeout     time.Duration
	debug       bool
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "opensearchctl",
		Short:         "Manage applications, documents and searches of the hosted search service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&apiHost, "api-host", "", "API endpoint (overrides OPENSEARCH_API_HOST and profile)")
	pf.StringVar(&accessKeyID, "access-key-id", "", "Access key id")
	pf.StringVar(&secret, "access-key-secret", "", "Access key secret")
	pf.StringVar(&profilePath, "profile", "", "YAML profile with api_host, access_key_id, access_key_secret, timeout, transport")
	pf.StringVar(&transport, "transport", "", "HTTP transport: nethttp or resty")
	pf.DurationVar(&timeout, "timeout", 0, "HTTP timeout")
	pf.BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	// Sub-commands
	rootCmd.AddCommand(newCreateAppCmd())
	rootCmd.AddCommand(newDeleteAppCmd())
	rootCmd.AddCommand(newAppInfoCmd())
	rootCmd.AddCommand(newListAppsCmd())
	rootCmd.AddCommand(newReindexCmd())
	rootCmd.AddCommand(newPushDocsCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newErrorLogCmd())
	rootCmd.AddCommand(newSignCmd())

	return rootCmd
}

// newClient resolves configuration (env, then profile, then flags) and
// builds a client.
func newClient(cmd *cobra.Command) (*opensearch.Client, error) {
	cfg, err := opensearch.LoadConfig()
	if err != nil {
		return nil, err
	}
	if profilePath != "" {
		if err := loadProfile(profilePath, cfg); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("api-host") {
		cfg.APIHost = apiHost
	}
	if flags.Changed("access-key-id") {
		cfg.AccessKeyID = accessKeyID
	}
	if flags.Changed("access-key-secret") {
		cfg.AccessKeySecret = secret
	}
	if flags.Changed("transport") {
		cfg.Transport = transport
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if debug {
		cfg.Debug = true
	}

	log.Debug().
		Str("api_host", cfg.APIHost).
		Str("access_key_id", cfg.AccessKeyID).
		Str("transport", cfg.Transport).
		Dur("timeout", cfg.Timeout).
		Msg("client configuration resolved")

	return opensearch.NewFromConfig(cfg)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// runRaw is shared by the commands that print an undecoded result.
func runRaw(cmd *cobra.Command, op string, fn func(context.Context, *opensearch.Client) (json.RawMessage, error)) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	start := time.Now()
	res, err := fn(ctx, c)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("op", op).Dur("elapsed", elapsed).Msg("request failed")
		return err
	}
	log.Debug().Str("op", op).Dur("elapsed", elapsed).Msg("request completed")

	var v any
	if len(res) == 0 || json.Unmarshal(res, &v) != nil {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(res))
		return err
	}
	return printJSON(cmd.OutOrStdout(), v)
}

func readAll(cmd *cobra.Command) ([]byte, error) {
	return io.ReadAll(cmd.InOrStdin())
}

func cutParam(s string) (string, string, bool) {
	return strings.Cut(s, "=")
}

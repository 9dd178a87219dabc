package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Sideko-Inc/insurance-api-demo/client"
	"github.com/Sideko-Inc/insurance-api-demo/devmode"
)

var apiURL string
var apiKey string
var debug bool

const requestTimeout = 15 * time.Second

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
		Use:           "insurancectl",
		Short:         "insurancectl talks to the insurance API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("INSURANCE_API_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", getEnv("INSURANCE_API_URL", "http://localhost:3000"), "Base URL of the insurance API")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", getEnv("INSURANCE_API_KEY", devmode.DemoAPIKey), "API key sent as x-api-key")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newClaimDecisionCmd("approve-claim", "Approve a claim", (*client.Client).ApproveClaim))
	rootCmd.AddCommand(newClaimDecisionCmd("reject-claim", "Reject a claim", (*client.Client).RejectClaim))
	rootCmd.AddCommand(newConvertQuoteCmd())
	rootCmd.AddCommand(newAnalyzeFraudCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newValidateKeyCmd())

	return rootCmd
}

// run executes fn with a fresh client and a bounded context, logging the
// elapsed time, and prints its result as indented JSON.
func run(cmd *cobra.Command, op string, fn func(ctx context.Context, c *client.Client) (any, error)) error {
	c, err := client.New(apiURL, apiKey)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	log.Debug().Str("op", op).Str("api_url", apiURL).Msg("calling API")
	start := time.Now()
	out, err := fn(ctx, c)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("op", op).Dur("elapsed", elapsed).Msg("request failed")
		return err
	}
	log.Debug().Str("op", op).Dur("elapsed", elapsed).Msg("request completed")
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, v any) error {
	if raw, ok := v.(json.RawMessage); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseData decodes the --data flag into a JSON object.
func parseData(data string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(data), &obj); err != nil {
		return nil, fmt.Errorf("--data must be a JSON object: %w", err)
	}
	return obj, nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list RESOURCE",
		Short: "List all records of a resource, e.g. policies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "list", func(ctx context.Context, c *client.Client) (any, error) {
				return c.List(ctx, args[0])
			})
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get RESOURCE ID",
		Short: "Fetch one record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "get", func(ctx context.Context, c *client.Client) (any, error) {
				return c.Get(ctx, args[0], args[1])
			})
		},
	}
}

func newCreateCmd() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "create RESOURCE",
		Short: "Create a record from a JSON object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseData(data)
			if err != nil {
				return err
			}
			return run(cmd, "create", func(ctx context.Context, c *client.Client) (any, error) {
				return c.Create(ctx, args[0], fields)
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Record fields as JSON (required)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update RESOURCE ID",
		Short: "Merge a JSON object into an existing record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseData(data)
			if err != nil {
				return err
			}
			return run(cmd, "update", func(ctx context.Context, c *client.Client) (any, error) {
				return c.Update(ctx, args[0], args[1], patch)
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Fields to update as JSON (required)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete RESOURCE ID",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "delete", func(ctx context.Context, c *client.Client) (any, error) {
				return c.Action(ctx, http.MethodDelete, args[0]+"/"+url.PathEscape(args[1]), nil)
			})
		},
	}
}

type claimDecision func(c *client.Client, ctx context.Context, id, notes string) (*client.Claim, error)

func newClaimDecisionCmd(use, short string, decide claimDecision) *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, use, func(ctx context.Context, c *client.Client) (any, error) {
				return decide(c, ctx, args[0], notes)
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Decision notes (optional)")
	return cmd
}

func newConvertQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert-quote ID",
		Short: "Convert an approved quote into a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "convert-quote", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ConvertQuote(ctx, args[0])
			})
		},
	}
}

func newAnalyzeFraudCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze-fraud CLAIM_ID",
		Short: "Score a claim for fraud indicators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "analyze-fraud", func(ctx context.Context, c *client.Client) (any, error) {
				return c.AnalyzeClaimFraud(ctx, args[0])
			})
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "summary {claims|policies|loss-ratio}",
		Short:     "Show portfolio analytics",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"claims", "policies", "loss-ratio"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "summary", func(ctx context.Context, c *client.Client) (any, error) {
				switch args[0] {
				case "claims":
					return c.ClaimsSummary(ctx)
				case "policies":
					return c.PoliciesSummary(ctx)
				default:
					return c.LossRatio(ctx)
				}
			})
		},
	}
}

func newValidateKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-key",
		Short: "Check the API key against the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "validate-key", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ValidateKey(ctx)
			})
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Command plantctl normalizes plant photos and calls the identification
// service from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"plant-id/api/internal/client"
	"plant-id/api/internal/photo"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		serverURL string
		timeout   time.Duration
		maxBytes  int64
	)

	cmd := &cobra.Command{
		Use:   "plantctl",
		Short: "Identify plants from photos",
		Long: `Identify plants from photos using the plant-id service.

Examples:
  plantctl identify fern.jpg                 # Normalize and identify
  plantctl identify --server http://host:8080 leaf.png
  plantctl normalize photo.jpg > payload.txt
  plantctl plants --location california
`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", envOr("IDENTIFY_URL", "http://localhost:8080"), "Identification service base URL")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-call timeout (0 = none)")
	cmd.PersistentFlags().Int64Var(&maxBytes, "max-bytes", photo.DefaultMaxBytes, "Largest accepted image file in bytes")

	newClient := func() *client.Client {
		if timeout > 0 {
			return client.New(serverURL, client.WithTimeout(timeout))
		}
		return client.New(serverURL)
	}
	newNormalizer := func() *photo.Normalizer {
		n := photo.New()
		n.MaxBytes = maxBytes
		return n
	}

	cmd.AddCommand(normalizeCmd(newNormalizer))
	cmd.AddCommand(identifyCmd(newNormalizer, newClient))
	cmd.AddCommand(plantsCmd(newClient))
	return cmd
}

func normalizeCmd(newNormalizer func() *photo.Normalizer) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <image|->",
		Short: "Print the JPEG data URI that would be sent for identification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := normalizeFile(newNormalizer(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), payload)
			return err
		},
	}
}

func identifyCmd(newNormalizer func() *photo.Normalizer, newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "identify <image|->",
		Short: "Normalize an image and identify the plant in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := normalizeFile(newNormalizer(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := newClient().Identify(ctx, payload)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func plantsCmd(newClient func() *client.Client) *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "plants",
		Short: "List catalogue plants, optionally filtered by region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			plants, err := newClient().Plants(ctx, location)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"plants": plants})
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "Region substring, case-insensitive")
	return cmd
}

func normalizeFile(n *photo.Normalizer, path string, stdin io.Reader) (string, error) {
	if path == "-" {
		return n.NormalizeReader(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return n.NormalizeReader(f)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

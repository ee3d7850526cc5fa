// Package cli implements the newsdesk command: a terminal console for the
// newsroom that talks to the articles API.
package cli

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"news-agency/internal/client/api"
	"news-agency/pkg/config"
)

// ValidFormats are the accepted --format values.
var ValidFormats = []string{"text", "json"}

// RootOptions holds the global flags shared by every command.
type RootOptions struct {
	APIURL     string
	Token      string
	Format     string
	ConfigPath string
	Timeout    time.Duration
}

// Client returns an API client configured from the global flags.
func (o *RootOptions) Client() *api.Client {
	opts := []api.Option{api.WithHTTPClient(&http.Client{Timeout: o.Timeout})}
	if o.Token != "" {
		opts = append(opts, api.WithToken(o.Token))
	}
	return api.New(o.APIURL, opts...)
}

// NewRootCommand builds the newsdesk command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "newsdesk",
		Short: "Newsroom console for the articles API",
		Long: `newsdesk lists, writes and publishes articles through the articles API.

Settings come from flags, then from the YAML file named by --config
(keys api_url and token), then from NEWSDESK_API_URL and NEWSDESK_TOKEN.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.resolve(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.APIURL, "api", "http://localhost:8080", "base URL of the articles API")
	pf.StringVar(&opts.Token, "token", "", "bearer token for admin actions")
	pf.StringVar(&opts.Format, "format", "text", "output format (text|json)")
	pf.StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	pf.DurationVar(&opts.Timeout, "timeout", 15*time.Second, "HTTP timeout")

	cmd.AddCommand(
		newListCommand(opts),
		newPublishedCommand(opts),
		newShowCommand(opts),
		newSearchCommand(opts),
		newStatsCommand(opts),
		newFiltersCommand(opts),
		newCreateCommand(opts),
		newEditCommand(opts),
		newDeleteCommand(opts),
		newStatusCommand(opts),
		newImportFeedCommand(opts),
		newLoginCommand(opts),
	)
	return cmd
}

// resolve fills settings the user did not pass as flags from the config
// file and then the environment.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	var fc FileConfig
	if o.ConfigPath != "" {
		var err error
		fc, err = LoadFileConfig(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read config", err)
		}
	}
	if !cmd.Flags().Changed("api") {
		o.APIURL = firstNonEmpty(fc.APIURL, config.GetEnvString("NEWSDESK_API_URL", ""), o.APIURL)
	}
	if !cmd.Flags().Changed("token") {
		o.Token = firstNonEmpty(fc.Token, config.GetEnvString("NEWSDESK_TOKEN", ""), o.Token)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

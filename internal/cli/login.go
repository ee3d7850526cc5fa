package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"news-agency/pkg/config"
)

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var username, password string
	var save bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Get an admin token from the API",
		Long: `login exchanges the admin credentials for a bearer token.

The password is read from --password, then NEWSDESK_PASSWORD, then the
first line of standard input. With --save the token is written to the
--config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = config.GetEnvString("NEWSDESK_PASSWORD", "")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				password = strings.TrimRight(line, "\r\n")
			}
			if username == "" || password == "" {
				return NewExitError(ExitCommandError, "username and password are required")
			}
			if save && opts.ConfigPath == "" {
				return NewExitError(ExitCommandError, "--save needs --config")
			}

			token, exp, err := opts.Client().Login(cmd.Context(), username, password)
			if err != nil {
				return apiFailure("login failed", err)
			}

			if save {
				fc, err := LoadFileConfig(opts.ConfigPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to read config", err)
				}
				if fc.APIURL == "" {
					fc.APIURL = opts.APIURL
				}
				fc.Token = token
				if err := SaveFileConfig(opts.ConfigPath, fc); err != nil {
					return WrapExitError(ExitCommandError, "failed to save config", err)
				}
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"token":      token,
					"expires_at": exp.Format(time.RFC3339),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", config.GetEnvString("NEWSDESK_USER", ""), "admin user")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().BoolVar(&save, "save", false, "store the token in the --config file")
	return cmd
}

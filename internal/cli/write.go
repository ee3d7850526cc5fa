package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"news-agency/internal/client/admin"
	"news-agency/internal/client/api"
	"news-agency/internal/client/notify"
	"news-agency/internal/domain/entity"
)

// articleFlags are the form fields shared by create and edit.
type articleFlags struct {
	form admin.Form
}

func (f *articleFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.form.Title, "title", "", "headline")
	fl.StringVar(&f.form.Content, "content", "", "article body")
	fl.StringVar(&f.form.Region, "region", "", "region, e.g. National or Telangana")
	fl.StringVar(&f.form.Language, "language", "", "language, e.g. English or Telugu")
	fl.StringVar(&f.form.Date, "date", "", "publication date (most formats accepted; default today)")
	fl.StringVar(&f.form.Author, "author", "", "byline")
	fl.StringVar(&f.form.Category, "category", "", "section")
}

// apply copies the flags the user set onto base.
func (f *articleFlags) apply(cmd *cobra.Command, base admin.Form) admin.Form {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("title", &base.Title, f.form.Title)
	set("content", &base.Content, f.form.Content)
	set("region", &base.Region, f.form.Region)
	set("language", &base.Language, f.form.Language)
	set("date", &base.Date, f.form.Date)
	set("author", &base.Author, f.form.Author)
	set("category", &base.Category, f.form.Category)
	return base
}

// normalizeDate turns a free-form date into YYYY-MM-DD in the local zone.
// Empty stays empty so the form reports it.
func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := dateparse.ParseIn(s, time.Local)
	if err != nil {
		return "", NewExitError(ExitCommandError, fmt.Sprintf("unrecognized date %q", s))
	}
	return t.Format(api.DateLayout), nil
}

func newAdminStore(opts *RootOptions, cmd *cobra.Command) *admin.Store {
	return admin.NewStore(opts.Client(), nil,
		admin.WithNotifier(printNotifier(cmd.ErrOrStderr())),
		admin.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

// formFailure turns ErrInvalidForm into a listing of the field messages.
func formFailure(store *admin.Store, err error) error {
	if !errors.Is(err, admin.ErrInvalidForm) {
		return WrapExitError(ExitFailure, "request failed", errors.New(api.Message(err, err.Error())))
	}
	errs := store.View().FormErrors
	fields := make([]string, 0, len(errs))
	for k := range errs {
		fields = append(fields, k)
	}
	slices.Sort(fields)
	msgs := make([]string, 0, len(fields))
	for _, k := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, errs[k]))
	}
	return NewExitError(ExitCommandError, "invalid article:\n  "+strings.Join(msgs, "\n  "))
}

func newCreateCommand(opts *RootOptions) *cobra.Command {
	var af articleFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a new article",
		Example: `  newsdesk create --title "Metro Line Opens" --content "..." \
    --region Telangana --language English --date 2024-01-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := af.apply(cmd, admin.Form{})
			if form.Date == "" {
				form.Date = time.Now().Format(api.DateLayout)
			}
			date, err := normalizeDate(form.Date)
			if err != nil {
				return err
			}
			form.Date = date

			store := newAdminStore(opts, cmd)
			id, err := store.Create(cmd.Context(), form)
			if err != nil {
				return formFailure(store, err)
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]int64{"id": id})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d\n", id)
			return err
		},
	}
	af.register(cmd)
	return cmd
}

func newEditCommand(opts *RootOptions) *cobra.Command {
	var af articleFlags
	cmd := &cobra.Command{
		Use:     "edit ID",
		Short:   "Change fields of an article",
		Example: `  newsdesk edit 12 --title "Corrected headline"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := newAdminStore(opts, cmd)
			store.Load(cmd.Context())
			if n := store.View().Notice; n != nil && n.Level == notify.Warning {
				return NewExitError(ExitFailure, "cannot edit while the API is unreachable")
			}
			current, err := store.BeginEdit(id)
			if err != nil {
				return NewExitError(ExitFailure, fmt.Sprintf("article %d not found", id))
			}

			form := af.apply(cmd, current)
			if cmd.Flags().Changed("date") {
				if form.Date, err = normalizeDate(form.Date); err != nil {
					return err
				}
			}
			if err := store.Update(cmd.Context(), form); err != nil {
				return formFailure(store, err)
			}
			return nil
		},
	}
	af.register(cmd)
	return cmd
}

func newDeleteCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
				"Are you sure you want to delete this article? This action cannot be undone.") {
				return NewExitError(ExitFailure, "aborted")
			}
			store := newAdminStore(opts, cmd)
			if err := store.Delete(cmd.Context(), id); err != nil {
				return formFailure(store, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move an article to draft, pending, published or archived",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := entity.ParseStatus(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid status", err)
			}
			store := newAdminStore(opts, cmd)
			if err := store.SetStatus(cmd.Context(), id, string(st)); err != nil {
				return formFailure(store, err)
			}
			return nil
		},
	}
}

// confirm asks a yes/no question on w and reads the answer from r.
func confirm(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N] ", question)
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

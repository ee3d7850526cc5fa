package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"news-agency/internal/client/admin"
	"news-agency/internal/client/api"
	"news-agency/internal/client/public"
)

func newListCommand(opts *RootOptions) *cobra.Command {
	var f api.ListFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles of every status",
		Example: `  newsdesk list
  newsdesk list --region Telangana --status draft`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			articles, err := opts.Client().All(cmd.Context(), f)
			if err != nil {
				return apiFailure("failed to list articles", err)
			}
			return printArticles(cmd.OutOrStdout(), opts.Format, articles)
		},
	}
	cmd.Flags().StringVar(&f.Region, "region", "", "only this region")
	cmd.Flags().StringVar(&f.Language, "language", "", "only this language")
	cmd.Flags().StringVar(&f.Status, "status", "", "only this status (draft|pending|published|archived)")
	return cmd
}

func newPublishedCommand(opts *RootOptions) *cobra.Command {
	var region, language, search string
	cmd := &cobra.Command{
		Use:   "published",
		Short: "Show the reader page: featured stories and the latest articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			store := public.NewStore(opts.Client(), nil,
				public.WithNotifier(printNotifier(cmd.ErrOrStderr())),
				public.WithLogger(logger),
			)
			store.Load(cmd.Context())
			if region != "" {
				store.SetRegion(region)
			}
			if language != "" {
				store.SetLanguage(language)
			}
			if search != "" {
				store.SetSearch(search)
			}

			v := store.View()
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), v)
			}
			return public.WriteText(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "only this region")
	cmd.Flags().StringVar(&language, "language", "", "only this language")
	cmd.Flags().StringVar(&search, "search", "", "only articles mentioning this text")
	return cmd
}

func newShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one article in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := findArticle(cmd.Context(), opts.Client(), id)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), a)
			}
			return printArticle(cmd.OutOrStdout(), a)
		},
	}
}

func newSearchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Search titles and content on the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			articles, err := opts.Client().Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return apiFailure("search failed", err)
			}
			return printArticles(cmd.OutOrStdout(), opts.Format, articles)
		},
	}
}

func newStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count articles by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.Client().Stats(cmd.Context())
			if err != nil {
				return apiFailure("failed to fetch stats", err)
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Total:     %d\nPublished: %d\nDraft:     %d\nPending:   %d\nArchived:  %d\n",
				st.Total, st.Published, st.Draft, st.Pending, st.Archived)
			return err
		},
	}
}

func newFiltersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the regions and languages in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fo, err := opts.Client().Filters(cmd.Context())
			if err != nil {
				return apiFailure("failed to fetch filter options", err)
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), fo)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Regions:   %s\nLanguages: %s\n",
				strings.Join(fo.Regions, ", "), strings.Join(fo.Languages, ", "))
			return err
		},
	}
}

// findArticle looks id up in the admin listing; the API has no single-get.
func findArticle(ctx context.Context, c *api.Client, id int64) (api.Article, error) {
	articles, err := c.All(ctx, api.ListFilter{})
	if err != nil {
		return api.Article{}, apiFailure("failed to fetch articles", err)
	}
	for _, a := range articles {
		if a.ID == id {
			return a, nil
		}
	}
	return api.Article{}, NewExitError(ExitFailure, fmt.Sprintf("article %d not found", id))
}

func printArticles(w io.Writer, format string, articles []api.Article) error {
	if format == "json" {
		if articles == nil {
			articles = []api.Article{}
		}
		return writeJSON(w, articles)
	}
	rows := make([]admin.Row, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, admin.ToRow(a))
	}
	return admin.WriteTable(w, rows)
}

func printArticle(w io.Writer, a api.Article) error {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n", a.ID, a.Title)
	fmt.Fprintf(&b, "Status:   %s\n", a.Status)
	fmt.Fprintf(&b, "Region:   %s\n", a.Region)
	fmt.Fprintf(&b, "Language: %s\n", a.Language)
	fmt.Fprintf(&b, "Date:     %s\n", a.Date)
	if a.Author != "" {
		fmt.Fprintf(&b, "Author:   %s\n", a.Author)
	}
	if a.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", a.Category)
	}
	fmt.Fprintf(&b, "\n%s\n", a.Content)
	_, err := io.WriteString(w, b.String())
	return err
}

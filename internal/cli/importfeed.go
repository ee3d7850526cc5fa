package cli

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/spf13/cobra"

	"news-agency/internal/client/api"
	"news-agency/internal/utils/text"
)

const (
	maxImportTitle   = 255
	maxImportContent = 5000
)

// FeedImporter turns RSS/Atom items into plain-text article drafts.
type FeedImporter struct {
	parser *gofeed.Parser
	policy *bluemonday.Policy
	now    func() time.Time
}

// NewFeedImporter returns an importer that fetches feeds with hc.
func NewFeedImporter(hc *http.Client) *FeedImporter {
	p := gofeed.NewParser()
	p.UserAgent = "newsdesk"
	p.Client = hc
	return &FeedImporter{
		parser: p,
		policy: bluemonday.StrictPolicy(),
		now:    time.Now,
	}
}

// Fetch parses the feed at url into inputs tagged with region and language.
// Items without a title or body are skipped.
func (fi *FeedImporter) Fetch(ctx context.Context, url, region, language string) ([]api.ArticleInput, error) {
	feed, err := fi.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}

	out := make([]api.ArticleInput, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		// Content優先、なければDescription
		body := it.Content
		if body == "" {
			body = it.Description
		}
		in := api.ArticleInput{
			Title:    truncateRunes(fi.plain(it.Title), maxImportTitle),
			Content:  truncateRunes(fi.plain(body), maxImportContent),
			Region:   region,
			Language: language,
			Date:     fi.itemDate(it).Format(api.DateLayout),
		}
		if in.Title == "" || in.Content == "" {
			continue
		}
		if it.Author != nil {
			in.Author = fi.plain(it.Author.Name)
		}
		if len(it.Categories) > 0 {
			in.Category = fi.plain(it.Categories[0])
		}
		out = append(out, in)
	}
	return out, nil
}

// plain strips every tag, unescapes entities and collapses whitespace.
func (fi *FeedImporter) plain(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(fi.policy.Sanitize(s))), " ")
}

// itemDate is the published date, else the updated date, else today. Dates
// after today are clamped to today.
func (fi *FeedImporter) itemDate(it *gofeed.Item) time.Time {
	now := fi.now()
	t := now
	switch {
	case it.PublishedParsed != nil:
		t = *it.PublishedParsed
	case it.UpdatedParsed != nil:
		t = *it.UpdatedParsed
	}
	t = t.In(now.Location())
	if t.After(now) {
		return now
	}
	return t
}

func truncateRunes(s string, max int) string {
	if text.CountRunes(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func newImportFeedCommand(opts *RootOptions) *cobra.Command {
	var region, language string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import-feed URL",
		Short: "Create one article per item of an RSS or Atom feed",
		Example: `  newsdesk import-feed https://example.com/rss.xml --region National --language English
  newsdesk import-feed https://example.com/atom --region Kerala --language Malayalam --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importer := NewFeedImporter(&http.Client{Timeout: opts.Timeout})
			inputs, err := importer.Fetch(cmd.Context(), args[0], region, language)
			if err != nil {
				return WrapExitError(ExitFailure, "feed import failed", err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				if opts.Format == "json" {
					return writeJSON(out, inputs)
				}
				for _, in := range inputs {
					fmt.Fprintf(out, "%s  %s\n", in.Date, in.Title)
				}
				return nil
			}

			client := opts.Client()
			var created, failed int
			for _, in := range inputs {
				id, err := client.Create(cmd.Context(), in)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "skip %q: %s\n", in.Title, api.Message(err, err.Error()))
					continue
				}
				created++
				if opts.Format == "text" {
					fmt.Fprintf(out, "%d  %s\n", id, in.Title)
				}
			}
			if opts.Format == "json" {
				if err := writeJSON(out, map[string]int{"created": created, "failed": failed}); err != nil {
					return err
				}
			}
			if failed > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d of %d items failed", failed, len(inputs)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "region for every imported article (required)")
	cmd.Flags().StringVar(&language, "language", "", "language for every imported article (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be created")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}

package public

import (
	"fmt"
	"io"
	"strings"
	"time"

	"news-agency/internal/client/api"
	"news-agency/internal/client/notify"
	"news-agency/internal/utils/text"
)

const (
	cardExcerptLen     = 150
	carouselExcerptLen = 100
)

// Card is one entry of the article grid.
type Card struct {
	ID       int64
	Title    string
	Excerpt  string
	Region   string
	Language string
	Date     string
}

// Detail is the article shown in the modal, with its full content.
type Detail struct {
	ID       int64
	Title    string
	Content  string
	Region   string
	Language string
	Date     string
}

// View is an immutable snapshot of the reader page.
type View struct {
	Cards        []Card
	Total        int
	NoResults    bool
	HasMore      bool
	Carousel     []Card
	CarouselPos  int
	PrevDisabled bool
	NextDisabled bool
	Search       string
	Region       string
	Language     string
	Regions      []string
	Languages    []string
	Modal        *Detail
	Notice       *notify.Message
}

func (s *Store) viewLocked() View {
	shown := min(s.displayed, len(s.filtered))
	cards := make([]Card, 0, shown)
	for _, a := range s.filtered[:shown] {
		cards = append(cards, toCard(a, cardExcerptLen))
	}

	feat := featured(s.all)
	carousel := make([]Card, 0, len(feat))
	for _, a := range feat {
		carousel = append(carousel, toCard(a, carouselExcerptLen))
	}

	v := View{
		Cards:        cards,
		Total:        len(s.filtered),
		NoResults:    len(s.filtered) == 0,
		HasMore:      len(s.filtered) > s.displayed,
		Carousel:     carousel,
		CarouselPos:  s.carouselPos,
		PrevDisabled: s.carouselPos == 0,
		NextDisabled: s.carouselPos >= len(carousel)-1,
		Search:       s.search,
		Region:       s.region,
		Language:     s.language,
		Regions:      append([]string(nil), s.regions...),
		Languages:    append([]string(nil), s.languages...),
	}
	if s.openID != 0 {
		if a, ok := find(s.all, s.openID); ok {
			v.Modal = &Detail{
				ID:       a.ID,
				Title:    a.Title,
				Content:  a.Content,
				Region:   a.Region,
				Language: a.Language,
				Date:     displayDate(a.Date),
			}
		}
	}
	if s.notice != nil {
		n := *s.notice
		v.Notice = &n
	}
	return v
}

func toCard(a api.Article, excerpt int) Card {
	return Card{
		ID:       a.ID,
		Title:    a.Title,
		Excerpt:  text.Truncate(a.Content, excerpt),
		Region:   a.Region,
		Language: a.Language,
		Date:     displayDate(a.Date),
	}
}

// displayDate renders a wire date for people. Unparseable dates pass through.
func displayDate(d string) string {
	t, err := time.Parse(api.DateLayout, d)
	if err != nil {
		return d
	}
	return text.FormatDisplayDate(t)
}

// WriteText renders v as plain text for terminals.
func WriteText(w io.Writer, v View) error {
	var b strings.Builder
	if v.Notice != nil {
		fmt.Fprintf(&b, "[%s] %s\n\n", v.Notice.Level, v.Notice.Text)
	}
	if len(v.Carousel) > 0 {
		fmt.Fprintf(&b, "Featured %d/%d\n", v.CarouselPos+1, len(v.Carousel))
		for i, c := range v.Carousel {
			marker := " "
			if i == v.CarouselPos {
				marker = ">"
			}
			fmt.Fprintf(&b, "%s %s\n", marker, c.Title)
		}
		fmt.Fprintf(&b, "  %s\n", v.Carousel[v.CarouselPos].Excerpt)
		fmt.Fprintf(&b, "  prev:%s next:%s\n\n", onOff(!v.PrevDisabled), onOff(!v.NextDisabled))
	}

	fmt.Fprintf(&b, "Articles %d of %d\n", len(v.Cards), v.Total)
	if v.NoResults {
		b.WriteString("No articles found.\n")
	}
	for _, c := range v.Cards {
		fmt.Fprintf(&b, "\n#%d %s\n%s | %s | %s\n%s\n", c.ID, c.Title, c.Region, c.Language, c.Date, c.Excerpt)
	}
	if v.HasMore {
		b.WriteString("\n[Load more]\n")
	}
	if m := v.Modal; m != nil {
		fmt.Fprintf(&b, "\n--- #%d %s ---\n%s | %s | %s\n%s\n", m.ID, m.Title, m.Region, m.Language, m.Date, m.Content)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

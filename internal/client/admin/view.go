package admin

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"news-agency/internal/client/api"
	"news-agency/internal/client/notify"
	"news-agency/internal/utils/text"
)

const rowTitleLen = 50

// Row is one line of the article table.
type Row struct {
	ID       int64
	Title    string
	Region   string
	Language string
	Date     string
	Status   string
}

// View is an immutable snapshot of the console.
type View struct {
	Rows       []Row
	NoResults  bool
	Search     string
	Stats      Stats
	Regions    []string
	Languages  []string
	EditingID  int64
	EditForm   Form
	FormErrors FormErrors
	Notice     *notify.Message
}

func (s *Store) viewLocked() View {
	matched := Search(s.all, s.search)
	rows := make([]Row, 0, len(matched))
	for _, a := range matched {
		rows = append(rows, ToRow(a))
	}

	v := View{
		Rows:      rows,
		NoResults: len(rows) == 0,
		Search:    s.search,
		Stats:     s.statsLocked(),
		Regions:   append([]string(nil), s.regions...),
		Languages: append([]string(nil), s.languages...),
		EditingID: s.editingID,
		EditForm:  s.editForm,
	}
	if len(s.formErrors) > 0 {
		v.FormErrors = make(FormErrors, len(s.formErrors))
		for k, msg := range s.formErrors {
			v.FormErrors[k] = msg
		}
	}
	if s.notice != nil {
		n := *s.notice
		v.Notice = &n
	}
	return v
}

// ToRow shortens an article for the table.
func ToRow(a api.Article) Row {
	date := a.Date
	if t, err := time.Parse(api.DateLayout, a.Date); err == nil {
		date = text.FormatDisplayDate(t)
	}
	return Row{
		ID:       a.ID,
		Title:    text.Truncate(a.Title, rowTitleLen),
		Region:   a.Region,
		Language: a.Language,
		Date:     date,
		Status:   a.Status,
	}
}

// WriteTable renders rows as an aligned text table.
func WriteTable(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, "No articles found\n")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tREGION\tLANGUAGE\tDATE\tSTATUS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Region, r.Language, r.Date, r.Status)
	}
	return tw.Flush()
}

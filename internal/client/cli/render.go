package cli

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"text/template"
	"time"

	"github.com/iudanet/todokeeper/internal/models"
)

const dateLayout = "2006-01-02 15:04"

var templateFuncs = template.FuncMap{
	"date": formatDate,
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.Local().Format(dateLayout)
	case *time.Time:
		if t == nil {
			return "-"
		}
		return formatDate(*t)
	}
	return fmt.Sprint(v)
}

// render выводит данные по шаблону
func (c *Cli) render(text string, data any) error {
	tmpl, err := template.New("view").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	c.io.Printf("%s", buf.String())
	return nil
}

func (c *Cli) renderTasks(page *models.Page[models.Task]) {
	if len(page.Items) == 0 {
		c.io.Println("No todos found.")
		c.renderFooter(page.PageIndex, page.PageSize, page.TotalCount)
		return
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDONE\tTITLE\tOWNER\tUPDATED")
	for _, t := range page.Items {
		done := "[ ]"
		if t.Completed {
			done = "[x]"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, done, ellipsis(t.Title, 48), t.OwnerUsername, formatDate(t.UpdatedAt))
	}
	_ = w.Flush()

	c.io.Printf("%s", buf.String())
	c.renderFooter(page.PageIndex, page.PageSize, page.TotalCount)
}

func (c *Cli) renderUsers(page *models.Page[models.UserProfile]) {
	if len(page.Items) == 0 {
		c.io.Println("No users found.")
		c.renderFooter(page.PageIndex, page.PageSize, page.TotalCount)
		return
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tTODOS\tJOINED")
	for _, u := range page.Items {
		count := "-"
		if u.TodoCount != nil {
			count = strconv.Itoa(*u.TodoCount)
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, count, formatDate(u.JoinedAt))
	}
	_ = w.Flush()

	c.io.Printf("%s", buf.String())
	c.renderFooter(page.PageIndex, page.PageSize, page.TotalCount)
}

func (c *Cli) renderFooter(index, size, total int) {
	c.io.Printf("Page %d of %d (%d total)\n", index, models.MaxPage(total, size), total)
}

// ellipsis обрезает строку до n рун
func ellipsis(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

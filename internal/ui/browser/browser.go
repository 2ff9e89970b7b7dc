// File: internal/ui/browser/browser.go
package browser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bucketctl/pkg/storage"
)

// Source is the read path of the storage service
type Source interface {
	ListBuckets(ctx context.Context) ([]storage.Bucket, error)
	ListObjects(ctx context.Context, bucketName string) ([]storage.Object, error)
}

type view int

const (
	viewBuckets view = iota
	viewObjects
)

const tableHeight = 15

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	frameStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder())
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

type bucketsLoadedMsg struct {
	buckets []storage.Bucket
	err     error
}

type objectsLoadedMsg struct {
	bucket  string
	objects []storage.Object
	err     error
}

// Model browses buckets and, on enter, the first page of a bucket's objects.
// It never mutates remote state.
type Model struct {
	ctx     context.Context
	src     Source
	title   string
	view    view
	bucket  string
	table   table.Model
	loading bool
	err     error
}

func New(ctx context.Context, src Source, title string) Model {
	t := table.New(
		table.WithColumns(bucketColumns()),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)
	return Model{ctx: ctx, src: src, title: title, table: t, loading: true}
}

// Runs the browser on the given terminal streams until the operator quits
func Run(ctx context.Context, src Source, title string, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(ctx, src, title), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.loadBuckets()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bucketsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.view = viewBuckets
		m.bucket = ""
		m.table.SetRows(nil)
		m.table.SetColumns(bucketColumns())
		m.table.SetRows(bucketRows(msg.buckets))
		m.table.SetCursor(0)
		return m, nil

	case objectsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.view = viewObjects
		m.bucket = msg.bucket
		m.table.SetRows(nil)
		m.table.SetColumns(objectColumns())
		m.table.SetRows(objectRows(msg.objects))
		m.table.SetCursor(0)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			if m.view == viewObjects {
				return m, m.loadObjects(m.bucket)
			}
			return m, m.loadBuckets()
		case "enter":
			if m.view == viewBuckets && !m.loading {
				if row := m.table.SelectedRow(); row != nil {
					m.loading = true
					return m, m.loadObjects(row[0])
				}
			}
			return m, nil
		case "esc", "backspace":
			if m.view == viewObjects {
				m.loading = true
				return m, m.loadBuckets()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder

	heading := m.title
	if m.view == viewObjects {
		heading += " / " + m.bucket
	}
	sb.WriteString(titleStyle.Render(heading))
	sb.WriteString("\n")
	sb.WriteString(frameStyle.Render(m.table.View()))
	sb.WriteString("\n")

	switch {
	case m.err != nil:
		sb.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.loading:
		sb.WriteString(statusStyle.Render("Loading..."))
	case len(m.table.Rows()) == 0 && m.view == viewObjects:
		sb.WriteString(statusStyle.Render(fmt.Sprintf("There are no objects in the %s bucket!", m.bucket)))
	case len(m.table.Rows()) == 0:
		sb.WriteString(statusStyle.Render("No buckets found."))
	}
	sb.WriteString("\n")

	if m.view == viewObjects {
		sb.WriteString(statusStyle.Render("esc: back • r: refresh • q: quit"))
	} else {
		sb.WriteString(statusStyle.Render("enter: open bucket • r: refresh • q: quit"))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) loadBuckets() tea.Cmd {
	return func() tea.Msg {
		buckets, err := m.src.ListBuckets(m.ctx)
		return bucketsLoadedMsg{buckets: buckets, err: err}
	}
}

func (m Model) loadObjects(bucket string) tea.Cmd {
	return func() tea.Msg {
		objects, err := m.src.ListObjects(m.ctx, bucket)
		return objectsLoadedMsg{bucket: bucket, objects: objects, err: err}
	}
}

func bucketColumns() []table.Column {
	return []table.Column{
		{Title: "BUCKET NAME", Width: 40},
		{Title: "PROVIDER", Width: 10},
		{Title: "LOCATION", Width: 14},
		{Title: "CREATED", Width: 12},
	}
}

func objectColumns() []table.Column {
	return []table.Column{
		{Title: "KEY", Width: 48},
		{Title: "SIZE", Width: 10},
		{Title: "LAST MODIFIED", Width: 20},
	}
}

func bucketRows(buckets []storage.Bucket) []table.Row {
	rows := make([]table.Row, 0, len(buckets))
	for _, b := range buckets {
		created := ""
		if !b.CreatedAt.IsZero() {
			created = b.CreatedAt.Format("2006-01-02")
		}
		rows = append(rows, table.Row{b.Name, string(b.Provider), b.Location, created})
	}
	return rows
}

func objectRows(objects []storage.Object) []table.Row {
	rows := make([]table.Row, 0, len(objects))
	for _, o := range objects {
		modified := ""
		if !o.LastModified.IsZero() {
			modified = o.LastModified.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, table.Row{o.Key, storage.FormatBytes(o.Size), modified})
	}
	return rows
}

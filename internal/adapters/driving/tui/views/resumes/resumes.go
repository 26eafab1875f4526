// Package resumes provides the ingested résumé list view for the TUI.
package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driving"
)

// PageSize is the number of résumés fetched per page.
const PageSize = 50

var errNoRecordService = errors.New("record service not available")

// View lists ingested résumés one page at a time.
type View struct {
	styles  *styles.Styles
	records driving.RecordService
	ctx     context.Context

	items        []*domain.StructuredRecord
	offset       int
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	err          error
}

// NewView creates a résumé list.
func NewView(s *styles.Styles, records driving.RecordService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		records: records,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current page.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	offset := v.offset
	return func() tea.Msg {
		if v.records == nil {
			return messages.RecordsLoaded{Err: errNoRecordService}
		}
		items, err := v.records.List(v.ctx, PageSize, offset)
		return messages.RecordsLoaded{Records: items, Err: err}
	}
}

// Update handles messages for the résumé list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RecordsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.items = msg.Records
		v.selected = min(v.selected, max(len(v.items)-1, 0))
		v.adjustScroll()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.items)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if r := v.SelectedRecord(); r != nil {
			rec := *r
			return v, func() tea.Msg {
				return messages.RecordSelected{Record: rec, From: messages.ViewResumes}
			}
		}
	case "]":
		if len(v.items) == PageSize {
			v.offset += PageSize
			v.selected, v.scrollOffset = 0, 0
			return v, v.Init()
		}
	case "[":
		if v.offset > 0 {
			v.offset = max(v.offset-PageSize, 0)
			v.selected, v.scrollOffset = 0, 0
			return v, v.Init()
		}
	case "r":
		return v, v.Init()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleItemCount() int {
	return max(v.height-8, 1)
}

// View renders the résumé list.
func (v *View) View() string {
	var b strings.Builder

	title := "Résumés"
	if len(v.items) > 0 {
		title = fmt.Sprintf("Résumés %d-%d", v.offset+1, v.offset+len(v.items))
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading résumés..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("No résumés ingested yet. Run 'recruitr ingest <path>'."))
	default:
		visible := v.visibleItemCount()
		end := min(v.scrollOffset+visible, len(v.items))
		for i := v.scrollOffset; i < end; i++ {
			b.WriteString(v.renderRecord(i, v.items[i]))
			b.WriteString("\n")
		}
		if len(v.items) > visible {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.scrollOffset+1, end, len(v.items))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderRecord(index int, r *domain.StructuredRecord) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	nameWidth := max(v.width/2-4, 10)
	name := r.Filename
	if len(name) > nameWidth {
		name = name[:nameWidth-3] + "..."
	}

	detail := r.Email()
	if n := len(r.Skills); n > 0 {
		if detail != "" {
			detail += " · "
		}
		detail += fmt.Sprintf("%d skills", n)
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, nameWidth, name, detail))
	}
	return v.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, nameWidth, name)) +
		v.styles.Muted.Render(detail)
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] open  [[/]] page  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Records returns the loaded page.
func (v *View) Records() []*domain.StructuredRecord {
	return v.items
}

// Offset returns the offset of the loaded page.
func (v *View) Offset() int {
	return v.offset
}

// SelectedIndex returns the selected row within the page.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedRecord returns the selected résumé, or nil.
func (v *View) SelectedRecord() *domain.StructuredRecord {
	if v.selected < 0 || v.selected >= len(v.items) {
		return nil
	}
	return v.items[v.selected]
}

// Loading reports whether a page request is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

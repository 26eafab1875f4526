// Package resumedetail provides the single résumé view for the TUI.
package resumedetail

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recruitr/internal/core/domain"
)

// View shows one résumé's extracted fields, and the match that led to it if any.
type View struct {
	styles *styles.Styles

	record       *domain.StructuredRecord
	match        *domain.Match
	back         messages.ViewType
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a résumé detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		back:   messages.ViewResumes,
		width:  80,
		height: 24,
	}
}

// SetRecord shows r. match may be nil. Esc returns to back.
func (v *View) SetRecord(r domain.StructuredRecord, match *domain.Match, back messages.ViewType) {
	v.record = &r
	v.match = match
	v.back = back
	v.scrollOffset = 0
	v.err = nil
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.scrollOffset > 0 {
				v.scrollOffset--
			}
		case "down", "j":
			if v.scrollOffset < v.maxScrollOffset() {
				v.scrollOffset++
			}
		case "esc":
			back := v.back
			return v, func() tea.Msg {
				return messages.ViewChanged{View: back}
			}
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
	}

	return v, nil
}

func (v *View) visibleLines() int {
	return max(v.height-6, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.buildContent())-v.visibleLines(), 0)
}

func field(label, value string) string {
	return fmt.Sprintf("%-14s %s", label+":", value)
}

func (v *View) buildContent() []string {
	r := v.record
	if r == nil {
		return nil
	}

	lines := []string{
		field("ID", r.ID),
		field("File", r.Filename),
		field("Ingested", r.CreatedAt.Format("2006-01-02 15:04")),
	}
	if r.ExperienceYears != nil {
		lines = append(lines, field("Experience", fmt.Sprintf("%d years", *r.ExperienceYears)))
	}
	if len(r.Skills) > 0 {
		lines = append(lines, field("Skills", strings.Join(r.Skills, ", ")))
	}
	if len(r.Education) > 0 {
		lines = append(lines, field("Education", strings.Join(r.Education, ", ")))
	}
	if len(r.Certifications) > 0 {
		lines = append(lines, field("Certifications", strings.Join(r.Certifications, ", ")))
	}
	if len(r.Languages) > 0 {
		lines = append(lines, field("Languages", strings.Join(r.Languages, ", ")))
	}

	if len(r.ContactInfo) > 0 {
		lines = append(lines, "", "Contact:")
		channels := make([]string, 0, len(r.ContactInfo))
		for c := range r.ContactInfo {
			channels = append(channels, string(c))
		}
		sort.Strings(channels)
		for _, c := range channels {
			lines = append(lines, fmt.Sprintf("  %s: %s", c, r.ContactInfo[domain.ContactChannel(c)]))
		}
	}

	if m := v.match; m != nil {
		lines = append(lines, "", "Match:", fmt.Sprintf("  score: %.3f", m.Score))
		if len(m.MatchingSkills) > 0 {
			lines = append(lines, "  skills: "+strings.Join(m.MatchingSkills, ", "))
		}
		if m.Explanation != "" {
			lines = append(lines, "  explanation: "+m.Explanation)
		}
	}

	for _, kind := range domain.AllSectionKinds() {
		text := strings.TrimSpace(r.Sections[kind])
		if text == "" {
			continue
		}
		lines = append(lines, "", strings.ToUpper(string(kind)))
		lines = append(lines, wrap(text, max(v.width-4, 20))...)
	}

	return lines
}

// wrap breaks text into lines of at most width bytes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// View renders the résumé.
func (v *View) View() string {
	var b strings.Builder

	title := "Résumé"
	if v.record != nil {
		title = "Résumé · " + v.record.Filename
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 10), 60)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}
	if v.record == nil {
		b.WriteString(v.styles.Muted.Render("No résumé selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visible := v.visibleLines()
	end := min(v.scrollOffset+visible, len(lines))
	for _, line := range lines[v.scrollOffset:end] {
		b.WriteString(v.styleLine(line))
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]", v.scrollOffset+1, end, len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) styleLine(line string) string {
	switch {
	case line == "":
		return ""
	case isHeading(line):
		return v.styles.Subtitle.Render(line)
	case strings.HasPrefix(line, "  score: ") && v.match != nil:
		return v.styles.Muted.Render("  score: ") + v.styles.Score(v.match.Score).Render(strings.TrimPrefix(line, "  score: "))
	}
	if label, value, ok := strings.Cut(line, ":"); ok && !strings.HasPrefix(line, " ") {
		return v.styles.Subtitle.Render(label+":") + v.styles.Normal.Render(value)
	}
	return v.styles.Normal.Render(line)
}

func isHeading(line string) bool {
	if line == "Contact:" || line == "Match:" {
		return true
	}
	for _, kind := range domain.AllSectionKinds() {
		if line == strings.ToUpper(string(kind)) {
			return true
		}
	}
	return false
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Record returns the displayed résumé.
func (v *View) Record() *domain.StructuredRecord {
	return v.record
}

// Back returns the view Esc returns to.
func (v *View) Back() messages.ViewType {
	return v.back
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

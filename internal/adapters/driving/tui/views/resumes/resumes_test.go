package resumes

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recruitr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recruitr/internal/core/domain"
)

type mockRecordService struct {
	records    []*domain.StructuredRecord
	err        error
	lastLimit  int
	lastOffset int
}

func (m *mockRecordService) List(_ context.Context, limit, offset int) ([]*domain.StructuredRecord, error) {
	m.lastLimit, m.lastOffset = limit, offset
	if m.err != nil {
		return nil, m.err
	}
	if offset >= len(m.records) {
		return []*domain.StructuredRecord{}, nil
	}
	return m.records[offset:min(offset+limit, len(m.records))], nil
}

func (m *mockRecordService) Get(_ context.Context, id string) (*domain.StructuredRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func makeRecords(n int) []*domain.StructuredRecord {
	out := make([]*domain.StructuredRecord, n)
	for i := range out {
		out[i] = &domain.StructuredRecord{
			ID:          fmt.Sprintf("id-%d", i),
			Filename:    fmt.Sprintf("resume-%d.pdf", i),
			Skills:      []string{"go", "sql"},
			ContactInfo: map[domain.ContactChannel]string{domain.ContactEmail: fmt.Sprintf("p%d@example.com", i)},
		}
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a view with the first page applied.
func loaded(t *testing.T, records *mockRecordService) *View {
	t.Helper()
	v := NewView(nil, records)
	v.SetDimensions(100, 40)
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
	return v
}

func TestView_InitLoadsFirstPage(t *testing.T) {
	records := &mockRecordService{records: makeRecords(3)}
	view := NewView(nil, records)

	cmd := view.Init()
	assert.True(t, view.Loading())

	msg, ok := cmd().(messages.RecordsLoaded)
	require.True(t, ok)
	assert.Len(t, msg.Records, 3)
	assert.Equal(t, PageSize, records.lastLimit)
	assert.Equal(t, 0, records.lastOffset)

	view.Update(msg)
	assert.False(t, view.Loading())
	assert.Len(t, view.Records(), 3)
}

func TestView_InitWithoutService(t *testing.T) {
	view := NewView(nil, nil)

	msg, ok := view.Init()().(messages.RecordsLoaded)
	require.True(t, ok)
	require.Error(t, msg.Err)

	view.Update(msg)
	assert.Contains(t, view.View(), "record service not available")
}

func TestView_LoadError(t *testing.T) {
	view := loaded(t, &mockRecordService{err: errors.New("disk gone")})

	assert.EqualError(t, view.Err(), "disk gone")
	assert.Contains(t, view.View(), "Error: disk gone")
}

func TestView_EmptyState(t *testing.T) {
	view := loaded(t, &mockRecordService{})

	assert.Contains(t, view.View(), "No résumés ingested yet")
}

func TestView_NavigationAndOpen(t *testing.T) {
	view := loaded(t, &mockRecordService{records: makeRecords(3)})

	view.Update(key("j"))
	view.Update(key("j"))
	view.Update(key("j"))
	assert.Equal(t, 2, view.SelectedIndex())
	view.Update(key("k"))
	assert.Equal(t, 1, view.SelectedIndex())

	_, cmd := view.Update(key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.RecordSelected)
	require.True(t, ok)
	assert.Equal(t, "id-1", msg.Record.ID)
	assert.Nil(t, msg.Match)
	assert.Equal(t, messages.ViewResumes, msg.From)
}

func TestView_Paging(t *testing.T) {
	records := &mockRecordService{records: makeRecords(PageSize + 5)}
	view := loaded(t, records)
	require.Len(t, view.Records(), PageSize)

	_, cmd := view.Update(key("]"))
	require.NotNil(t, cmd)
	view.Update(cmd())
	assert.Equal(t, PageSize, view.Offset())
	assert.Len(t, view.Records(), 5)
	assert.Contains(t, view.View(), fmt.Sprintf("Résumés %d-%d", PageSize+1, PageSize+5))

	// short page: no further page
	_, cmd = view.Update(key("]"))
	assert.Nil(t, cmd)

	_, cmd = view.Update(key("["))
	require.NotNil(t, cmd)
	view.Update(cmd())
	assert.Equal(t, 0, view.Offset())

	_, cmd = view.Update(key("["))
	assert.Nil(t, cmd)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := loaded(t, &mockRecordService{})

	_, cmd := view.Update(key("esc"))
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_RendersRow(t *testing.T) {
	view := loaded(t, &mockRecordService{records: makeRecords(1)})

	out := view.View()

	assert.Contains(t, out, "resume-0.pdf")
	assert.Contains(t, out, "p0@example.com · 2 skills")
}

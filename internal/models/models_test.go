package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage_Flags(t *testing.T) {
	tests := []struct {
		name         string
		items        int
		total        int
		index        int
		size         int
		wantLen      int
		wantNext     bool
		wantPrevious bool
	}{
		{name: "first of many", items: 10, total: 21, index: 1, size: 10, wantLen: 10, wantNext: true, wantPrevious: false},
		{name: "middle", items: 10, total: 21, index: 2, size: 10, wantLen: 10, wantNext: true, wantPrevious: true},
		{name: "last partial", items: 1, total: 21, index: 3, size: 10, wantLen: 1, wantNext: false, wantPrevious: true},
		{name: "exact fit", items: 10, total: 20, index: 2, size: 10, wantLen: 10, wantNext: false, wantPrevious: true},
		{name: "empty", items: 0, total: 0, index: 1, size: 10, wantLen: 0, wantNext: false, wantPrevious: false},
		{name: "oversized result trimmed", items: 12, total: 30, index: 1, size: 10, wantLen: 10, wantNext: true, wantPrevious: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]Task, tt.items)
			p := NewPage(items, tt.total, tt.index, tt.size)

			assert.Len(t, p.Items, tt.wantLen)
			assert.LessOrEqual(t, len(p.Items), p.PageSize)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.index*tt.size < tt.total, p.HasNext)
			assert.Equal(t, tt.wantPrevious, p.HasPrevious)
		})
	}
}

func TestNewPage_NilItems(t *testing.T) {
	p := NewPage[Task](nil, 0, 1, 10)
	require.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
}

func TestPage_Clone(t *testing.T) {
	p := NewPage([]Task{{ID: 1}, {ID: 2}}, 2, 1, 10)
	cp := p.Clone()
	cp.Items[0].Title = "changed"

	assert.Empty(t, p.Items[0].Title)
	assert.Nil(t, (*Page[Task])(nil).Clone())
}

func TestMaxPage(t *testing.T) {
	assert.Equal(t, 1, MaxPage(0, 10))
	assert.Equal(t, 1, MaxPage(10, 10))
	assert.Equal(t, 2, MaxPage(11, 10))
	assert.Equal(t, 2, MaxPage(20, 10))
	assert.Equal(t, 3, MaxPage(21, 10))
	assert.Equal(t, 1, MaxPage(5, 0))
}

func TestCanMutate(t *testing.T) {
	task := Task{ID: 7, OwnerID: 1}

	assert.True(t, CanMutate(&UserProfile{ID: 1}, task))
	assert.False(t, CanMutate(&UserProfile{ID: 2}, task))
	assert.True(t, CanMutate(&UserProfile{ID: 2, IsAdmin: true}, task))
	assert.False(t, CanMutate(nil, task))
}

func TestTaskDraft_Validate(t *testing.T) {
	d := TaskDraft{Title: "  Buy milk  ", Description: " 2L "}
	require.NoError(t, d.Validate())
	assert.Equal(t, "Buy milk", d.Title)
	assert.Equal(t, "2L", d.Description)

	empty := TaskDraft{Title: "   "}
	err := empty.Validate()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "title", vErr.Field)
}

func TestTaskPatch(t *testing.T) {
	title := "new"
	done := true
	blank := " "
	task := Task{ID: 1, Title: "old"}

	p := TaskPatch{Title: &title, Completed: &done}
	require.NoError(t, p.Validate())
	got := p.Apply(task)
	assert.Equal(t, "new", got.Title)
	assert.True(t, got.Completed)
	assert.True(t, p.ChangesFrom(task))

	same := "old"
	assert.False(t, TaskPatch{Title: &same}.ChangesFrom(task))

	assert.Error(t, TaskPatch{Title: &blank}.Validate())
	assert.Error(t, TaskPatch{}.Validate())
}

func TestSession_IsLive(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsLive())
	assert.False(t, (&Session{AccessToken: "a"}).IsLive())
	assert.False(t, (&Session{User: &UserProfile{ID: 1}}).IsLive())
	assert.True(t, (&Session{User: &UserProfile{ID: 1}, AccessToken: "a"}).IsLive())
}

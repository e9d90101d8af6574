package tools

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/easeaico/adk-meal-planner/internal/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var today = time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)

// mockInventory implements InventoryReader for testing
type mockInventory struct {
	text string
	err  error
}

func (m *mockInventory) Recent(ctx context.Context) (string, error) {
	return m.text, m.err
}

// mockNotifier records the messages it was asked to send
type mockNotifier struct {
	status int
	err    error
	sent   []string
}

func (m *mockNotifier) Send(ctx context.Context, message string) (int, error) {
	m.sent = append(m.sent, message)
	return m.status, m.err
}

func newPrefs(t *testing.T, r *memory.Record, opts ...memory.Option) *memory.Preferences {
	t.Helper()
	store := memory.NewFileStore(filepath.Join(t.TempDir(), "memory_bank.json"))
	if r != nil {
		require.NoError(t, store.Save(context.Background(), r))
	}
	opts = append([]memory.Option{memory.WithClock(func() time.Time { return today })}, opts...)
	return memory.NewPreferences(store, opts...)
}

func TestBuildTools(t *testing.T) {
	h := NewHandler(&mockInventory{}, newPrefs(t, nil), &mockNotifier{}, nil)

	set, err := BuildTools(h)
	require.NoError(t, err)

	var names []string
	for _, tl := range append(set.Inventory, set.Decision...) {
		names = append(names, tl.Name())
	}
	assert.Equal(t, []string{FetchGroceriesTool, ReadMemoryBankTool, RecordChoiceTool, SendNotificationTool}, names)
}

func TestHandler_FetchGroceries(t *testing.T) {
	ctx := context.Background()

	ok := NewHandler(&mockInventory{text: "Okra (250 g) bought on 2025-06-19"}, newPrefs(t, nil), &mockNotifier{}, zaptest.NewLogger(t))
	res := ok.FetchGroceries(ctx)
	assert.True(t, res.Success)
	assert.Equal(t, "Okra (250 g) bought on 2025-06-19", res.Inventory)

	failing := NewHandler(&mockInventory{err: errors.New("auth failed")}, newPrefs(t, nil), &mockNotifier{}, nil)
	res = failing.FetchGroceries(ctx)
	assert.False(t, res.Success)
	assert.Equal(t, "auth failed", res.Error)
}

func TestHandler_ReadMemoryBank(t *testing.T) {
	prefs := newPrefs(t, &memory.Record{
		Favorites: []string{"Daal Chawal"},
		Dislikes:  []string{"Karela"},
		History: []memory.Choice{
			{Name: "Stale Curry", Date: "2025-05-01"},
			{Name: "Aloo Gobi", Date: "2025-06-15"},
		},
	})
	h := NewHandler(&mockInventory{}, prefs, &mockNotifier{}, nil)

	res := h.ReadMemoryBank(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, []string{"Daal Chawal"}, res.Favorites)
	assert.Equal(t, []string{"Karela"}, res.Dislikes)
	assert.Equal(t, []string{"Aloo Gobi"}, res.ForbiddenMeals)
	require.Len(t, res.RecentChoices, 1)

	// Reading must not rewrite the stored history.
	r, err := prefs.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, r.History, 2)
}

func TestHandler_RecordChoice(t *testing.T) {
	prefs := newPrefs(t, nil)
	h := NewHandler(&mockInventory{}, prefs, &mockNotifier{}, nil)

	res := h.RecordChoice(context.Background(), RecordChoiceArgs{MealName: "Palak Paneer"})
	require.True(t, res.Success, res.Error)

	r, err := prefs.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, r.History, 1)
	assert.Equal(t, memory.Choice{Name: "Palak Paneer", Date: "2025-06-20"}, r.History[0])

	res = h.RecordChoice(context.Background(), RecordChoiceArgs{})
	assert.False(t, res.Success)
	assert.Equal(t, "meal_name is required", res.Error)
}

func TestHandler_UsesConfiguredRetention(t *testing.T) {
	ctx := context.Background()
	prefs := newPrefs(t, &memory.Record{History: []memory.Choice{
		{Name: "Ten Days Ago", Date: "2025-06-10"},
		{Name: "Five Days Ago", Date: "2025-06-15"},
	}}, memory.WithRetention(7))
	h := NewHandler(&mockInventory{}, prefs, &mockNotifier{}, nil)

	read := h.ReadMemoryBank(ctx)
	require.True(t, read.Success, read.Error)
	assert.Equal(t, []string{"Five Days Ago"}, read.ForbiddenMeals)

	rec := h.RecordChoice(ctx, RecordChoiceArgs{MealName: "New"})
	require.True(t, rec.Success, rec.Error)
	assert.Equal(t, `Recorded "New". 2 meals in the last 7 days.`, rec.Data)

	r, err := prefs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []memory.Choice{
		{Name: "Five Days Ago", Date: "2025-06-15"},
		{Name: "New", Date: "2025-06-20"},
	}, r.History)
}

func TestRecordChoiceArgs_SchemaDescription(t *testing.T) {
	field, ok := reflect.TypeOf(RecordChoiceArgs{}).FieldByName("MealName")
	require.True(t, ok)
	assert.NotContains(t, field.Tag.Get("jsonschema"), "description=")

	field, ok = reflect.TypeOf(NotificationArgs{}).FieldByName("Message")
	require.True(t, ok)
	assert.NotContains(t, field.Tag.Get("jsonschema"), "description=")
}

func TestHandler_SendNotification(t *testing.T) {
	ctx := context.Background()

	n := &mockNotifier{status: http.StatusNoContent}
	h := NewHandler(&mockInventory{}, newPrefs(t, nil), n, nil)
	res := h.SendNotification(ctx, NotificationArgs{Message: "**Lunch** 🍛"})
	assert.True(t, res.Success)
	assert.Equal(t, "Notification sent. Status: 204", res.Data)
	assert.Equal(t, []string{"**Lunch** 🍛"}, n.sent)

	rejected := NewHandler(&mockInventory{}, newPrefs(t, nil), &mockNotifier{status: http.StatusBadRequest}, nil)
	res = rejected.SendNotification(ctx, NotificationArgs{Message: "x"})
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	dry := NewHandler(&mockInventory{}, newPrefs(t, nil), &mockNotifier{}, nil)
	res = dry.SendNotification(ctx, NotificationArgs{Message: "x"})
	assert.True(t, res.Success)
	assert.Contains(t, res.Data, "dry run")

	res = dry.SendNotification(ctx, NotificationArgs{})
	assert.False(t, res.Success)
}

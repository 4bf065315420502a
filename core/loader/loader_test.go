package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	enabled := &fakeFeature{name: "collection", enabled: true}
	disabled := &fakeFeature{name: "history", enabled: false}

	mgr := NewManager(nil)
	mgr.Register(enabled)
	mgr.Register(disabled)

	require.NoError(t, mgr.LoadAll(fiber.New()))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
	assert.Len(t, mgr.Features(), 2)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	failing := &fakeFeature{name: "broken", enabled: true, err: errors.New("boom")}
	after := &fakeFeature{name: "after", enabled: true}

	mgr := NewManager(nil)
	mgr.Register(failing)
	mgr.Register(after)

	err := mgr.LoadAll(fiber.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.False(t, after.loaded)
}

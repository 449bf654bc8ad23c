package loader

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()

	enabled := &fakeFeature{name: "a", enabled: true}
	disabled := &fakeFeature{name: "b", enabled: false}

	m := NewManager()
	m.Register(enabled)
	m.Register(disabled)

	assert.NoError(t, m.LoadAll(app))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	app := fiber.New()

	failing := &fakeFeature{name: "a", enabled: true, loadErr: assert.AnError}
	after := &fakeFeature{name: "b", enabled: true}

	m := NewManager()
	m.Register(failing)
	m.Register(after)

	err := m.LoadAll(app)
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, after.loaded)
}

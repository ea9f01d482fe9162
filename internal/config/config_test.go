package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valu/internal/carousel"
	"valu/internal/eventbus"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4*time.Second, cfg.Carousels.Stats.Interval.Duration)
	assert.Equal(t, 5*time.Second, cfg.Carousels.Assets.Interval.Duration)
	assert.Equal(t, 1, cfg.Carousels.Assets.StartIndex)
	assert.True(t, cfg.Carousels.Stats.CaptureWheel)
	assert.True(t, cfg.Carousels.Assets.EnableWheel)
	assert.True(t, cfg.Carousels.Assets.CaptureWheel)
	assert.Equal(t, 800*time.Millisecond, cfg.Input.WheelCooldown.Duration)
	assert.Equal(t, 20, cfg.Market.Count)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(path, nil, nil)

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[input]
wheel_cooldown = "1s"

[carousels.stats]
interval = "2500ms"
axis = "horizontal"
`), 0o644))

	cfg, err := NewConfigService(path, nil, nil).Load()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Input.WheelCooldown.Duration)
	assert.Equal(t, 2500*time.Millisecond, cfg.Carousels.Stats.Interval.Duration)
	assert.Equal(t, "horizontal", cfg.Carousels.Stats.Axis)
	assert.Equal(t, 5*time.Second, cfg.Carousels.Assets.Interval.Duration)
	assert.Equal(t, 50.0, cfg.Input.SwipeThreshold)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad duration", "[carousels.stats]\ninterval = \"soon\"\n"},
		{"zero interval", "[carousels.assets]\ninterval = \"0s\"\n"},
		{"unknown axis", "[carousels.stats]\naxis = \"diagonal\"\n"},
		{"negative threshold", "[input]\nswipe_threshold = -1.0\n"},
		{"unknown key", "[input]\nscroll_speed = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := NewConfigService(path, nil, nil).Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_WrapsSentinel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Market.Count = 0
	cfg.Carousels.Assets.Axis = "z"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "market.count")
	assert.Contains(t, err.Error(), "carousels.assets.axis")
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigService(path, nil, nil)

	cfg := DefaultConfig()
	cfg.Market.Seed = 42
	cfg.Carousels.Stats.Interval = Duration{3 * time.Second}
	require.NoError(t, svc.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3s")

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_RefusesInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Input.CellHeight = 0

	assert.Error(t, NewConfigService(path, nil, nil).Save(cfg))
	assert.NoFileExists(t, path)
}

func TestConfigService_PublishesEvents(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	loaded := make(chan string, 1)
	saved := make(chan string, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		loaded <- e.(eventbus.ConfigLoadedEvent).Path
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		saved <- e.(eventbus.ConfigSavedEvent).Path
	})

	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(path, bus, nil)
	cfg, err := svc.Load()
	require.NoError(t, err)
	require.NoError(t, svc.Save(cfg))

	for _, ch := range []chan string{loaded, saved} {
		select {
		case got := <-ch:
			assert.Equal(t, path, got)
		case <-time.After(time.Second):
			t.Fatal("config event not published")
		}
	}
}

func TestCarouselConfig(t *testing.T) {
	cfg := DefaultConfig()

	cc, err := cfg.CarouselConfig("assets", cfg.Carousels.Assets)
	require.NoError(t, err)
	assert.Equal(t, "assets", cc.Name)
	assert.Equal(t, carousel.AxisHorizontal, cc.Axis)
	assert.Equal(t, 1, cc.StartIndex)
	assert.Equal(t, 5*time.Second, cc.AutoAdvance)
	assert.Equal(t, 800*time.Millisecond, cc.WheelCooldown)

	_, err = cfg.CarouselConfig("bad", CarouselSettings{Axis: "up"})
	assert.Error(t, err)
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplication_DisplayName(t *testing.T) {
	app := &Application{Name: "Files"}
	assert.Equal(t, "Files", app.DisplayName())

	app.LocalizedName = "Dateien"
	assert.Equal(t, "Dateien", app.DisplayName())
}

func TestApplication_Buckets(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		expected   []string
	}{
		{"single", []string{"Audio"}, []string{"AudioVideo"}},
		{"distinct in order", []string{"GTK", "Video", "Audio", "WebBrowser"}, []string{"AudioVideo", "Network"}},
		{"top level direct", []string{"Office"}, []string{"Office"}},
		{"unknown falls back to Other", []string{"GTK", "Qt"}, []string{"Other"}},
		{"empty falls back to Other", nil, []string{"Other"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &Application{Categories: tt.categories}
			assert.Equal(t, tt.expected, app.Buckets())
			assert.Equal(t, tt.expected[0], app.PrimaryCategory())
		})
	}
}

func TestApplication_Visible(t *testing.T) {
	tests := []struct {
		name     string
		app      Application
		desktops []string
		expected bool
	}{
		{"plain", Application{}, nil, true},
		{"no display", Application{NoDisplay: true}, nil, false},
		{"hidden", Application{Hidden: true}, nil, false},
		{"only show in match", Application{OnlyShowIn: []string{"sway"}}, []string{"sway"}, true},
		{"only show in case-insensitive", Application{OnlyShowIn: []string{"GNOME"}}, []string{"gnome"}, true},
		{"only show in miss", Application{OnlyShowIn: []string{"GNOME"}}, []string{"sway"}, false},
		{"only show in without desktop", Application{OnlyShowIn: []string{"GNOME"}}, nil, false},
		{"not show in match", Application{NotShowIn: []string{"KDE"}}, []string{"KDE"}, false},
		{"not show in miss", Application{NotShowIn: []string{"KDE"}}, []string{"sway"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.app.Visible(tt.desktops))
		})
	}
}

func TestApplication_BaseID(t *testing.T) {
	app := &Application{ID: "org.gnome.Nautilus.desktop"}
	assert.Equal(t, "org.gnome.Nautilus", app.BaseID())
}

func TestApplication_Matches(t *testing.T) {
	app := &Application{
		Name:        "Firefox",
		GenericName: "Web Browser",
		Comment:     "Browse the World Wide Web",
		Exec:        "firefox %u",
		Keywords:    []string{"Internet", "WWW"},
	}

	assert.True(t, app.Matches(""))
	assert.True(t, app.Matches("fire"))
	assert.True(t, app.Matches("BROWSER"))
	assert.True(t, app.Matches("wide"))
	assert.True(t, app.Matches("www"))
	assert.False(t, app.Matches("terminal"))
}

func TestNewLaunchRecord(t *testing.T) {
	app := &Application{ID: "foot.desktop", Name: "Foot", LocalizedName: "Fuß"}
	rec, err := NewLaunchRecord(app)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Len(t, rec.ID, 26)
	assert.Equal(t, "foot.desktop", rec.DesktopID)
	assert.Equal(t, "Fuß", rec.Name)
	assert.Greater(t, rec.LaunchedAt, int64(0))
	assert.NoError(t, rec.Validate())
}

func TestLaunchRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*LaunchRecord)
		wantErr error
	}{
		{"valid", func(r *LaunchRecord) {}, nil},
		{"empty id", func(r *LaunchRecord) { r.ID = "" }, ErrEmptyRecordID},
		{"empty desktop id", func(r *LaunchRecord) { r.DesktopID = "" }, ErrEmptyDesktopID},
		{"zero timestamp", func(r *LaunchRecord) { r.LaunchedAt = 0 }, ErrInvalidLaunchAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &LaunchRecord{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", DesktopID: "a.desktop", LaunchedAt: time.Now().Unix()}
			tt.modify(r)
			assert.ErrorIs(t, r.Validate(), tt.wantErr)
		})
	}
}

func TestLaunchRecord_RelativeTime(t *testing.T) {
	r := &LaunchRecord{LaunchedAt: time.Now().Add(-3 * time.Hour).Unix()}
	assert.Equal(t, "3 hours ago", r.RelativeTime())
}

package core

import (
	"testing"

	"github.com/jmylchreest/tilemenu/internal/category"
	"github.com/jmylchreest/tilemenu/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionIDs(sections []model.Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.ID)
	}
	return out
}

func TestGroup(t *testing.T) {
	apps := []*model.Application{
		{ID: "vlc.desktop", Name: "VLC", Categories: []string{"AudioVideo", "Player"}},
		{ID: "tool.desktop", Name: "Tool"},
		{ID: "web.desktop", Name: "web", Categories: []string{"WebBrowser"}},
		{ID: "chat.desktop", Name: "Chat", Categories: []string{"Chat", "Video"}},
	}
	table := category.Table{"Network": "Netzwerk", "AudioVideo": "Multimedia", "Other": "Sonstige"}

	sections := Group(apps, table)
	require.Len(t, sections, 3)
	assert.Equal(t, []string{"AudioVideo", "Network", "Other"}, sectionIDs(sections))

	assert.Equal(t, "Multimedia", sections[0].Label)
	assert.Equal(t, []string{"chat.desktop", "vlc.desktop"}, ids(sections[0].Apps))

	assert.Equal(t, "Netzwerk", sections[1].Label)
	assert.Equal(t, []string{"chat.desktop", "web.desktop"}, ids(sections[1].Apps))

	assert.Equal(t, "Sonstige", sections[2].Label)
	assert.Equal(t, []string{"tool.desktop"}, ids(sections[2].Apps))
}

func TestGroup_OtherAlwaysLast(t *testing.T) {
	apps := []*model.Application{
		{ID: "x.desktop", Name: "X"},
		{ID: "z.desktop", Name: "Z", Categories: []string{"Utility"}},
	}
	// "Andere" sorts before "Utility" but Other still goes last.
	sections := Group(apps, category.Table{"Other": "Andere"})
	assert.Equal(t, []string{"Utility", "Other"}, sectionIDs(sections))
	assert.Equal(t, "Utility", sections[0].Label)
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil, category.DefaultTable()))
}

func TestFindSection(t *testing.T) {
	sections := Group(testApps(), category.Table{"System": "Systemwerkzeuge"})

	s := FindSection(sections, "System")
	require.NotNil(t, s)
	assert.Len(t, s.Apps, 2)

	s = FindSection(sections, "systemwerkzeuge")
	require.NotNil(t, s)
	assert.Equal(t, "System", s.ID)

	assert.Nil(t, FindSection(sections, "Nope"))
}

package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveMenu(t *testing.T) {
	menu := DefaultMenu()
	cases := []struct {
		path string
		want MenuSelection
	}{
		{path: "/", want: MenuSelection{GroupID: "main", ItemID: "dashboard"}},
		{path: "/pages/about-us/", want: MenuSelection{GroupID: "pages", ItemID: "about-us"}},
		{path: "/users/roles?tab=2", want: MenuSelection{GroupID: "management", ItemID: "users", SubID: "roles"}},
		{path: "/users/list/42", want: MenuSelection{GroupID: "management", ItemID: "users", SubID: "all-users"}},
		{path: "settings/notifications#top", want: MenuSelection{GroupID: "settings", ItemID: "notifications"}},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got := ActiveMenu(menu, tc.path)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.Found())
		})
	}
}

func TestActiveMenuNoMatch(t *testing.T) {
	menu := DefaultMenu()
	assert.False(t, ActiveMenu(menu, "/unknown").Found())
	assert.False(t, ActiveMenu(menu, "").Found())
	assert.False(t, ActiveMenu(menu, "/pages/about").Found())
}

func TestDefaultMenuBadges(t *testing.T) {
	badges := map[string]string{}
	for _, group := range DefaultMenu() {
		for _, item := range group.Items {
			if item.Badge != "" {
				badges[item.ID] = item.Badge
			}
		}
	}
	assert.Equal(t, map[string]string{"about-us": "New", "notifications": "3"}, badges)
}

package dashboard

import "strings"

// MenuSubItem is a nested sidebar link.
type MenuSubItem struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Href  string `json:"href" yaml:"href"`
}

// MenuItem is a sidebar entry. Items with sub items have no href of their own.
type MenuItem struct {
	ID       string        `json:"id" yaml:"id"`
	Label    string        `json:"label" yaml:"label"`
	Icon     string        `json:"icon,omitempty" yaml:"icon,omitempty"`
	Href     string        `json:"href,omitempty" yaml:"href,omitempty"`
	Badge    string        `json:"badge,omitempty" yaml:"badge,omitempty"`
	SubItems []MenuSubItem `json:"sub_items,omitempty" yaml:"sub_items,omitempty"`
}

// MenuGroup is a labelled block of sidebar items.
type MenuGroup struct {
	ID    string     `json:"id" yaml:"id"`
	Label string     `json:"label" yaml:"label"`
	Items []MenuItem `json:"items" yaml:"items"`
}

// MenuSelection identifies the entries matching a request path.
type MenuSelection struct {
	GroupID string `json:"group_id,omitempty"`
	ItemID  string `json:"item_id,omitempty"`
	SubID   string `json:"sub_id,omitempty"`
}

// Found reports whether any item matched.
func (s MenuSelection) Found() bool { return s.ItemID != "" }

// DefaultMenu returns the sidebar of the admin dashboard.
func DefaultMenu() []MenuGroup {
	return []MenuGroup{
		{
			ID:    "main",
			Label: "Main",
			Items: []MenuItem{
				{ID: "dashboard", Label: "Dashboard", Icon: "pie-chart", Href: "/"},
			},
		},
		{
			ID:    "pages",
			Label: "Pages",
			Items: []MenuItem{
				{ID: "home", Label: "Home", Icon: "home", Href: "/pages/home"},
				{ID: "about-us", Label: "About Us", Icon: "file-text", Href: "/pages/about-us", Badge: "New"},
			},
		},
		{
			ID:    "management",
			Label: "Management",
			Items: []MenuItem{
				{
					ID:    "users",
					Label: "Users",
					Icon:  "users",
					SubItems: []MenuSubItem{
						{ID: "all-users", Label: "All Users", Icon: "list", Href: "/users/list"},
						{ID: "roles", Label: "Roles", Icon: "shield", Href: "/users/roles"},
					},
				},
				{ID: "products", Label: "Products", Icon: "package", Href: "/products/list"},
			},
		},
		{
			ID:    "settings",
			Label: "Settings",
			Items: []MenuItem{
				{ID: "preferences", Label: "Preferences", Icon: "settings", Href: "/settings/preferences"},
				{ID: "notifications", Label: "Notifications", Icon: "bell", Href: "/settings/notifications", Badge: "3"},
			},
		},
	}
}

// ActiveMenu resolves the entry for path. Exact matches win; otherwise the
// longest href that prefixes path is chosen. "/" only matches itself.
func ActiveMenu(groups []MenuGroup, path string) MenuSelection {
	path = normalizeMenuPath(path)
	var best MenuSelection
	bestLen := -1
	consider := func(href string, sel MenuSelection) {
		href = normalizeMenuPath(href)
		if href == "" {
			return
		}
		score := len(href)
		switch {
		case href == path:
			score = len(path) + 1
		case href == "/" || !strings.HasPrefix(path, href+"/"):
			return
		}
		if score > bestLen {
			best, bestLen = sel, score
		}
	}
	for _, group := range groups {
		for _, item := range group.Items {
			consider(item.Href, MenuSelection{GroupID: group.ID, ItemID: item.ID})
			for _, sub := range item.SubItems {
				consider(sub.Href, MenuSelection{GroupID: group.ID, ItemID: item.ID, SubID: sub.ID})
			}
		}
	}
	return best
}

func normalizeMenuPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

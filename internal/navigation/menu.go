// Package navigation computes the console menu's active section and
// breadcrumb from the current route.
package navigation

type Item struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Items []Item `json:"items"`
}

type Menu struct {
	Sections []Section `json:"sections"`
}

// DefaultMenu is the static menu tree of the admin console.
func DefaultMenu() Menu {
	return Menu{Sections: []Section{
		{ID: "ads", Label: "Classifieds", Items: []Item{
			{Label: "Ads", Route: "/ads"},
			{Label: "New ad", Route: "/ads/new"},
			{Label: "Applied jobs", Route: "/jobs/applied"},
		}},
		{ID: "business", Label: "Business", Items: []Item{
			{Label: "Businesses", Route: "/businesses"},
			{Label: "New business", Route: "/businesses/new"},
		}},
		{ID: "billing", Label: "Billing", Items: []Item{
			{Label: "Points", Route: "/points"},
			{Label: "Refunds", Route: "/refunds"},
			{Label: "New refund", Route: "/refunds/new"},
		}},
	}}
}

// State tracks section expansion. Every section starts collapsed; once the
// active route is known its section expands. User toggles then win until the
// route changes again.
type State struct {
	menu     Menu
	route    string
	expanded map[string]bool
}

func NewState(menu Menu) *State {
	return &State{
		menu:     menu,
		expanded: make(map[string]bool),
	}
}

// SetRoute records a route change. A changed route resets any user toggles
// and expands only the section containing the route.
func (s *State) SetRoute(route string) {
	if route == s.route {
		return
	}
	s.route = route
	s.expanded = make(map[string]bool)
	if sec, ok := s.ActiveSection(); ok {
		s.expanded[sec.ID] = true
	}
}

// Toggle flips a section open or closed, independent of the route.
func (s *State) Toggle(sectionID string) {
	s.expanded[sectionID] = !s.expanded[sectionID]
}

func (s *State) IsExpanded(sectionID string) bool {
	return s.expanded[sectionID]
}

// ActiveSection returns the section containing the current route.
func (s *State) ActiveSection() (Section, bool) {
	for _, sec := range s.menu.Sections {
		for _, item := range sec.Items {
			if item.Route == s.route {
				return sec, true
			}
		}
	}
	return Section{}, false
}

// Breadcrumb returns the section and item labels for the current route, or
// nil when the route is not in the menu.
func (s *State) Breadcrumb() []string {
	for _, sec := range s.menu.Sections {
		for _, item := range sec.Items {
			if item.Route == s.route {
				return []string{sec.Label, item.Label}
			}
		}
	}
	return nil
}

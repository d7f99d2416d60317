package content

// IconSet is a closed set of icon names with a fallback for unknown keys.
type IconSet struct {
	names    map[string]struct{}
	fallback string
}

func newIconSet(fallback string, names ...string) IconSet {
	set := IconSet{names: make(map[string]struct{}, len(names)), fallback: fallback}
	for _, n := range names {
		set.names[n] = struct{}{}
	}
	return set
}

// Resolve returns name when it is in the set, else the fallback.
func (s IconSet) Resolve(name string) string {
	if _, ok := s.names[name]; ok {
		return name
	}
	return s.fallback
}

var skillIconNames = []string{
	"Palette", "Code", "Users", "Search", "Lightbulb",
	"Zap", "BookOpen", "Star", "Calendar",
}

var (
	SkillCategoryIcons = newIconSet("Code", skillIconNames...)
	SoftSkillIcons     = newIconSet("Lightbulb", skillIconNames...)
	ContactIcons       = newIconSet("Mail", "Mail", "MapPin", "Coffee")
	HobbyIcons         = newIconSet("Coffee",
		"Calendar", "MapPin", "Coffee", "Gamepad2", "Camera",
		"Music", "Palette", "BookOpen", "Lightbulb",
	)
)

package domain

// DefaultIcon is returned for any icon identifier outside the known set.
const DefaultIcon = "question"

// IconOptions is the closed set of icon identifiers a category may use.
var IconOptions = []string{
	"money",
	"briefcase",
	"trend-up",
	"hamburger",
	"car",
	"shopping-cart",
	"file-text",
	"film-slate",
	"first-aid-kit",
	"book",
	"house",
	"airplane",
	"game-controller",
	"coffee",
	"pill",
	"graduation-cap",
	"wrench",
	"palette",
	"barbell",
	"pizza",
	"heart",
	"paw-print",
	"credit-card",
	"bus",
	"lightbulb",
}

// ColorOptions is the palette a category color must come from.
var ColorOptions = []string{
	"#ef4444",
	"#f59e0b",
	"#10b981",
	"#3b82f6",
	"#8b5cf6",
	"#ec4899",
	"#14b8a6",
	"#f43f5e",
	"#6366f1",
}

var iconSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(IconOptions))
	for _, icon := range IconOptions {
		s[icon] = struct{}{}
	}
	return s
}()

var colorSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(ColorOptions))
	for _, c := range ColorOptions {
		s[c] = struct{}{}
	}
	return s
}()

// ValidIcon reports whether name is in the known icon set.
func ValidIcon(name string) bool {
	_, ok := iconSet[name]
	return ok
}

// ValidColor reports whether hex is in the palette.
func ValidColor(hex string) bool {
	_, ok := colorSet[hex]
	return ok
}

// ResolveIcon maps a stored identifier to a renderable one. Unknown
// identifiers resolve to DefaultIcon, so rendering is total and stored
// data from older icon sets still displays.
func ResolveIcon(name string) string {
	if ValidIcon(name) {
		return name
	}
	return DefaultIcon
}

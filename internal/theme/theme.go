package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the browser chrome.
type Theme struct {
	Name string

	Primary lipgloss.Color
	Accent  lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	Disabled lipgloss.Color

	Surface     lipgloss.Color
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Secure is the shield shown before the address field.
	Secure   lipgloss.Color
	Selected lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
}

var themes = map[string]Theme{
	"default": Default,
	"nord":    Nord,
	"dracula": Dracula,
	"light":   Light,
}

var Default = Theme{
	Name:        "default",
	Primary:     lipgloss.Color("#3B82F6"),
	Accent:      lipgloss.Color("#F59E0B"),
	Text:        lipgloss.Color("#E2E8F0"),
	TextDim:     lipgloss.Color("#94A3B8"),
	Disabled:    lipgloss.Color("#475569"),
	Surface:     lipgloss.Color("#1E293B"),
	Border:      lipgloss.Color("#334155"),
	BorderFocus: lipgloss.Color("#3B82F6"),
	Secure:      lipgloss.Color("#22C55E"),
	Selected:    lipgloss.Color("#334155"),
	Error:       lipgloss.Color("#EF4444"),
	Warning:     lipgloss.Color("#F59E0B"),
	Info:        lipgloss.Color("#38BDF8"),
}

var Nord = Theme{
	Name:        "nord",
	Primary:     lipgloss.Color("#88C0D0"),
	Accent:      lipgloss.Color("#EBCB8B"),
	Text:        lipgloss.Color("#ECEFF4"),
	TextDim:     lipgloss.Color("#D8DEE9"),
	Disabled:    lipgloss.Color("#4C566A"),
	Surface:     lipgloss.Color("#3B4252"),
	Border:      lipgloss.Color("#434C5E"),
	BorderFocus: lipgloss.Color("#88C0D0"),
	Secure:      lipgloss.Color("#A3BE8C"),
	Selected:    lipgloss.Color("#434C5E"),
	Error:       lipgloss.Color("#BF616A"),
	Warning:     lipgloss.Color("#EBCB8B"),
	Info:        lipgloss.Color("#81A1C1"),
}

var Dracula = Theme{
	Name:        "dracula",
	Primary:     lipgloss.Color("#BD93F9"),
	Accent:      lipgloss.Color("#FFB86C"),
	Text:        lipgloss.Color("#F8F8F2"),
	TextDim:     lipgloss.Color("#BFBFBF"),
	Disabled:    lipgloss.Color("#6272A4"),
	Surface:     lipgloss.Color("#343746"),
	Border:      lipgloss.Color("#44475A"),
	BorderFocus: lipgloss.Color("#BD93F9"),
	Secure:      lipgloss.Color("#50FA7B"),
	Selected:    lipgloss.Color("#44475A"),
	Error:       lipgloss.Color("#FF5555"),
	Warning:     lipgloss.Color("#F1FA8C"),
	Info:        lipgloss.Color("#8BE9FD"),
}

var Light = Theme{
	Name:        "light",
	Primary:     lipgloss.Color("#2563EB"),
	Accent:      lipgloss.Color("#D97706"),
	Text:        lipgloss.Color("#1F2937"),
	TextDim:     lipgloss.Color("#6B7280"),
	Disabled:    lipgloss.Color("#D1D5DB"),
	Surface:     lipgloss.Color("#F3F4F6"),
	Border:      lipgloss.Color("#D1D5DB"),
	BorderFocus: lipgloss.Color("#2563EB"),
	Secure:      lipgloss.Color("#16A34A"),
	Selected:    lipgloss.Color("#E5E7EB"),
	Error:       lipgloss.Color("#DC2626"),
	Warning:     lipgloss.Color("#D97706"),
	Info:        lipgloss.Color("#0284C7"),
}

// Current is the active theme.
var Current = Default

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// List returns all available theme names, sorted.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

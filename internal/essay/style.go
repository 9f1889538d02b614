package essay

import "strings"

// Style is one of the fixed writing-style presets
type Style string

const (
	StyleAcademic      Style = "academic"
	StyleUniversity    Style = "university"
	StyleCollege       Style = "college"
	StyleHighSchool    Style = "high-school"
	StyleProfessional  Style = "professional"
	StyleResearchPaper Style = "research-paper"
)

// Styles lists every preset in display order
var Styles = []Style{
	StyleAcademic,
	StyleUniversity,
	StyleCollege,
	StyleHighSchool,
	StyleProfessional,
	StyleResearchPaper,
}

var styleLabels = map[Style]string{
	StyleAcademic:      "Academic",
	StyleUniversity:    "University",
	StyleCollege:       "College",
	StyleHighSchool:    "High School",
	StyleProfessional:  "Professional",
	StyleResearchPaper: "Research Paper",
}

// ParseStyle returns the preset named by s. Unknown and empty values are
// rejected, never defaulted.
func ParseStyle(s string) (Style, error) {
	st := Style(strings.TrimSpace(s))
	if !st.Valid() {
		return "", errMissingStyle
	}
	return st, nil
}

// Valid reports whether s is a recognised preset
func (s Style) Valid() bool {
	_, ok := styleLabels[s]
	return ok
}

// Label returns the human readable name, or the raw value for unknown styles
func (s Style) Label() string {
	if l, ok := styleLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Style) String() string {
	return string(s)
}

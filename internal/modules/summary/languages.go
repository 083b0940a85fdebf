package summary

import "strings"

// Language is a selectable summary language.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// DefaultLanguage is the code of the language summaries are drafted in.
const DefaultLanguage = "en"

// Languages lists the selectable summary languages in form order.
var Languages = []Language{
	{"English", "en"},
	{"Hindi", "hi"},
	{"Spanish", "es"},
	{"French", "fr"},
	{"German", "de"},
	{"Chinese", "zh"},
	{"Japanese", "ja"},
	{"Arabic", "ar"},
	{"Russian", "ru"},
	{"Portuguese", "pt"},
	{"Telugu", "te"},
}

// LanguageName returns the display name for a code; unknown codes are English.
func LanguageName(code string) string {
	for _, l := range Languages {
		if l.Code == code {
			return l.Name
		}
	}
	return "English"
}

// ParseLanguage accepts a code or a display name, case-insensitively.
func ParseLanguage(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLanguage, true
	}
	for _, l := range Languages {
		if strings.EqualFold(s, l.Code) || strings.EqualFold(s, l.Name) {
			return l.Code, true
		}
	}
	return "", false
}

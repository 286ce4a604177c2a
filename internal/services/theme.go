package services

import (
	"math/rand"

	"github.com/AnshRaj112/biography-backend/internal/models"
)

// BlockDecoration describes how a theme dresses every block on the grid.
type BlockDecoration struct {
	Corners  string `json:"corners"`
	Outlined bool   `json:"outlined"`
	Effect   string `json:"effect,omitempty"`
}

// Presentation is the render-only look of a profile.
type Presentation struct {
	Theme      models.Theme    `json:"theme"`
	Background string          `json:"background"`
	FontClass  string          `json:"fontClass"`
	Decoration BlockDecoration `json:"decoration"`
}

type themeLook struct {
	background string
	decoration BlockDecoration
}

var themeLooks = map[models.Theme]themeLook{
	models.ThemeMonochrome:  {"bg-[#0a0a0a] text-white", BlockDecoration{Corners: "2rem"}},
	models.ThemeSwiss:       {"bg-[#F4F4F4] text-black", BlockDecoration{Corners: "none", Outlined: true}},
	models.ThemeBrutalist:   {"bg-[#FFE4E1] text-black", BlockDecoration{Corners: "sm", Outlined: true}},
	models.ThemeGlass:       {"bg-gradient-to-br from-[#E0C3FC] via-[#8EC5FC] to-[#D9AFD9] text-white", BlockDecoration{Corners: "2rem"}},
	models.ThemeCyberpunk:   {"bg-[#050510] text-[#00f3ff]", BlockDecoration{Corners: "none"}},
	models.ThemeVaporwave:   {"bg-gradient-to-b from-[#ff71ce] to-[#01cdfe] text-white", BlockDecoration{Corners: "3xl"}},
	models.ThemeY2K:         {"bg-[radial-gradient(ellipse_at_center,_var(--tw-gradient-stops))] from-[#ff9a9e] to-[#fecfef] text-black", BlockDecoration{Corners: "3xl"}},
	models.ThemeTerminal:    {"bg-black text-[#33ff00]", BlockDecoration{Corners: "sm"}},
	models.ThemeWin95:       {"bg-[#008080] text-black", BlockDecoration{Corners: "none"}},
	models.ThemeGameboy:     {"bg-[#9bbc0f] text-[#0f380f]", BlockDecoration{Corners: "lg", Outlined: true}},
	models.ThemePaper:       {"bg-[#fdfbf7] text-[#2c2c2c]", BlockDecoration{Corners: "3xl"}},
	models.ThemeNeumorphism: {"bg-[#e0e5ec] text-[#4a4a4a]", BlockDecoration{Corners: "2.5rem"}},
	models.ThemeSunset:      {"bg-gradient-to-tr from-[#f6d365] to-[#fda085] text-white", BlockDecoration{Corners: "3xl"}},
	models.ThemeMidnight:    {"bg-[#0f172a] text-slate-300", BlockDecoration{Corners: "3xl"}},
	models.ThemeNature:      {"bg-[#dad7cd] text-[#344e41]", BlockDecoration{Corners: "3xl"}},
	models.ThemeBubblegum:   {"bg-[#ff9ff3] text-white", BlockDecoration{Corners: "3rem"}},
	models.ThemeBlueprint:   {"bg-[#0052cc] text-white", BlockDecoration{Corners: "3xl"}},
	models.ThemeComic:       {"bg-yellow-400 text-black", BlockDecoration{Corners: "3xl", Outlined: true}},
	models.ThemeSpace:       {"bg-[radial-gradient(ellipse_at_center,_var(--tw-gradient-stops))] from-gray-900 to-black text-white", BlockDecoration{Corners: "3xl"}},
	models.ThemeLuxury:      {"bg-[#050505] text-[#d4af37]", BlockDecoration{Corners: "none"}},
	models.ThemeMinecraft:   {"bg-[#3b2a1e] text-white font-mono", BlockDecoration{Corners: "none", Effect: "crafting"}},
	models.ThemeRoblox:      {"bg-[#b3e5fc] text-slate-800", BlockDecoration{Corners: "xl", Effect: "studs"}},
	models.ThemeFortnite:    {"bg-indigo-900 text-white", BlockDecoration{Corners: "none"}},
	models.ThemeMariokart:   {"bg-neutral-800 text-white", BlockDecoration{Corners: "xl", Effect: "item-box"}},
}

// FontClass maps the profile font to its CSS class; unknown fonts are sans.
func FontClass(f models.Font) string {
	switch f {
	case models.FontSerif:
		return "font-serif"
	case models.FontMono:
		return "font-mono"
	default:
		return "font-sans"
	}
}

// PresentationFor resolves a theme and font. Unknown themes render as
// monochrome.
func PresentationFor(theme models.Theme, font models.Font) Presentation {
	look, ok := themeLooks[theme]
	if !ok {
		theme = models.ThemeMonochrome
		look = themeLooks[theme]
	}
	return Presentation{
		Theme:      theme,
		Background: look.background,
		FontClass:  FontClass(font),
		Decoration: look.decoration,
	}
}

// RandomTheme picks a theme different from current.
func RandomTheme(current models.Theme) models.Theme {
	for {
		t := models.Themes[rand.Intn(len(models.Themes))]
		if t != current {
			return t
		}
	}
}

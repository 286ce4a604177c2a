package models

type Theme string

const (
	ThemeMonochrome  Theme = "monochrome"
	ThemeSwiss       Theme = "swiss"
	ThemeBrutalist   Theme = "brutalist"
	ThemeGlass       Theme = "glass"
	ThemeCyberpunk   Theme = "cyberpunk"
	ThemeVaporwave   Theme = "vaporwave"
	ThemeY2K         Theme = "y2k"
	ThemeTerminal    Theme = "terminal"
	ThemeWin95       Theme = "win95"
	ThemeGameboy     Theme = "gameboy"
	ThemePaper       Theme = "paper"
	ThemeNeumorphism Theme = "neumorphism"
	ThemeSunset      Theme = "sunset"
	ThemeMidnight    Theme = "midnight"
	ThemeNature      Theme = "nature"
	ThemeBubblegum   Theme = "bubblegum"
	ThemeBlueprint   Theme = "blueprint"
	ThemeComic       Theme = "comic"
	ThemeSpace       Theme = "space"
	ThemeLuxury      Theme = "luxury"
	ThemeMinecraft   Theme = "minecraft"
	ThemeRoblox      Theme = "roblox"
	ThemeFortnite    Theme = "fortnite"
	ThemeMariokart   Theme = "mariokart"
)

// Themes is the closed set of selectable themes.
var Themes = []Theme{
	ThemeMonochrome, ThemeSwiss, ThemeBrutalist, ThemeGlass,
	ThemeCyberpunk, ThemeVaporwave, ThemeY2K, ThemeTerminal,
	ThemeWin95, ThemeGameboy, ThemePaper, ThemeNeumorphism,
	ThemeSunset, ThemeMidnight, ThemeNature, ThemeBubblegum,
	ThemeBlueprint, ThemeComic, ThemeSpace, ThemeLuxury,
	ThemeMinecraft, ThemeRoblox, ThemeFortnite, ThemeMariokart,
}

func (t Theme) Valid() bool {
	for _, th := range Themes {
		if th == t {
			return true
		}
	}
	return false
}

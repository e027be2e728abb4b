package wow

const (
	RoleTank   = "tank"
	RoleHealer = "healer"
	RoleDps    = "dps"
)

var (
	RoleOrder = map[string]int{
		RoleTank:   0,
		RoleHealer: 1,
		RoleDps:    2,
	}

	// ClassColor maps the lower-cased playerDetails class token to the
	// standard class color, used by the chart renderer.
	ClassColor = map[string]string{
		"warrior":     "#C79C6E",
		"paladin":     "#F58CBA",
		"hunter":      "#ABD473",
		"rogue":       "#FFF569",
		"priest":      "#FFFFFF",
		"deathknight": "#C41F3B",
		"shaman":      "#0070DE",
		"mage":        "#69CCF0",
		"warlock":     "#9482C9",
		"monk":        "#00FF96",
		"druid":       "#FF7D0A",
		"demonhunter": "#A330C9",
		"evoker":      "#33937F",
	}
)

// ColorOf returns the class color, or a neutral grey for unknown tokens.
func ColorOf(class string) string {
	if c, ok := ClassColor[class]; ok {
		return c
	}
	return "#9D9D9D"
}

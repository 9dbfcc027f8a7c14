// Package assets holds the compiled-in data tables: creature types per
// template and the default progression schedule.
package assets

import "warren/internal/schedule"

// CreatureTables maps a template name to the creatures its levels can
// spawn. The "default" table backs any template without its own entry.
var CreatureTables = map[string][]schedule.Creature{
	"default": {
		{Key: "rat", Name: "Giant Rat"},
		{Key: "bat", Name: "Cave Bat"},
		{Key: "slime", Name: "Gray Slime"},
	},
	"forest": {
		{Key: "wolf", Name: "Timber Wolf"},
		{Key: "boar", Name: "Wild Boar"},
		{Key: "sprite", Name: "Thorn Sprite"},
		{Key: "bear", Name: "Black Bear"},
	},
	"cave": {
		{Key: "bat", Name: "Cave Bat"},
		{Key: "slime", Name: "Gray Slime"},
		{Key: "crawler", Name: "Rock Crawler"},
	},
	"maze": {
		{Key: "minotaur", Name: "Lesser Minotaur"},
		{Key: "shade", Name: "Corridor Shade"},
		{Key: "rat", Name: "Giant Rat"},
	},
	"warren": {
		{Key: "shade", Name: "Corridor Shade"},
		{Key: "stalker", Name: "Warren Stalker"},
	},
	"rooms": {
		{Key: "goblin", Name: "Goblin Skirmisher"},
		{Key: "orc", Name: "Orc Raider"},
		{Key: "rat", Name: "Giant Rat"},
	},
	"catacombs": {
		{Key: "skeleton", Name: "Brittle Skeleton"},
		{Key: "ghoul", Name: "Pale Ghoul"},
		{Key: "wraith", Name: "Grave Wraith"},
	},
}

// Creatures returns the table for template, falling back to the default
// table for unknown names.
func Creatures(template string) []schedule.Creature {
	if table, ok := CreatureTables[template]; ok {
		return table
	}
	return CreatureTables["default"]
}

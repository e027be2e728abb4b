package wow

// Difficulty tiers as the analytics service numbers them.
const (
	DifficultyNormal = 3
	DifficultyHeroic = 4
	DifficultyMythic = 5
)

// Table and event dataType values.
const (
	TableDebuffs       = "Debuffs"
	TableDamageDone    = "DamageDone"
	TableDamageTaken   = "DamageTaken"
	TableDeaths        = "Deaths"
	TableSurvivability = "Survivability"

	EventsInterrupts  = "Interrupts"
	EventsDebuffs     = "Debuffs"
	EventsDamageDone  = "DamageDone"
	EventsDamageTaken = "DamageTaken"
)

const (
	HostilityFriendlies = "Friendlies"
	HostilityEnemies    = "Enemies"
)

const (
	KillTypeAll        = "All"
	KillTypeEncounters = "Encounters"
	KillTypeKills      = "Kills"
	KillTypeWipes      = "Wipes"
)

package wow

import "sort"

type MetricKind string

const (
	MetricInterrupts    MetricKind = "interrupts"
	MetricDebuffUptime  MetricKind = "debuff_uptime"
	MetricDamageToActor MetricKind = "damage_to_actor"
	MetricDamageTaken   MetricKind = "damage_taken"
	MetricTable         MetricKind = "table_data"
	MetricMineTriggers  MetricKind = "mine_triggers"
	MetricBlastHits     MetricKind = "blast_hits"
)

// MetricConfig is one "what to measure" descriptor. Name must be unique
// within an encounter; zero values of the kind-specific fields mean the
// field does not apply to that kind.
type MetricConfig struct {
	Name       string     `json:"name"`
	Kind       MetricKind `json:"kind"`
	Roles      []string   `json:"roles,omitempty"` // empty = every role
	WipeCutoff int        `json:"wipe_cutoff,omitempty"`

	AbilityID int `json:"ability_id,omitempty"`

	// damage_to_actor
	TargetGameID int    `json:"target_game_id,omitempty"`
	Filter       string `json:"filter,omitempty"`

	// table_data
	DataType string `json:"data_type,omitempty"`
	KillType string `json:"kill_type,omitempty"`

	// mine_triggers
	TriggerAbilityID int   `json:"trigger_ability_id,omitempty"`
	BlastAbilityID   int   `json:"blast_ability_id,omitempty"`
	WindowMS         int64 `json:"window_ms,omitempty"`
	MinVictims       int   `json:"min_victims,omitempty"`

	// blast_hits
	GroupWindowMS int64 `json:"group_window_ms,omitempty"`
}

type Encounter struct {
	Slug        string
	Name        string
	Zone        string
	EncounterID int
	Difficulty  int

	Metrics []MetricConfig
}

var encounterMap = map[string]*Encounter{}

func init() {
	RegisterEncounter(&Encounter{
		Slug:        "sprocketmonger",
		Name:        "Sprocketmonger Lockenstock",
		Zone:        "Liberation of Undermine",
		EncounterID: 3013,
		Difficulty:  DifficultyMythic,
		Metrics: []MetricConfig{
			{
				Name:      "baboom-interrupts",
				Kind:      MetricInterrupts,
				AbilityID: 1216406, // Sonic Ba-Boom
			},
			{
				Name:             "wrong-mines",
				Kind:             MetricMineTriggers,
				TriggerAbilityID: 1216802, // Foot-Blaster (debuff on the stepper)
				BlastAbilityID:   1216803, // Foot-Blaster (detonation)
				WindowMS:         2000,
				MinVictims:       3,
			},
			{
				Name:           "polarization-hits",
				Kind:           MetricBlastHits,
				BlastAbilityID: 1217355, // Polarization Blast
				GroupWindowMS:  1500,
			},
			{
				Name:      "blazing-beam-uptime",
				Kind:      MetricDebuffUptime,
				AbilityID: 1216661, // Blazing Beam
			},
			{
				Name:       "wire-transfer-damage",
				Kind:       MetricDamageTaken,
				AbilityID:  1218418, // Wire Transfer
				WipeCutoff: 4,
			},
			{
				Name:         "pummeler-damage",
				Kind:         MetricDamageToActor,
				TargetGameID: 231214, // Mk II Pummeler
				Roles:        []string{RoleDps},
			},
			{
				Name:     "deaths",
				Kind:     MetricTable,
				DataType: TableDeaths,
			},
			{
				Name:     "survivability",
				Kind:     MetricTable,
				DataType: TableSurvivability,
			},
		},
	})

	RegisterEncounter(&Encounter{
		Slug:        "onearmedbandit",
		Name:        "The One-Armed Bandit",
		Zone:        "Liberation of Undermine",
		EncounterID: 3014,
		Difficulty:  DifficultyMythic,
		Metrics: []MetricConfig{
			{
				Name:      "payline-interrupts",
				Kind:      MetricInterrupts,
				AbilityID: 1219102, // Pay-Line surge
			},
			{
				Name:      "withering-flames-uptime",
				Kind:      MetricDebuffUptime,
				AbilityID: 1215921, // Withering Flames
				Roles:     []string{RoleTank, RoleHealer},
			},
			{
				Name:       "traveling-flames-damage",
				Kind:       MetricDamageTaken,
				AbilityID:  1219264, // Traveling Flames
				WipeCutoff: 4,
			},
			{
				Name:         "assistant-absorb-damage",
				Kind:         MetricDamageToActor,
				TargetGameID: 228458, // Reel Assistant
				Filter:       "absorbedDamage > 0",
			},
			{
				Name:     "deaths",
				Kind:     MetricTable,
				DataType: TableDeaths,
			},
			{
				Name:     "survivability",
				Kind:     MetricTable,
				DataType: TableSurvivability,
			},
		},
	})
}

// RegisterEncounter adds a definition to the lookup table. Call during
// program start only; the table is read-only once analysis begins.
func RegisterEncounter(e *Encounter) {
	encounterMap[e.Slug] = e
}

func FindEncounter(slug string) (*Encounter, bool) {
	e, ok := encounterMap[slug]
	return e, ok
}

// Encounters returns every registered definition, ordered by slug.
func Encounters() []*Encounter {
	out := make([]*Encounter, 0, len(encounterMap))
	for _, e := range encounterMap {
		out = append(out, e)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Slug < out[k].Slug })
	return out
}

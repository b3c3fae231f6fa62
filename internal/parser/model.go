package parser

// Roster is the normalized, display-ready form of one army list import. It
// is computed fresh on every import and persisted wholesale.
type Roster struct {
	Meta       Meta        `json:"meta" yaml:"meta"`
	ArmyRules  []ArmyRule  `json:"armyRules" yaml:"armyRules"`
	Detachment *Detachment `json:"detachment,omitempty" yaml:"detachment,omitempty"`
	Units      []Unit      `json:"units" yaml:"units"`
}

type Meta struct {
	Name        string `json:"name" yaml:"name"`
	Faction     string `json:"faction" yaml:"faction"`
	PointsUsed  int    `json:"pointsUsed" yaml:"pointsUsed"`
	PointsLimit int    `json:"pointsLimit" yaml:"pointsLimit"`
}

type Rule struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// ArmyRule is the faction-wide rule plus any named clusters of sub-rules
// that travel with it.
type ArmyRule struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	References  []ReferenceGroup `json:"references,omitempty" yaml:"references,omitempty"`
}

type ReferenceGroup struct {
	Name  string `json:"name" yaml:"name"`
	Rules []Rule `json:"rules" yaml:"rules"`
}

type Detachment struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Rules []Rule `json:"rules" yaml:"rules"`
}

type Unit struct {
	ID              string            `json:"id" yaml:"id"`
	Name            string            `json:"name" yaml:"name"`
	Category        string            `json:"category" yaml:"category"`
	Points          int               `json:"points" yaml:"points"`
	IsWarlord       bool              `json:"isWarlord" yaml:"isWarlord"`
	Stats           []Statline        `json:"stats" yaml:"stats"`
	Models          []Model           `json:"models" yaml:"models"`
	Abilities       map[string][]Rule `json:"abilities" yaml:"abilities"`
	Keywords        []string          `json:"keywords" yaml:"keywords"`
	FactionKeywords []string          `json:"factionKeywords" yaml:"factionKeywords"`
}

// Statline holds one "Unit" profile. Absent characteristics are empty.
type Statline struct {
	Name string `json:"name" yaml:"name"`
	M    string `json:"m" yaml:"m"`
	T    string `json:"t" yaml:"t"`
	SV   string `json:"sv" yaml:"sv"`
	W    string `json:"w" yaml:"w"`
	LD   string `json:"ld" yaml:"ld"`
	OC   string `json:"oc" yaml:"oc"`
}

type Model struct {
	Name         string        `json:"name" yaml:"name"`
	Count        int           `json:"count" yaml:"count"`
	Weapons      []Weapon      `json:"weapons" yaml:"weapons"`
	Wargear      []Wargear     `json:"wargear" yaml:"wargear"`
	Enhancements []Enhancement `json:"enhancements" yaml:"enhancements"`
}

// Weapon is a weapon group: one selectable weapon with one or more firing
// profiles (a ranged and a melee mode, several shot types, ...).
type Weapon struct {
	Name     string          `json:"name" yaml:"name"`
	Count    int             `json:"count" yaml:"count"`
	Profiles []WeaponProfile `json:"profiles" yaml:"profiles"`
}

type WeaponProfile struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Range    string   `json:"range" yaml:"range"`
	Attacks  string   `json:"attacks" yaml:"attacks"`
	Skill    string   `json:"skill" yaml:"skill"`
	Strength string   `json:"strength" yaml:"strength"`
	AP       string   `json:"ap" yaml:"ap"`
	Damage   string   `json:"damage" yaml:"damage"`
}

type Wargear struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

type Enhancement struct {
	Name        string `json:"name" yaml:"name"`
	Count       int    `json:"count" yaml:"count"`
	Points      int    `json:"points" yaml:"points"`
	Description string `json:"description" yaml:"description"`
}

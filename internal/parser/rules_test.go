package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
)

func TestCollectRules(t *testing.T) {
	root := withRules(withProfiles(
		sel("Captain", "model",
			withProfiles(sel("Relic Blade", "upgrade"), bsdata.Profile{
				Name: "Rites of Battle", TypeName: "Abilities", Characteristics: chars("Description", "Later text."),
			}),
		),
		unitProfile("Captain"),
		abilityProfile("Rites of Battle", "Earlier text."),
		bsdata.Profile{Name: "Iron Halo", TypeName: "Wargear", Characteristics: chars("Effect", "4+ invulnerable save.")},
		bsdata.Profile{Name: "Nameless", TypeName: "Abilities", Characteristics: chars("Description", "")},
		bsdata.Profile{Name: "", TypeName: "Abilities", Characteristics: chars("Description", "no name")},
	), bsdata.Rule{Name: "Deep Strike", Description: "Arrives from reserves."}, bsdata.Rule{Name: " "})

	rules, err := CollectRules(root)
	require.NoError(t, err)

	assert.Equal(t, []CollectedRule{
		{Name: "Deep Strike", Description: "Arrives from reserves.", TypeName: BucketAbilities},
		{Name: "Rites of Battle", Description: "Later text.", TypeName: "Abilities"},
		{Name: "Iron Halo", Description: "4+ invulnerable save.", TypeName: "Wargear"},
	}, rules, "later descriptions win, first positions are kept")
}

func TestCategorize(t *testing.T) {
	t.Parallel()
	c := NewCategorizer(DefaultVocabulary())

	tests := []struct {
		name string
		rule CollectedRule
		want []string
	}{
		{name: "invulnerable", rule: CollectedRule{Name: "Invulnerable Save", TypeName: "Abilities"}, want: []string{BucketInvuln}},
		{name: "invulnerable beats custom type", rule: CollectedRule{Name: "Storm Shield Invulnerable Save", TypeName: "Shield"}, want: []string{BucketInvuln}},
		{name: "damaged", rule: CollectedRule{Name: "Damaged: 1-5 Wounds Remaining", TypeName: "Abilities"}, want: []string{BucketDamaged}},
		{name: "leader", rule: CollectedRule{Name: "Leader", TypeName: "Abilities"}, want: []string{BucketLeader, BucketCore}},
		{name: "attached unit", rule: CollectedRule{Name: "While leading an Attached Unit", TypeName: "Abilities"}, want: []string{BucketLeader}},
		{name: "core prefix", rule: CollectedRule{Name: "Deep Strike", TypeName: "Abilities"}, want: []string{BucketCore}},
		{name: "core with suffix", rule: CollectedRule{Name: "Feel No Pain 5+", TypeName: "Abilities"}, want: []string{BucketCore}},
		{name: "faction exact", rule: CollectedRule{Name: "Oath of Moment", TypeName: "Abilities"}, want: []string{BucketFaction}},
		{name: "faction requires equality", rule: CollectedRule{Name: "Oath of Moment (Aura)", TypeName: "Abilities"}, want: []string{BucketAbilities}},
		{name: "weapon rule", rule: CollectedRule{Name: "Sustained Hits 1", TypeName: "Abilities"}, want: []string{BucketWeaponRules}},
		{name: "anti prefix", rule: CollectedRule{Name: "Anti-Infantry 4+", TypeName: "Abilities"}, want: []string{BucketWeaponRules}},
		{name: "custom profile type", rule: CollectedRule{Name: "Psychic Hood", TypeName: "Psychic Abilities"}, want: []string{"Psychic Abilities"}},
		{name: "wargear type", rule: CollectedRule{Name: "Iron Halo", TypeName: "Wargear"}, want: []string{BucketWargear}},
		{name: "default", rule: CollectedRule{Name: "Rites of Battle", TypeName: "Abilities"}, want: []string{BucketAbilities}},
		{name: "generic type is case-insensitive", rule: CollectedRule{Name: "Rites of Battle", TypeName: "abilities"}, want: []string{BucketAbilities}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Categorize(tt.rule))
		})
	}
}

func TestCategorize_ExactlyOneBucketExceptLeader(t *testing.T) {
	c := NewCategorizer(DefaultVocabulary())
	names := []string{"Invulnerable Save", "Damaged: 1-3", "Deep Strike", "Oath of Moment", "Lethal Hits", "Rites of Battle", "Leader"}
	for _, name := range names {
		got := c.Categorize(CollectedRule{Name: name, TypeName: "Abilities"})
		if name == "Leader" {
			assert.Len(t, got, 2, name)
			continue
		}
		assert.Len(t, got, 1, name)
	}
}

func TestNewCategorizerWith(t *testing.T) {
	c := NewCategorizerWith([]Matcher{{
		Label: "everything is core",
		Buckets: func(string, CollectedRule) []string {
			return []string{BucketCore}
		},
	}})
	assert.Equal(t, []string{BucketCore}, c.Categorize(CollectedRule{Name: "Invulnerable Save"}))

	empty := NewCategorizerWith(nil)
	assert.Equal(t, []string{BucketAbilities}, empty.Categorize(CollectedRule{Name: "Invulnerable Save"}))
}

func TestCleanLeaderText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			// scenario B
			name: "faction banner",
			in:   "- SPACE MARINES\nCan be attached to...\n■ Squad A",
			want: "Can be attached to...<br/>■ Squad A",
		},
		{
			name: "banner and stray bullet",
			in:   "This model can be attached to:\n- SPACE MARINES\n■\nIntercessor Squad",
			want: "This model can be attached to: ■<br/>Intercessor Squad",
		},
		{
			name: "bullet lines",
			in:   "This model can be attached to:\n■ Intercessor Squad\n■ Hellblaster Squad",
			want: "This model can be attached to:<br/>■ Intercessor Squad<br/>■ Hellblaster Squad",
		},
		{
			name: "mixed-case dash line is kept",
			in:   "Attach to:\n- Some squad",
			want: "Attach to:<br/>- Some squad",
		},
		{
			name: "blank lines and CRLF",
			in:   "Attach to:\r\n\r\n• Terminators",
			want: "Attach to:<br/>• Terminators",
		},
		{name: "only banners", in: "- ORKS\n- BOYZ", want: ""},
		{
			name: "dash lines without letters",
			in:   "-\nCan be attached to:\n-- 3\n■ Squad A",
			want: "Can be attached to:<br/>■ Squad A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CleanLeaderText(tt.in))
		})
	}
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, isPlaceholder(""))
	assert.True(t, isPlaceholder(" - "))
	assert.True(t, isPlaceholder("abcd"))
	assert.False(t, isPlaceholder("abcde"))
}

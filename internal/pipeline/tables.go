package pipeline

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// Tables holds the editable content banks the pipeline draws from: archetype
// one-liners, the flavor-text template bank, and the manual override table.
// They load from a YAML file when configured and fall back to the compiled
// defaults section by section.
type Tables struct {
	Archetypes     map[string]string            `yaml:"archetypes"`
	BenchmarkNames []string                     `yaml:"benchmark_names"`
	FlavorBank     map[string][]string          `yaml:"flavor_bank"`
	Overrides      map[string]map[string]string `yaml:"overrides"`
}

// LoadTables reads side tables from a YAML file. An empty path returns the
// compiled defaults; a file that omits a section inherits that section's
// default.
func LoadTables(path string) (*Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "tables: read file")
	}

	var loaded Tables
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, eris.Wrap(err, "tables: parse yaml")
	}

	if len(loaded.Archetypes) > 0 {
		t.Archetypes = loaded.Archetypes
	}
	if len(loaded.BenchmarkNames) > 0 {
		t.BenchmarkNames = loaded.BenchmarkNames
	}
	if len(loaded.FlavorBank) > 0 {
		t.FlavorBank = loaded.FlavorBank
	}
	if len(loaded.Overrides) > 0 {
		t.Overrides = loaded.Overrides
	}
	return t, nil
}

// ArchetypeFor returns the archetype flavor line for a record, or "" when no
// archetype applies. Benchmarks win over format-based matches.
func (t *Tables) ArchetypeFor(w *model.WorkoutRecord) string {
	category := strings.ToLower(w.Category)
	format := strings.ToLower(w.FormatDuration)
	name := strings.ToLower(w.Name)

	if strings.Contains(category, "benchmark") {
		return t.Archetypes["benchmark"]
	}
	for _, bench := range t.BenchmarkNames {
		if strings.Contains(name, bench) {
			return t.Archetypes["benchmark"]
		}
	}

	if strings.Contains(format, "amrap") || strings.Contains(category, "amrap") {
		return t.Archetypes["amrap"]
	}
	if strings.Contains(format, "emom") || strings.Contains(category, "emom") {
		return t.Archetypes["emom"]
	}

	for _, s := range []string{"strength", "weightlifting", "barbell"} {
		if strings.Contains(category, s) {
			for _, f := range []string{"sets", "reps", "rm", "1rm", "3rm", "5rm"} {
				if strings.Contains(format, f) {
					return t.Archetypes["strength"]
				}
			}
		}
	}
	return ""
}

// DefaultTables returns the compiled content banks.
func DefaultTables() *Tables {
	return &Tables{
		Archetypes: map[string]string{
			"benchmark": "Classic CrossFit benchmark testing endurance, grit, and pacing. Compare against past scores to measure progress.",
			"amrap":     "Push for maximum rounds in limited time. Focus on consistent pacing and efficient transitions.",
			"emom":      "Structured intervals where work starts each minute. Prioritize quality reps, recovery, and rhythm under the clock.",
			"strength":  "Emphasize progressive overload and form. Track weights and reps to build long-term capacity.",
		},
		BenchmarkNames: []string{
			"fran", "grace", "helen", "cindy", "karen", "diane", "elizabeth",
			"isabel", "jackie", "nancy", "annie", "eva", "kelly", "lynne",
			"mary", "nicole", "barbara", "chelsea", "amanda", "angie",
			"murph", "filthy fifty", "fight gone bad", "dt", "randy",
		},
		FlavorBank: map[string][]string{
			"interval_power": {
				"{name} – Short, punchy intervals that reward tight pacing and crisp transitions.",
				"{name} – Stay sharp each round; smooth reps and quick resets beat hero bursts.",
				"{name} – Control the early minutes and let clean movement carry you late.",
				"{name} – Manageable work, small windows; don’t waste time between stations.",
				"{name} – Interval-style intensity that tests composure under mounting fatigue.",
			},
			"amrap_mixed": {
				"{name} – A grinder; steady round times beat one big opening sprint.",
				"{name} – Chip away each round with smooth transitions and smart breaks.",
				"{name} – Treat it like a long fight: relaxed breathing, tidy movement, no panic.",
				"{name} – Volume adds up fast, so break early and stay moving.",
				"{name} – Pure mixed-modal engine work; consistency across rounds is the real score.",
			},
			"long_engine": {
				"{name} – An engine test; settle into a pace you can actually hold.",
				"{name} – Simple on paper, brutal if you disrespect the distance.",
				"{name} – Build aerobic grit with honest pacing and controlled breathing.",
				"{name} – Let patience do the work; speed only matters once you’re halfway in.",
				"{name} – Long, steady output; aim for a rhythm you could explain, not survive.",
			},
			"mixed_for_time": {
				"{name} – Classic for-time intensity: aggressive but controlled from the first rep.",
				"{name} – A straightforward suffer-fest; clean mechanics matter more than hero splits.",
				"{name} – Big sets, big fatigue; smart breaking keeps you moving when it hurts.",
				"{name} – Benchmark-style grit: push the clock without letting form fall apart.",
				"{name} – A full-body punch that rewards tidy technique and calm transitions.",
			},
			"bodyweight_travel": {
				"{name} – Minimal kit, maximum effort; proof you don’t need a full gym to hurt.",
				"{name} – Travel-friendly but far from easy; move well and keep the tempo high.",
				"{name} – Simple bodyweight work that turns anywhere into a training floor.",
				"{name} – Packs plenty of sting into a light, portable package.",
				"{name} – Clean, repeatable bodyweight work you can do in any environment.",
			},
			"strength_barbell": {
				"{name} – Heavy and honest; respect the bar and stay tidy under load.",
				"{name} – Strength-focused work that rewards patience, bracing, and clean positions.",
				"{name} – A chance to practice heavy lifts under fatigue without getting sloppy.",
				"{name} – Barbell-centric grind; control the setup, own every rep.",
				"{name} – Strength first, ego second; smooth bar paths beat ugly PR attempts.",
			},
			"skill_gymnastics": {
				"{name} – A skill-forward piece; keep mechanics clean and ego low.",
				"{name} – Great for gymnastic confidence; crisp positions beat big rep counts.",
				"{name} – Focused skill work that turns good positions into great habits.",
				"{name} – Technical but scalable; everyone can practice cleaner movement here.",
				"{name} – Less about winning the clock, more about earning better skills.",
			},
			"partner_team": {
				"{name} – Shared suffering; clean handovers and honest effort keep the team moving.",
				"{name} – Communication, trust, and tempo matter more than any single split.",
				"{name} – Perfect for sharpening teamwork under controlled chaos.",
				"{name} – Trade work, trade lungs; push hard while your partner watches.",
				"{name} – A team test where pacing and attitude are just as important as fitness.",
			},
			"benchmark_hero": {
				"{name} – A classic test of grit; pace with respect and move with intent.",
				"{name} – Heavy on history and effort; bring focus, not just bravado.",
				"{name} – A staple benchmark; use it to measure honest progress over time.",
				"{name} – A demanding piece that rewards steady pacing and uncompromising standards.",
				"{name} – Show up, move well, and let the workout speak for itself.",
			},
			"general_default": {
				"{name} – A well-rounded test of fitness that punishes sloppiness, not just slowness.",
				"{name} – Simple structure, plenty of sting; effort and discipline set the tone.",
				"{name} – A solid piece for building capacity without overcomplicating the session.",
				"{name} – Clean movement and sensible pacing will carry you further than heroics.",
				"{name} – Versatile enough for many levels, tough enough to stay interesting.",
			},
		},
		Overrides: map[string]map[string]string{
			"JT": {
				model.FieldMovementTypes:     "Gymnastics, Bodyweight",
				model.FieldDifficultyTier:    "Advanced",
				model.FieldInstructionsClean: "For time, complete 21-15-9 reps of handstand push-ups, ring dips, and push-ups. Finish all handstand push-ups of a round before moving to ring dips, then all ring dips before moving to push-ups.",
				model.FieldScalingOptions:    "Scale handstand push-ups to pike handstand push-ups or dumbbell strict press. Scale ring dips to banded ring dips or box dips. Scale push-ups to knee push-ups or elevated push-ups. Reduce the rep scheme to 15-12-9 or 12-9-6 for newer athletes.",
				model.FieldCoachNotes:        "This is a pure upper-body gymnastics smash. Break sets early to avoid complete muscular failure, especially on the handstand push-ups and ring dips. Keep transitions tight and move with purpose through the push-ups rather than sprinting the first round and stalling later.",
			},
			"Isabel": {
				model.FieldMovementTypes:     "Weightlifting",
				model.FieldDifficultyTier:    "Intermediate",
				model.FieldInstructionsClean: "For time, complete 30 snatches at the prescribed load. Athletes may power snatch or squat snatch. Choose a weight that allows quick singles or small sets while maintaining safe technique.",
				model.FieldScalingOptions:    "Reduce the load so you can perform technically sound singles or small sets throughout. Newer athletes can use hang power snatches or light power snatches and reduce to 20 reps if needed.",
				model.FieldCoachNotes:        "Treat this as a fast barbell sprint, not a max-effort strength test. Quick singles with consistent setup are often better than big touch-and-go sets that fall apart. Keep the bar close, brace before each pull, and avoid chasing the clock at the expense of form.",
			},
			"Angie": {
				model.FieldMovementTypes:     "Gymnastics, Bodyweight",
				model.FieldDifficultyTier:    "Intermediate",
				model.FieldInstructionsClean: "For time, complete 100 pull-ups, 100 push-ups, 100 sit-ups, and 100 air squats. Finish all reps of one movement before moving on to the next.",
				model.FieldScalingOptions:    "Reduce volume to 50 or 75 reps per movement for newer athletes. Scale pull-ups to banded pull-ups or ring rows, and push-ups to knee or elevated push-ups. Keep movement quality high as fatigue builds.",
				model.FieldCoachNotes:        "This is high-volume gymnastics. Break sets early and often to avoid hitting a wall, especially on pull-ups and push-ups. Keep transitions short and maintain a breathing rhythm on sit-ups and squats to stay moving.",
			},
			"Michael": {
				model.FieldMovementTypes:     "Monostructural, Bodyweight",
				model.FieldDifficultyTier:    "Intermediate",
				model.FieldInstructionsClean: "Three rounds for time of an 800-meter run, 50 back extensions, and 50 sit-ups. Complete all reps of each movement before progressing.",
				model.FieldScalingOptions:    "Shorten the run to 400–600 meters and reduce reps to 30–40 per movement for beginners. Back extensions can be scaled to supermans or good mornings with light load if a GHD is not available.",
				model.FieldCoachNotes:        "Set a sustainable pace from the first run and avoid sprinting early. Keep back extension range controlled and avoid aggressive hyperextension. Use the sit-ups to breathe and keep transitions tight between stations.",
			},
			"Kelly": {
				model.FieldMovementTypes:     "Monostructural, Weightlifting, Gymnastics",
				model.FieldDifficultyTier:    "Intermediate",
				model.FieldInstructionsClean: "Five rounds for time of a 400-meter run, 30 box jumps, and 30 wall-ball shots. Complete all reps of each movement before moving on.",
				model.FieldScalingOptions:    "Reduce to 3–4 rounds or lower the reps to 20 per movement. Shorten the run to 200–300 meters, use a lower box, and choose a lighter wall ball to maintain smooth, repeatable reps.",
				model.FieldCoachNotes:        "This is a longer grind. Find a sustainable run pace and keep box jumps and wall balls in small, controlled sets. Focus on safe landings, full hip extension, and consistent ball height rather than rushing the early rounds.",
			},
			"Bragg": {
				model.FieldMovementTypes:  "Weightlifting, Gymnastics, Monostructural",
				model.FieldDifficultyTier: "Intermediate",
				model.FieldScalingOptions: "Adjust loading so you can maintain clean reps under fatigue. Scale complex gymnastics to simpler pulling or pushing variations as needed, and reduce total rounds or reps for newer athletes.",
				model.FieldCoachNotes:     "Aim for consistent round times and tidy transitions between movements. Break sets before your form degrades and manage your breathing on any running or machine work built into the piece.",
			},
		},
	}
}

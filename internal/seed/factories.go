// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"bichar/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var personas = []models.Persona{
	models.PersonaKhalamma,
	models.PersonaHujur,
	models.PersonaToxicBoroBhai,
	models.PersonaRelationshipExpert,
}

var confessionTemplates = []string{
	"I told ammi I was at the library but I was at %s",
	"I skipped my cousin's wedding to watch %s",
	"I've been secretly learning %s instead of studying",
	"I ate the last %s and blamed my little brother",
	"I ghosted my tuition teacher for two weeks because of %s",
}

var judgmentsByPersona = map[models.Persona][]string{
	models.PersonaKhalamma: {
		"Ei ki shunlam! Tomar ammu jane?",
		"Dekho dekho, ajkalkar chele meye ra...",
		"Ami to shob janta, shudhu bolini.",
	},
	models.PersonaHujur: {
		"Astaghfirullah. Tobah koro, ekhoni.",
		"Beta, ei poth thik poth na.",
	},
	models.PersonaToxicBoroBhai: {
		"Eta kono kotha holo? Amar shomoy e emun hoto na.",
		"Tui ekta kaj o thik moto korte paris na.",
	},
	models.PersonaRelationshipExpert: {
		"Dekhen, ekhane communication er ovab spotoshto.",
		"Red flag na, eta puro red carpet.",
	},
}

var padoshiPool = []string{
	"Dekhso obostha?",
	"Ami agei bolsilam.",
	"Or baba ma janle ki bolbe?",
	"Amader somoy e eishob chilona.",
	"Biyer boyosh hoye gelo, ekhono ei obostha.",
}

// Factory builds confessions with plausible content and judgments.
type Factory struct {
	rng *rand.Rand
}

// NewFactory creates a Factory with its own randomness source.
func NewFactory() *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// BuildConfession constructs one confession without persisting it.
// CreatedAt is spread over the last maxDays days.
func (f *Factory) BuildConfession(maxDays int, overrides ...func(*models.Confession)) *models.Confession {
	persona := personas[f.rng.Intn(len(personas))]
	judgments := judgmentsByPersona[persona]

	score := f.rng.Intn(101)
	prob := f.rng.Intn(101)

	confession := &models.Confession{
		Content:             fmt.Sprintf(confessionTemplates[f.rng.Intn(len(confessionTemplates))], gofakeit.NounConcrete()),
		Persona:             persona,
		Judgment:            judgments[f.rng.Intn(len(judgments))],
		Likes:               f.rng.Intn(50),
		RedFlagScore:        &score,
		RedFlagExplanation:  gofakeit.Sentence(8),
		AmmiReaction:        "Hai hai, " + gofakeit.Sentence(4),
		PadoshiComments:     f.pickPadoshi(),
		MarriageProbability: &prob,
		MarriageReason:      gofakeit.Sentence(6),
	}

	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := f.rng.Intn(maxDays)
	minsBack := f.rng.Intn(24 * 60)
	confession.CreatedAt = time.Now().UTC().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(confession)
	}
	return confession
}

func (f *Factory) pickPadoshi() []string {
	n := 1 + f.rng.Intn(3)
	picks := make([]string, 0, n)
	seen := map[int]bool{}
	for len(picks) < n {
		i := f.rng.Intn(len(padoshiPool))
		if seen[i] {
			continue
		}
		seen[i] = true
		picks = append(picks, padoshiPool[i])
	}
	return picks
}

// Package judge generates persona-styled humorous judgments for confessions.
package judge

import (
	"fmt"

	"bichar/internal/models"
)

// personaPrompts describes the judging "voice" per persona.
var personaPrompts = map[models.Persona]string{
	models.PersonaKhalamma:           "Nosy Bangladeshi auntie. Sarcastic, dramatic, loves judging youngsters.",
	models.PersonaHujur:              "Strict but funny mosque elder. Suggests tobah, uses religious phrases humorously.",
	models.PersonaToxicBoroBhai:      "Arrogant area big brother. Street smart, condescending, funny advice.",
	models.PersonaRelationshipExpert: "Absurdly dramatic relationship guru. Over-the-top love advice.",
}

// moodPrompts modifies the judging tone per mood.
var moodPrompts = map[models.Mood]string{
	models.MoodGood:       "You are in a surprisingly good mood today, maybe you found a lost 500 taka note.",
	models.MoodSuspicious: "You are very suspicious, looking for any hidden lies in the confession.",
	models.MoodAngry:      "You are absolutely furious, like someone stole your last piece of Hilsha fish.",
}

const responseFormat = `Respond in Bengali (3-6 lines).
Format your response as a JSON object with:
{
  "judgment": "The main judgment text",
  "redFlagScore": 0-100,
  "redFlagExplanation": "Funny reason for the score",
  "ammiReaction": "Predict how a typical Bangladeshi mother would react",
  "padoshiComments": ["Comment 1", "Comment 2", "Comment 3"],
  "marriageProbability": 0-100,
  "marriageReason": "Funny reason for the probability"
}`

// SystemPrompt composes the fixed instruction variant for a persona/mood pair.
// Both inputs are expected to be normalized already; an unknown value still
// resolves to the default variant rather than an empty prompt.
func SystemPrompt(persona models.Persona, mood models.Mood) string {
	pp, ok := personaPrompts[persona]
	if !ok {
		pp = personaPrompts[models.DefaultPersona]
	}
	mp, ok := moodPrompts[mood]
	if !ok {
		mp = moodPrompts[models.DefaultMood]
	}
	return fmt.Sprintf("%s\nCurrent Mood: %s\n%s", pp, mp, responseFormat)
}

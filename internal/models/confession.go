// Package models contains data structures for the application's domain models.
package models

import "time"

// Persona is the fixed "voice" used to style a generated judgment.
type Persona string

const (
	PersonaKhalamma           Persona = "khalamma"
	PersonaHujur              Persona = "hujur"
	PersonaToxicBoroBhai      Persona = "toxic_boro_bhai"
	PersonaRelationshipExpert Persona = "relationship_expert"

	// DefaultPersona is the fallback for unrecognized persona values.
	DefaultPersona = PersonaKhalamma
)

// Personas lists every valid persona in a stable order.
var Personas = []Persona{
	PersonaKhalamma,
	PersonaHujur,
	PersonaToxicBoroBhai,
	PersonaRelationshipExpert,
}

// NormalizePersona resolves a free-form persona string against the enumerated
// set, falling back to DefaultPersona for unrecognized values.
func NormalizePersona(s string) Persona {
	for _, p := range Personas {
		if string(p) == s {
			return p
		}
	}
	return DefaultPersona
}

// Mood is the fixed modifier affecting generation tone, independent of persona.
type Mood string

const (
	MoodGood       Mood = "good"
	MoodSuspicious Mood = "suspicious"
	MoodAngry      Mood = "angry"

	// DefaultMood is the fallback for omitted or unrecognized moods.
	DefaultMood = MoodSuspicious
)

// Moods lists every valid judge mood in a stable order.
var Moods = []Mood{MoodGood, MoodSuspicious, MoodAngry}

// NormalizeMood resolves a free-form mood string, falling back to DefaultMood.
func NormalizeMood(s string) Mood {
	for _, m := range Moods {
		if string(m) == s {
			return m
		}
	}
	return DefaultMood
}

// ReactionType is a client-visible reaction. All types currently collapse to
// the same likes counter; the distinction is kept at the boundary only.
type ReactionType string

const (
	ReactionLaugh    ReactionType = "laugh"
	ReactionCry      ReactionType = "cry"
	ReactionFacepalm ReactionType = "facepalm"
)

// ValidReactionType reports whether s is one of the enumerated reaction types.
func ValidReactionType(s string) bool {
	switch ReactionType(s) {
	case ReactionLaugh, ReactionCry, ReactionFacepalm:
		return true
	}
	return false
}

// Confession is one user submission together with its generated judgment.
// Content and the generated fields are immutable after creation; only Likes
// is mutated, by reaction increments.
type Confession struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Content  string  `gorm:"type:text;not null" json:"content"`
	Persona  Persona `gorm:"type:varchar(32);not null" json:"persona"`
	Judgment string  `gorm:"type:text;not null" json:"judgment"`
	Likes    int     `gorm:"not null;default:0" json:"likes"`

	// Enrichment fields: all set together at creation or entirely absent.
	RedFlagScore        *int     `json:"redFlagScore,omitempty"`
	RedFlagExplanation  string   `gorm:"type:text" json:"redFlagExplanation,omitempty"`
	AmmiReaction        string   `gorm:"type:text" json:"ammiReaction,omitempty"`
	PadoshiComments     []string `gorm:"serializer:json;type:text" json:"padoshiComments,omitempty"`
	MarriageProbability *int     `json:"marriageProbability,omitempty"`
	MarriageReason      string   `gorm:"type:text" json:"marriageReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// DailyStat is the per-calendar-day counter of successful confession
// creations. Date is a UTC YYYY-MM-DD string, unique per row.
type DailyStat struct {
	ID    uint   `gorm:"primaryKey" json:"-"`
	Date  string `gorm:"type:varchar(10);not null;uniqueIndex" json:"date"`
	Count int    `gorm:"not null;default:0" json:"count"`
}

// DateKey formats t as the UTC calendar-date key used by DailyStat.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

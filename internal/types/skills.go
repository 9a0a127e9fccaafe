// Package types defines the shared data structures for the fit scoring engine.
package types

// SkillCategory classifies a skill entry in the dictionary.
type SkillCategory string

const (
	CategoryTechnical SkillCategory = "technical"
	CategorySoft      SkillCategory = "soft"
	CategoryLanguage  SkillCategory = "language"
	CategoryAcademic  SkillCategory = "academic"
	CategoryTool      SkillCategory = "tool"
)

// SkillEntry is a curated dictionary entry: a canonical skill name plus the
// surface forms it may appear under in free text. Entries are immutable once
// the dictionary is loaded.
type SkillEntry struct {
	Name     string        `json:"name" yaml:"name"`
	Category SkillCategory `json:"category" yaml:"category"`
	Variants []string      `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// Span marks a byte range in the original input text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Overlaps reports whether two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// ExtractionMethod records which extraction path produced a skill.
type ExtractionMethod string

const (
	MethodNER        ExtractionMethod = "ner"
	MethodDictionary ExtractionMethod = "dictionary"
	MethodBoth       ExtractionMethod = "both"
)

// ExtractedSkill is a single skill found in a piece of text, resolved to a
// dictionary entry. Produced per extraction call and not persisted.
type ExtractedSkill struct {
	Skill      string           `json:"skill"`
	Category   SkillCategory    `json:"category"`
	Span       Span             `json:"span"`
	Method     ExtractionMethod `json:"method"`
	Confidence float64          `json:"confidence"`
}

// SkillGap summarizes how extracted resume skills line up against the skills
// a job description asks for.
type SkillGap struct {
	Matched    []string `json:"matched"`
	Missing    []string `json:"missing"`
	Extra      []string `json:"extra"`
	MatchScore float64  `json:"match_score"` // percentage of job skills covered, 0-100
}

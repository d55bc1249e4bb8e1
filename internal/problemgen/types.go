package problemgen

// Problem is a generated practice question with its worked answer.
// It is immutable once returned by a generator.
type Problem struct {
	// Question is the prompt in plain text, e.g. "What is 345 + 278?".
	Question string `json:"question" yaml:"question"`

	// QuestionLaTeX is the same prompt typeset for rendering.
	QuestionLaTeX string `json:"questionLaTeX" yaml:"questionLaTeX"`

	// Answer is the canonical answer as a string: "623", "0.75", "3/4".
	Answer string `json:"answer" yaml:"answer"`

	// AnswerLaTeX is the typeset answer.
	AnswerLaTeX string `json:"answerLaTeX" yaml:"answerLaTeX"`

	// Steps is the ordered, human-readable derivation of the answer.
	Steps []string `json:"steps" yaml:"steps"`

	// Metadata always carries operation, difficulty and estimatedTime, plus
	// generator specific fields.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Metadata keys every problem carries.
const (
	MetaOperation     = "operation"
	MetaDifficulty    = "difficulty"
	MetaEstimatedTime = "estimatedTime"

	// MetaAnswerType holds the AnswerType of Problem.Answer when the
	// generator declares one.
	MetaAnswerType = "answerType"

	// MetaSamplingFallback is true when constrained sampling ran out of
	// attempts and filled values with its fallback.
	MetaSamplingFallback = "samplingFallback"
)

// Metadata is the open-ended metadata map of a Problem.
type Metadata map[string]any

// NewMetadata returns metadata with the required keys set.
func NewMetadata(operation string, difficulty Difficulty, estimatedTime string) Metadata {
	return Metadata{
		MetaOperation:     operation,
		MetaDifficulty:    string(difficulty),
		MetaEstimatedTime: estimatedTime,
	}
}

// String returns the string value stored under key, or "".
func (m Metadata) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Bool returns the bool value stored under key, or false.
func (m Metadata) Bool(key string) bool {
	b, _ := m[key].(bool)
	return b
}

// AnswerType describes the representation of the correct answer.
type AnswerType string

const (
	AnswerTypeInteger  AnswerType = "integer"  // e.g. "623", "-15"
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. "3.75", "0.5"
	AnswerTypeFraction AnswerType = "fraction" // e.g. "3/4", "7/2"
	AnswerTypeText     AnswerType = "text"     // compared case-insensitively
)

// Difficulty is the coarse difficulty label of a generator.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Descriptor is the static description of a generator. It is stored
// verbatim at construction and never changes.
type Descriptor struct {
	Name           string     `json:"name" yaml:"name"`
	Description    string     `json:"description" yaml:"description"`
	Category       string     `json:"category" yaml:"category"`
	Difficulty     Difficulty `json:"difficulty" yaml:"difficulty"`
	Icon           string     `json:"icon" yaml:"icon"`
	Tags           []string   `json:"tags" yaml:"tags"`
	GradeLevel     string     `json:"gradeLevel" yaml:"gradeLevel"`
	EstimatedTime  string     `json:"estimatedTime" yaml:"estimatedTime"`
	ExampleProblem Problem    `json:"exampleProblem" yaml:"exampleProblem"`
}

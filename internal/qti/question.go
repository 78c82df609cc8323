package qti

import "strings"

// Question is one parsed block of a plain-text question bank.
type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"` // raw token(s) after ANSWER:, e.g. "B" or "AC"
}

type QuestionType int

const (
	TypeUnknown        QuestionType = 0
	TypeMultipleChoice QuestionType = 1
	TypeMultipleAnswer QuestionType = 2
	TypeTrueFalse      QuestionType = 3
)

type Cardinality string

const (
	CardinalitySingle   Cardinality = "Single"
	CardinalityMultiple Cardinality = "Multiple"
)

// TypeFromCode maps the numeric selector used by the upload form.
// Any code outside 1..3 yields TypeUnknown and ok=false.
func TypeFromCode(code int) (QuestionType, bool) {
	switch QuestionType(code) {
	case TypeMultipleChoice, TypeMultipleAnswer, TypeTrueFalse:
		return QuestionType(code), true
	default:
		return TypeUnknown, false
	}
}

// TypeFromSelector reads a form value the way the browser client sends it:
// the leading integer of the trimmed string decides, trailing junk is ignored.
func TypeFromSelector(s string) (QuestionType, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	code, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if code < 1<<20 {
			code = code*10 + int(r-'0')
		}
		digits++
	}
	if digits == 0 || neg {
		return TypeUnknown, false
	}
	return TypeFromCode(code)
}

// Tag is the question_type metadata entry written for each item.
func (t QuestionType) Tag() string {
	switch t {
	case TypeMultipleChoice:
		return "multiple_choice_question"
	case TypeMultipleAnswer:
		return "multiple_answers_question"
	case TypeTrueFalse:
		return "true_false_question"
	default:
		return ""
	}
}

// ItemPrefix precedes the 1-based item index in the item ident.
func (t QuestionType) ItemPrefix() string {
	if tag := t.Tag(); tag != "" {
		return tag + "_"
	}
	return ""
}

func (t QuestionType) Cardinality() Cardinality {
	if t == TypeMultipleAnswer {
		return CardinalityMultiple
	}
	return CardinalitySingle
}

// Choices returns the options rendered for q under this type.
// True/false items always offer True and False.
func (t QuestionType) Choices(q Question) []string {
	if t == TypeTrueFalse {
		return []string{"True", "False"}
	}
	return q.Options
}

func (t QuestionType) String() string {
	switch t {
	case TypeMultipleChoice:
		return "multiple_choice"
	case TypeMultipleAnswer:
		return "multiple_answers"
	case TypeTrueFalse:
		return "true_false"
	default:
		return "unknown"
	}
}

// ChoiceIdent returns the identifier of the k-th (0-based) choice:
// A..Z, then AA, AB, ... for banks with more than 26 options.
func ChoiceIdent(k int) string {
	if k < 0 {
		return ""
	}
	var buf []byte
	for n := k + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}

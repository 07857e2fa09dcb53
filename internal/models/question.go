package models

// Question is a single catalog entry, supplied by the caller as opaque data
// and snapshotted into the session so grading stays stable even if the
// catalog changes later.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
}

// HasOption reports whether answer is one of the question's options.
func (q *Question) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}

// QuestionStat accumulates append-only counters per question.
type QuestionStat struct {
	QuestionID       string `json:"question_id"`
	TotalAttempts    int    `json:"total_attempts"`
	CorrectAttempts  int    `json:"correct_attempts"`
	TotalTimeSeconds int    `json:"total_time_seconds"`
}

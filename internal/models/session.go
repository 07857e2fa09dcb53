package models

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionFinished   SessionStatus = "finished"
	SessionCancelled  SessionStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s SessionStatus) Terminal() bool {
	return s == SessionFinished || s == SessionCancelled
}

type AnswerRecord struct {
	QuestionID string    `json:"question_id"`
	UserAnswer string    `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

type QuizSession struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Mode   string `json:"mode"`

	Questions    []Question     `json:"questions"`
	CurrentIndex int            `json:"current_index"`
	CorrectCount int            `json:"correct_count"`
	Answers      []AnswerRecord `json:"answers"`

	// TimeLimit is the per-question limit in seconds, 0 when untimed.
	TimeLimit      int        `json:"time_limit"`
	QuestionSentAt *time.Time `json:"question_sent_at"`

	Status    SessionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CurrentQuestion returns the question at CurrentIndex, or nil when the
// sequence is exhausted.
func (s *QuizSession) CurrentQuestion() *Question {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// TimedOut reports whether the current question's time limit has elapsed.
// Advisory only: callers decide whether to still accept a late answer, the
// session itself never auto-expires a question.
func (s *QuizSession) TimedOut(now time.Time) bool {
	if s.TimeLimit <= 0 || s.QuestionSentAt == nil {
		return false
	}
	return now.Sub(*s.QuestionSentAt) > time.Duration(s.TimeLimit)*time.Second
}

// QuizResult is what a finished session reports back to the caller.
type QuizResult struct {
	SessionID      string   `json:"session_id"`
	UserID         string   `json:"user_id"`
	Mode           string   `json:"mode"`
	CorrectCount   int      `json:"correct_count"`
	TotalQuestions int      `json:"total_questions"`
	ElapsedSeconds int      `json:"elapsed_seconds"`
	PointsEarned   int      `json:"points_earned"`
	BonusPoints    int      `json:"bonus_points"`
	Unlocked       []string `json:"unlocked,omitempty"`
	Rank           int      `json:"rank,omitempty"`
}

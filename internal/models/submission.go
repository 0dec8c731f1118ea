package models

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
	SubmissionSelected SubmissionStatus = "selected"
)

// MysterySubmission is a community-proposed mystery waiting for votes.
type MysterySubmission struct {
	Version         int              `json:"v"`
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Username        string           `json:"username"`
	Answer          string           `json:"answer"`
	Category        string           `json:"category"`
	MatchedCategory string           `json:"matched_category,omitempty"`
	Hints           []string         `json:"hints"`
	Votes           int              `json:"votes"`
	Voters          []string         `json:"voters"`
	SubmittedAt     int64            `json:"submitted_at"` // unix ms
	Status          SubmissionStatus `json:"status"`
}

// HasVoter reports whether userID already voted on this submission.
func (s *MysterySubmission) HasVoter(userID string) bool {
	for _, v := range s.Voters {
		if v == userID {
			return true
		}
	}
	return false
}

// SubmitMysteryRequest is the inbound payload for proposing a mystery.
type SubmitMysteryRequest struct {
	Answer   string   `json:"answer" validate:"required,notblank,max=80"`
	Category string   `json:"category" validate:"required,notblank,max=40"`
	Hints    []string `json:"hints" validate:"required,min=1,max=5,dive,notblank,max=120"`
}

// VoteMysteryRequest is the inbound payload for voting on a submission.
type VoteMysteryRequest struct {
	SubmissionID string `json:"submission_id" validate:"required"`
}

// SubmitGuessRequest is the inbound payload for a guess.
type SubmitGuessRequest struct {
	Guess string `json:"guess"`
}

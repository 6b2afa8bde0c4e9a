package models

// TriviaOption is one answer choice
type TriviaOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// TriviaQuestion is a gate question. CorrectOptionID is never serialized.
type TriviaQuestion struct {
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	Options         []TriviaOption `json:"options"`
	CorrectOptionID string         `json:"-"`
}

// TriviaAnswers is the participant's submission: question id -> option id
type TriviaAnswers struct {
	PhoneNumber string            `json:"phoneNumber" binding:"required,phone"`
	Answers     map[string]string `json:"answers" binding:"required,min=1"`
}

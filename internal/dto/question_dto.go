package dto

type QuestionItem struct {
	Question          string `json:"question"`
	UserUnderstanding string `json:"user_understanding"`
	Comment           string `json:"comment"`
}

type QuestionCategory struct {
	Category string         `json:"category"`
	Items    []QuestionItem `json:"items"`
}

type Questionnaire struct {
	Questions []QuestionCategory `json:"questions"`
}

type UpdateAnswersRequest struct {
	Questions []QuestionCategory `json:"questions" validate:"required,dive"`
}

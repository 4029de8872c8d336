package models

// ChatRequest is the inbound question payload.
type ChatRequest struct {
	Question string `json:"question"`
}

// Answer is the pipeline output returned to callers. When generation
// failed, Answer carries a safe fallback message and Succeeded is false.
type Answer struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Succeeded bool   `json:"success"`
}

// QuestionEvent is the payload carried on the inbound question stream.
type QuestionEvent struct {
	EventID  string `json:"event_id"`
	Question string `json:"question"`
}

// AnswerEvent is published on the outbound stream once a question has been
// answered.
type AnswerEvent struct {
	EventID   string `json:"event_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Succeeded bool   `json:"success"`
}

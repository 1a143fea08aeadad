package models

// Conversation is one chat thread with a counterpart user. LastMessage is
// a preview of the most recent message text, maintained by the message
// store on every send.
type Conversation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar,omitempty"`
	LastMessage string `json:"lastMessage,omitempty"`
}

// Message belongs to exactly one conversation. IDs come from a temporal
// source so they stay unique and monotonic within a session; Timestamp is
// unix milliseconds and orders messages within a conversation.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	Text           string `json:"text"`
	Timestamp      int64  `json:"timestamp"`
}

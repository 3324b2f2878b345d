package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Participant_Valid(t *testing.T) {
	req := require.New(t)
	req.Empty(Participant(ParticipantRequest{Name: "alice"}))
	req.Empty(Participant(ParticipantRequest{Name: "ALICE"}))
}

func Test_Participant_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		request ParticipantRequest
		message string
	}{
		{"missing name", ParticipantRequest{}, `"name" is required`},
		{"digits in name", ParticipantRequest{Name: "alice99"}, `"name" must contain only letters`},
		{"spaces in name", ParticipantRequest{Name: "alice smith"}, `"name" must contain only letters`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			violations := Participant(tt.request)
			req.Len(violations, 1)
			req.Equal(tt.message, violations[0])
		})
	}
}

func Test_Message_Valid(t *testing.T) {
	req := require.New(t)
	req.Empty(Message(MessageRequest{To: "Todos", Text: "hello", Type: "message"}))
	req.Empty(Message(MessageRequest{To: "alice", Text: "psst", Type: "private_message"}))
}

func Test_Message_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		request MessageRequest
		message string
	}{
		{"missing recipient", MessageRequest{Text: "hi", Type: "message"}, `"to" is required`},
		{"bad recipient", MessageRequest{To: "room-1", Text: "hi", Type: "message"}, `"to" must contain only letters`},
		{"empty text", MessageRequest{To: "alice", Type: "message"}, `"text" is required`},
		{"unknown type", MessageRequest{To: "alice", Text: "hi", Type: "shout"}, `"type" must be one of [message private_message]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			violations := Message(tt.request)
			req.Len(violations, 1)
			req.Equal(tt.message, violations[0])
		})
	}
}

func Test_Message_Collects_All_Violations(t *testing.T) {
	req := require.New(t)
	violations := Message(MessageRequest{})
	req.Len(violations, 3)
}

package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testTemplate = "Hi {user_name}, I saw your request for {request_title}. I'd be happy to help!"

func TestRenderMessage(t *testing.T) {
	tests := []struct {
		name   string
		author string
		title  string
		want   string
	}{
		{
			name:   "both fields present",
			author: "Dana",
			title:  "a logo design",
			want:   "Hi Dana, I saw your request for a logo design. I'd be happy to help!",
		},
		{
			name:  "missing author uses placeholder",
			title: "a logo design",
			want:  "Hi there, I saw your request for a logo design. I'd be happy to help!",
		},
		{
			name:   "missing title uses placeholder",
			author: "Dana",
			want:   "Hi Dana, I saw your request for your request. I'd be happy to help!",
		},
		{
			name: "both missing",
			want: "Hi there, I saw your request for your request. I'd be happy to help!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderMessage(testTemplate, tt.author, tt.title))
		})
	}
}

func TestRenderMessage_RepeatedSlots(t *testing.T) {
	got := RenderMessage("{user_name} {user_name}", "Sam", "")
	assert.Equal(t, "Sam Sam", got)
}

func TestRenderMessage_NoSlots(t *testing.T) {
	assert.Equal(t, "plain text", RenderMessage("plain text", "Dana", "Logo"))
}

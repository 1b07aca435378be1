package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	p := DefaultPersona()
	got := BuildPrompt(p, "hello")

	assert.True(t, strings.HasPrefix(got, "You are Miki, a cute mew-human hybrid cat. RULES: "))
	assert.Contains(t, got, "NEVER write 'You:' or pretend to be the user.")
	assert.Contains(t, got, "ONLY write ONE reply as Miki.\n")
	assert.Contains(t, got, "User message: hello\n")
	assert.True(t, strings.HasSuffix(got, "Miki:"))
	assert.NotContains(t, got, "favorite food")
}

func TestBuildPromptFoodHint(t *testing.T) {
	p := DefaultPersona()
	cases := []struct {
		msg  string
		want bool
	}{
		{"I like food", true},
		{"Food!", true},
		{"what's your fOoD", true},
		{"hello", false},
		{"fo od", false},
	}
	for _, c := range cases {
		t.Run(c.msg, func(t *testing.T) {
			got := BuildPrompt(p, c.msg)
			assert.Equal(t, c.want, strings.HasSuffix(got, "Miki: Your favorite food is Pizza."))
		})
	}
}

func TestFoodHintDisabled(t *testing.T) {
	p := DefaultPersona()
	p.HintKeyword = ""
	assert.Empty(t, FoodHint(p, "food"))
}

func TestFallbackReply(t *testing.T) {
	p := DefaultPersona()
	cases := []struct {
		msg  string
		want string
	}{
		{"hi", "Mew~ I'm sleeeeepy! hi"},
		{"0123456789abc", "Mew~ I'm sleeeeepy! 0123456789"},
		{"héllo wörld, kitty", "Mew~ I'm sleeeeepy! héllo wörl"},
	}
	for _, c := range cases {
		t.Run(c.msg, func(t *testing.T) {
			assert.Equal(t, c.want, FallbackReply(p, c.msg))
		})
	}
}

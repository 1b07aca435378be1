package chat

import (
	"fmt"
	"strings"
)

// Persona is the character the model plays.
type Persona struct {
	Name         string
	Description  string
	Tagline      string
	FavoriteFood string
	HintKeyword  string
	SleepyReply  string
}

// DefaultPersona is Miki.
func DefaultPersona() Persona {
	return Persona{
		Name:         "Miki",
		Description:  "a cute mew-human hybrid cat",
		Tagline:      "I'm silly but I leave paw prints on your heart",
		FavoriteFood: "Pizza",
		HintKeyword:  "food",
		SleepyReply:  "Mew~ I'm sleeeeepy!",
	}
}

// Generation bounds a single model call.
type Generation struct {
	MaxTokens   int
	Temperature float64
}

func DefaultGeneration() Generation {
	return Generation{MaxTokens: 150, Temperature: 0.8}
}

// BuildPrompt renders the role-play prompt for one user message. The food hint
// is appended when the message mentions the persona's hint keyword.
func BuildPrompt(p Persona, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s. ", p.Name, p.Description)
	b.WriteString("RULES: ")
	b.WriteString("1. ONLY respond to the user's message. ")
	b.WriteString("2. NEVER create new messages for the user. ")
	b.WriteString("3. NEVER write 'You:' or pretend to be the user. ")
	b.WriteString("4. NEVER continue the conversation script. ")
	fmt.Fprintf(&b, "5. ONLY write ONE reply as %s.\n", p.Name)
	fmt.Fprintf(&b, "User message: %s\n", message)
	fmt.Fprintf(&b, "%s:", p.Name)
	if hint := FoodHint(p, message); hint != "" {
		b.WriteString(" ")
		b.WriteString(hint)
	}
	return b.String()
}

// FoodHint returns the favorite-food clause if message contains the hint
// keyword, ignoring case.
func FoodHint(p Persona, message string) string {
	if p.HintKeyword == "" || p.FavoriteFood == "" {
		return ""
	}
	if !strings.Contains(strings.ToLower(message), strings.ToLower(p.HintKeyword)) {
		return ""
	}
	return fmt.Sprintf("Your favorite food is %s.", p.FavoriteFood)
}

// FallbackReply is what the pet says when no model is loaded: the sleepy line
// followed by the first ten characters of the message.
func FallbackReply(p Persona, message string) string {
	r := []rune(message)
	if len(r) > 10 {
		r = r[:10]
	}
	return p.SleepyReply + " " + string(r)
}

package twin

import (
	"fmt"
	"strings"

	"github.com/twinhq/twinforge/domain"
	"github.com/twinhq/twinforge/gateway"
)

// interviewSystemPrompt is the fixed interview script. It instructs the
// model to ask one focused question at a time and to emit the terminal
// phrase only once it has learned enough about the user.
func interviewSystemPrompt(terminalPhrase string) string {
	return fmt.Sprintf(`You are an AI assistant tasked with creating a personalized digital version of a user.
Begin with a warm greeting and explain that you will ask some questions about their life, work, experiences, and interests; start by asking their name.
Ask one focused question at a time, building on the user's answers. Keep responses brief and friendly, and never ask multiple questions in a single message.
Continue until you have learned enough about the user's background, personality, interests, professional life, and goals, or until the user says they are done.
Only then, send a final message that includes the exact text: %s`, terminalPhrase)
}

// extractionPrompt builds the single summarization prompt over the
// transcript. Missing sections must be marked "unknown" so every
// downstream consumer sees the same section set.
func extractionPrompt(messages []domain.Message) string {
	var b strings.Builder
	b.WriteString(`Summarize the user's responses into these sections:

1. Background: Age, job, key experiences, family, education.
2. Personality: Traits, communication style, values.
3. Interests: Hobbies, skills, favorite activities.
4. Professional: Current role, achievements, skills.
5. Goals: Short-term, long-term, growth areas.

Note "unknown" if details are missing. Use markdown headers.

Conversation:
`)
	b.WriteString(renderTranscript(messages))
	return b.String()
}

// compilePrompt asks the model to turn the normalized profile text into
// the persona's system prompt.
func compilePrompt(profileText string) string {
	return fmt.Sprintf(`Based on the following user information, create a configuration for a language model to represent the user in conversations. The configuration should include:

1. A brief description of the user's personality, background, and key traits.
2. Important areas of expertise or interests.
3. The user's communication style and tone.
4. Any specific instructions for the model when engaging in conversations as this user.

User Information:
%s`, profileText)
}

// personaSystemPrompt builds the system message for answering as the
// user's digital version, using the stored transcript as few-shot
// context.
func personaSystemPrompt(persona *domain.PersonaConfig, messages []domain.Message) string {
	var b strings.Builder
	b.WriteString("You are a digital version of a person and someone is talking to you now. You have to behave as if you are the person. Your configuration is:\n\n")
	b.WriteString(persona.SystemPrompt)
	if transcript := renderTranscript(messages); transcript != "" {
		b.WriteString("\n\nYou also have some sample conversations with the real person:\n\n")
		b.WriteString(transcript)
	}
	b.WriteString("\n\nAnswer any questions about the person as if you were them, using the information provided. Keep the replies human-like, and be short unless it's necessary to be longer.")
	return b.String()
}

// renderTranscript flattens user/assistant turns into "ROLE: content"
// lines. System messages never make it into derived prompts.
func renderTranscript(messages []domain.Message) string {
	var lines []string
	for _, m := range messages {
		if m.Role == domain.RoleSystem {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(m.Role), m.Content))
	}
	return strings.Join(lines, "\n\n")
}

// transcriptPrompt converts the stored transcript into the gateway wire
// format, prefixed with the given system prompt.
func transcriptPrompt(systemPrompt string, messages []domain.Message) []gateway.ChatMessage {
	prompt := make([]gateway.ChatMessage, 0, len(messages)+1)
	prompt = append(prompt, gateway.ChatMessage{Role: domain.RoleSystem, Content: systemPrompt})
	for _, m := range messages {
		prompt = append(prompt, gateway.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return prompt
}

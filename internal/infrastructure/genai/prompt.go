package genai

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
)

// Prompt is the fixed framing sent with every ticket. It can be replaced
// from a YAML file without rebuilding.
type Prompt struct {
	System       string   `yaml:"system"`
	Role         string   `yaml:"role"`
	Task         string   `yaml:"task"`
	Instructions []string `yaml:"instructions"`
	Closing      string   `yaml:"closing"`
}

// DefaultPrompt returns the built-in IT support prompt.
func DefaultPrompt() Prompt {
	return Prompt{
		System: "You are an expert IT support assistant.",
		Role:   "You are a professional IT support assistant.",
		Task: "Your task is to generate a detailed resolution guide for a user-submitted IT ticket.\n" +
			"Use the information below and be specific, clear, and concise.",
		Instructions: []string{
			"Begin with a short acknowledgment.",
			"Provide a **step-by-step** solution to resolve the issue.",
			"Mention safety/backup precautions if necessary.",
			"Keep the language user-friendly.",
			"If it cannot be resolved without expert help, mention that and suggest next steps.",
		},
		Closing: "Now, write the resolution:",
	}
}

// LoadPrompt reads a prompt override. Fields left empty in the file keep
// their built-in values.
func LoadPrompt(path string) (Prompt, error) {
	prompt := DefaultPrompt()
	if path == "" {
		return prompt, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Prompt{}, fmt.Errorf("read prompt file: %w", err)
	}

	var override Prompt
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Prompt{}, fmt.Errorf("parse prompt file %s: %w", path, err)
	}

	if override.System != "" {
		prompt.System = override.System
	}
	if override.Role != "" {
		prompt.Role = override.Role
	}
	if override.Task != "" {
		prompt.Task = override.Task
	}
	if len(override.Instructions) > 0 {
		prompt.Instructions = override.Instructions
	}
	if override.Closing != "" {
		prompt.Closing = override.Closing
	}

	return prompt, nil
}

// Render builds the user message for one ticket.
func (p Prompt) Render(req ticket.ResolutionRequest) string {
	var b strings.Builder

	b.WriteString(p.Role)
	b.WriteString("\n\n")
	b.WriteString(p.Task)
	b.WriteString("\n\nTICKET DETAILS:\n---------------\n")
	fmt.Fprintf(&b, "Type: %s\n", req.TicketType)
	fmt.Fprintf(&b, "Priority: %s\n", req.Priority)
	fmt.Fprintf(&b, "Subject: %s\n\n", req.Subject)
	b.WriteString("Description:\n")
	b.WriteString(req.Body)
	b.WriteString("\n\nInstructions:\n-------------\n")
	for i, instruction := range p.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, instruction)
	}
	b.WriteString("\n")
	b.WriteString(p.Closing)
	b.WriteString("\n")

	return b.String()
}

// Package agent runs an interactive assistant grounded on simulation
// reports: the reports are injected as context, so the model answers about
// the numbers actually computed instead of hallucinating market history.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// NewAnalyst creates the expert that reads simulation reports. The reports
// are markdown documents produced by the renderer; they become the system
// context of the chat.
func NewAnalyst(reports ...string) *Expert {
	instruction := `You are an analyst for historical dividend and return simulations.
You are given one or more simulation reports below. Every number you state
must come from these reports; when a question cannot be answered from them,
say so and suggest which simulation to run instead. These are historical
simulations, never investment advice, and you must say so when asked to
predict or recommend.

` + strings.Join(reports, "\n\n---\n\n")

	return &Expert{
		Name:        "Analyst",
		Description: "Reads the simulation reports and answers questions about their figures.",
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
		},
	}
}

// Agent is the interactive session around one expert.
type Agent struct {
	w      io.Writer
	r      *bufio.Reader
	Expert *Expert
}

// New creates an agent writing its output to w and reading user input from r.
func New(w io.Writer, r io.Reader, expert *Expert) *Agent {
	return &Agent{w: w, r: bufio.NewReader(r), Expert: expert}
}

const prompt = "dsim> "

// Run starts the REPL. Initial prompts are consumed before reading from the
// user, so a one-shot question can be passed on the command line.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if err := a.Expert.Start(ctx, client); err != nil {
		return err
	}

	fmt.Fprintln(a.w, "Ask about your simulations. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Expert.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}

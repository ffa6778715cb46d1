package voice

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Chooser picks one of several labelled options and returns its 0-based
// index. topic names what is being chosen and is only used for display.
type Chooser interface {
	Choose(topic string, options []string) (int, error)
}

// ChooserFunc adapts a plain function to the Chooser interface.
type ChooserFunc func(topic string, options []string) (int, error)

func (f ChooserFunc) Choose(topic string, options []string) (int, error) {
	return f(topic, options)
}

// FixedChooser always answers with the same 1-based choice, as if the
// operator had typed it at the prompt.
type FixedChooser int

func (c FixedChooser) Choose(_ string, options []string) (int, error) {
	n := int(c)
	if n < 1 || n > len(options) {
		return 0, &InvalidSelectionError{Input: strconv.Itoa(n), Count: len(options)}
	}
	return n - 1, nil
}

// PromptChooser shows a numbered menu on Out and reads a single answer from
// In. There is no re-prompt: anything other than a number in range fails.
type PromptChooser struct {
	In  io.Reader
	Out io.Writer
}

func (p *PromptChooser) Choose(topic string, options []string) (int, error) {
	fmt.Fprintf(p.Out, "\nMultiple voices found for %s:\n", topic)
	for i, opt := range options {
		fmt.Fprintf(p.Out, "%d. %s\n", i+1, opt)
	}
	fmt.Fprintf(p.Out, "\nEnter the number of the voice you want to use (1-%d): ", len(options))

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to read choice: %w", err)
	}
	answer := strings.TrimSpace(line)

	n, convErr := strconv.Atoi(answer)
	if convErr != nil {
		return 0, &InvalidSelectionError{Input: answer, Count: len(options), Err: convErr}
	}
	if n < 1 || n > len(options) {
		return 0, &InvalidSelectionError{Input: answer, Count: len(options)}
	}
	return n - 1, nil
}

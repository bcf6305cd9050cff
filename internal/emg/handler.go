package emg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// LineHandler runs an arbitrary capture command and parses each line of
// its output as one batch of amplitude samples. Values on a line may be
// separated by commas, semicolons or whitespace, which covers the common
// serial dump formats.
type LineHandler struct {
	command string
	args    []string
}

// NewLineHandler creates a handler running the given capture command.
func NewLineHandler(command string, args ...string) (*LineHandler, error) {
	if command == "" {
		return nil, errors.New("capture command is required")
	}
	return &LineHandler{command: command, args: args}, nil
}

// Cmd builds the capture command bound to ctx.
func (h *LineHandler) Cmd(ctx context.Context) *exec.Cmd {
	return exec.CommandContext(ctx, h.command, h.args...)
}

// Parse converts one output line into a sample batch. Lines with no
// values are skipped silently.
func (h *LineHandler) Parse(line string, batches chan<- Batch) error {
	fields := strings.FieldsFunc(line, isSeparator)
	if len(fields) == 0 {
		return nil
	}

	batch := make(Batch, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("parsing amplitude %q: %w", field, err)
		}
		batch = append(batch, v)
	}

	batches <- batch
	return nil
}

// Source returns the capture command name.
func (h *LineHandler) Source() string {
	return h.command
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t'
}

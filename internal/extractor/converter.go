package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/minutes-flow/pkg/executor"
)

// InputPlaceholder in converter args is replaced by the document path.
const InputPlaceholder = "{input}"

// CommandConverter runs a text-extraction binary (antiword, catdoc, ...) that
// prints the document's text to stdout.
type CommandConverter struct {
	exec   executor.Executor
	binary string
	args   []string
}

// NewCommandConverter creates a converter for binary. args may reference InputPlaceholder;
// when none does, the path is appended as the last argument.
func NewCommandConverter(exec executor.Executor, binary string, args []string) *CommandConverter {
	return &CommandConverter{exec: exec, binary: binary, args: args}
}

func (c *CommandConverter) Convert(ctx context.Context, path string) (string, error) {
	if c.binary == "" {
		return "", fmt.Errorf("%w: no converter binary configured", ErrConversionUnavailable)
	}
	if _, err := c.exec.LookPath(c.binary); err != nil {
		return "", fmt.Errorf("%w: %s not found: %v", ErrConversionUnavailable, c.binary, err)
	}

	out, err := c.exec.Execute(ctx, c.binary, c.buildArgs(path)...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	return out, nil
}

func (c *CommandConverter) buildArgs(path string) []string {
	args := make([]string, 0, len(c.args)+1)
	replaced := false
	for _, a := range c.args {
		if strings.Contains(a, InputPlaceholder) {
			a = strings.ReplaceAll(a, InputPlaceholder, path)
			replaced = true
		}
		args = append(args, a)
	}
	if !replaced {
		args = append(args, path)
	}
	return args
}

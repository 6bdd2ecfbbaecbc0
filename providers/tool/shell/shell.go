// Package shell provides the run_command and eval_code tools. Both execute
// out-of-band from the dispatch core; their failures flow back into the
// conversation as ordinary tool messages.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/parley-ai/parley/providers/tool"
)

// RunCommandInput carries the shell command line to execute.
type RunCommandInput struct {
	Command string `json:"command" jsonschema:"description=Shell command to run,required"`
}

// RunCommandOutput carries the captured output and exit code.
type RunCommandOutput struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

// NewRunCommandTool returns the run_command tool.
func NewRunCommandTool() *tool.Tool[RunCommandInput, RunCommandOutput] {
	return tool.NewTool("run_command", "Run a shell command", RunCommand)
}

// RunCommand executes input.Command through the shell, honoring ctx for
// cancellation. A non-zero exit is reported in the output, not as an error,
// so the model sees stderr.
func RunCommand(ctx context.Context, input RunCommandInput) (RunCommandOutput, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", input.Command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := RunCommandOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, err
	}
	return output, nil
}

// EvalCodeInput carries a Go source snippet (a complete main package).
type EvalCodeInput struct {
	Code string `json:"code" jsonschema:"description=Complete Go main package source to compile and run,required"`
}

// EvalCodeOutput carries the program's output and exit code.
type EvalCodeOutput struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

// NewEvalCodeTool returns the eval_code tool.
func NewEvalCodeTool() *tool.Tool[EvalCodeInput, EvalCodeOutput] {
	return tool.NewTool("eval_code", "Compile and run a Go code snippet", EvalCode)
}

// EvalCode writes input.Code to a temporary main.go and runs it with
// `go run`. Compilation failures surface on stderr with a non-zero exit.
func EvalCode(ctx context.Context, input EvalCodeInput) (EvalCodeOutput, error) {
	dir, err := os.MkdirTemp("", "parley-eval-*")
	if err != nil {
		return EvalCodeOutput{}, err
	}
	defer os.RemoveAll(dir)

	source := filepath.Join(dir, "main.go")
	if err := os.WriteFile(source, []byte(input.Code), 0o644); err != nil {
		return EvalCodeOutput{}, err
	}

	result, err := RunCommand(ctx, RunCommandInput{Command: "go run " + source})
	return EvalCodeOutput(result), err
}

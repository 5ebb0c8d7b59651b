package narrative

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ohare93/onboard/internal/roster"
)

// DefaultCommand runs the claude CLI headless, reading the prompt from stdin
var DefaultCommand = []string{"claude", "--disable-slash-commands", "-p", "-"}

// CommandProvider runs a local LLM CLI, piping the prompt through stdin
// and reading the reply from stdout
type CommandProvider struct {
	argv []string
	dir  string
}

// NewCommandProvider creates a provider for argv; an empty argv uses DefaultCommand
func NewCommandProvider(argv []string, dir string) *CommandProvider {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	return &CommandProvider{argv: append([]string(nil), argv...), dir: dir}
}

// Available reports whether the command can be found on PATH
func (p *CommandProvider) Available() bool {
	_, err := exec.LookPath(p.argv[0])
	return err == nil
}

// Analyze asks for a JSON insight
func (p *CommandProvider) Analyze(ctx context.Context, e roster.Employee) (Insight, error) {
	out, err := p.run(ctx, analysisSystemPrompt+"\n\n"+AnalysisPrompt(e))
	if err != nil {
		return Insight{}, err
	}
	return parseInsight(out)
}

// SummarizeMarket asks for a free-text summary
func (p *CommandProvider) SummarizeMarket(ctx context.Context, employees []roster.Employee) (string, error) {
	out, err := p.run(ctx, marketSystemPrompt+"\n\n"+MarketPrompt(employees))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (p *CommandProvider) run(ctx context.Context, prompt string) (string, error) {
	cmd := exec.CommandContext(ctx, p.argv[0], p.argv[1:]...)
	if p.dir != "" {
		cmd.Dir = p.dir
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start %s: %w", p.argv[0], err)
	}

	go func() {
		defer stdin.Close()
		io.WriteString(stdin, prompt)
	}()

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%s timed out: %w", p.argv[0], ctx.Err())
		}
		return "", fmt.Errorf("%s failed: %w: %s", p.argv[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

package agent

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/config"
)

const defaultModel = "gemini-2.0-flash"

// Agent wraps a Gemini client for the two things the CLI does: turning
// natural-language requests into SQL, and rewriting files on instruction.
type Agent struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Agent, error) {
	if cfg.Agent.APIKey == "" {
		return nil, fmt.Errorf("agent API key is required (set ORCHIDS_AGENT_API_KEY)")
	}

	model := cfg.Agent.Model
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.Agent.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Agent{client: client, model: model, log: log}, nil
}

// SQLResult is one natural-language-to-SQL round trip.
type SQLResult struct {
	Raw string // full model response, kept for --verbose inspection
	SQL string // extracted statement
}

// GenerateSQL asks the model for a single SQL statement answering request,
// with the schema summary embedded so table and column names are real.
func (a *Agent) GenerateSQL(ctx context.Context, schema, request string) (*SQLResult, error) {
	var b strings.Builder
	b.WriteString("You translate natural-language requests into SQL for a music library database.\n\n")
	b.WriteString("Database schema with sample values:\n")
	b.WriteString(schema)
	b.WriteString("\nRequest: ")
	b.WriteString(request)
	b.WriteString("\n\nReply with exactly one SQL statement inside a ```sql fenced block. No commentary.")

	raw, err := a.generate(ctx, b.String())
	if err != nil {
		return nil, err
	}

	sql := ExtractSQL(raw)
	if sql == "" {
		return nil, fmt.Errorf("no SQL statement in model response")
	}

	a.log.Debug("SQL generated",
		zap.String("model", a.model),
		zap.Int("response_bytes", len(raw)))
	return &SQLResult{Raw: raw, SQL: sql}, nil
}

// EditFile rewrites path according to instruction. The original content is
// written to a .bak sibling before the file is touched; a failed write puts
// the original back and keeps the backup for inspection.
func (a *Agent) EditFile(ctx context.Context, path, instruction string) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	mode := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}

	var b strings.Builder
	b.WriteString("Rewrite the following file according to the instruction.\n\n")
	fmt.Fprintf(&b, "Instruction: %s\n\n", instruction)
	fmt.Fprintf(&b, "File %s:\n```\n%s\n```\n\n", path, original)
	b.WriteString("Reply with the complete updated file content in a single fenced block. No commentary.")

	raw, err := a.generate(ctx, b.String())
	if err != nil {
		return err
	}

	updated := StripFences(raw)
	if strings.TrimSpace(updated) == "" {
		return fmt.Errorf("model returned empty content for %s", path)
	}
	if !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}

	backup := path + ".bak"
	if err := os.WriteFile(backup, original, mode); err != nil {
		return fmt.Errorf("backup %s: %w", backup, err)
	}

	if err := os.WriteFile(path, []byte(updated), mode); err != nil {
		if restoreErr := os.WriteFile(path, original, mode); restoreErr != nil {
			a.log.Error("Restore after failed write also failed",
				zap.String("path", path),
				zap.String("backup", backup),
				zap.Error(restoreErr))
		}
		return fmt.Errorf("write %s: %w", path, err)
	}

	a.log.Info("File rewritten",
		zap.String("path", path),
		zap.String("backup", backup),
		zap.Int("bytes", len(updated)))
	return nil
}

func (a *Agent) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", a.model)
	}
	return text, nil
}

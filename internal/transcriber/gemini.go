package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/clipnamer/internal/logger"
	"google.golang.org/genai"
)

const defaultGeminiPrompt = `Transcribe the speech in this audio clip verbatim in its original language.
Return only the spoken words as plain text on a single line, without timestamps,
speaker labels or commentary. If there is no speech, return an empty response.`

type generateFunc func(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error)

type gemini struct {
	apiKeys  []string
	model    string
	prompt   string
	logger   logger.Logger
	generate generateFunc

	mu         sync.Mutex
	currentKey int
}

// NewGemini sends audio inline to Gemini, rotating through the supplied API
// keys when one is rate limited.
func NewGemini(apiKeys []string, model, prompt string, log logger.Logger) Transcriber {
	if prompt == "" {
		prompt = defaultGeminiPrompt
	}
	return &gemini{
		apiKeys:  apiKeys,
		model:    model,
		prompt:   prompt,
		logger:   log,
		generate: generateContent,
	}
}

func (g *gemini) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", ErrUnavailable
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(g.prompt),
			genai.NewPartFromBytes(audio, "audio/wav"),
		}, genai.RoleUser),
	}

	var lastErr error
	for range len(g.apiKeys) {
		idx, key := g.key()

		text, err := g.generate(ctx, key, g.model, contents)
		if err == nil {
			return strings.Join(strings.Fields(text), " "), nil
		}
		if !isQuotaError(err) {
			return "", fmt.Errorf("gemini transcribe: %w", err)
		}
		g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		g.rotateKey(idx)
		lastErr = err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *gemini) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey advances past idx unless another goroutine already did.
func (g *gemini) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func generateContent(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}

package capability

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/guruai/guruai/internal/guruerr"
	"github.com/guruai/guruai/pkg/models"
)

// ClientConfig contains configuration for the Anthropic-backed provider.
type ClientConfig struct {
	// Model is the Claude model to use.
	Model anthropic.Model
	// APIKey is the Anthropic API key. If empty, uses ANTHROPIC_API_KEY.
	APIKey string
	// UseAWSBedrock switches to AWS Bedrock instead of the direct API.
	UseAWSBedrock bool
	// AWSRegion is the AWS region for Bedrock (e.g. "ap-south-1").
	AWSRegion string
	// AWSProfile is the optional AWS profile name to use.
	AWSProfile string
	// CallTimeout bounds each port call. Zero means DefaultCallTimeout.
	CallTimeout time.Duration
}

// DefaultCallTimeout bounds a single capability port call.
const DefaultCallTimeout = 90 * time.Second

// AnthropicProvider implements all four capability ports against the
// Anthropic Messages API, either directly or through AWS Bedrock.
type AnthropicProvider struct {
	inner   anthropic.Client
	model   anthropic.Model
	timeout time.Duration
	tracker *TokenTracker
}

// NewAnthropicProvider creates a provider from the given configuration.
func NewAnthropicProvider(cfg ClientConfig) (*AnthropicProvider, error) {
	var opts []option.RequestOption

	if cfg.UseAWSBedrock {
		ctx := context.Background()

		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.AWSRegion != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.AWSRegion))
		}
		if cfg.AWSProfile != "" {
			loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.AWSProfile))
		}

		opts = append(opts, bedrock.WithLoadDefaultConfig(ctx, loadOpts...))
	} else {
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	model := cfg.Model
	if model == "" {
		model = anthropic.ModelClaudeSonnet4_20250514
	}
	if cfg.UseAWSBedrock {
		model = translateModelForBedrock(model)
	}

	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}

	return &AnthropicProvider{
		inner:   anthropic.NewClient(opts...),
		model:   model,
		timeout: timeout,
		tracker: NewTokenTracker(),
	}, nil
}

// translateModelForBedrock converts standard Anthropic model names to
// Bedrock cross-region inference profile format.
func translateModelForBedrock(model anthropic.Model) anthropic.Model {
	bedrockModels := map[anthropic.Model]string{
		anthropic.ModelClaudeSonnet4_20250514:   "us.anthropic.claude-sonnet-4-20250514-v1:0",
		anthropic.ModelClaudeSonnet4_5_20250929: "us.anthropic.claude-sonnet-4-5-20250929-v1:0",
		anthropic.ModelClaudeHaiku4_5_20251001:  "us.anthropic.claude-haiku-4-5-20251001-v1:0",
		anthropic.ModelClaude3_5Haiku20241022:   "us.anthropic.claude-3-5-haiku-20241022-v1:0",
	}
	if bedrockModel, ok := bedrockModels[model]; ok {
		return anthropic.Model(bedrockModel)
	}
	return model
}

// Model returns the configured model name.
func (p *AnthropicProvider) Model() anthropic.Model {
	return p.model
}

// Tracker returns the token tracker for this provider.
func (p *AnthropicProvider) Tracker() *TokenTracker {
	return p.tracker
}

// Ports returns the provider wired into a Ports bundle.
func (p *AnthropicProvider) Ports() Ports {
	return Ports{Extractor: p, Analyzer: p, Generator: p, Translator: p}
}

// ExtractText recovers text from a textbook page image using a vision call.
func (p *AnthropicProvider) ExtractText(ctx context.Context, image models.Attachment) (*models.ExtractionResult, error) {
	if len(image.Data) == 0 {
		return nil, guruerr.New(guruerr.KindInvalidInput, "capability.extract", "empty image payload")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := `Extract all text from this textbook page. Respond with JSON only:
{"raw_text": "...", "detected_language": "...", "layout_hints": ["heading: ...", "diagram: ..."]}
Preserve the original language of the page in raw_text.`

	encoded := base64.StdEncoding.EncodeToString(image.Data)
	resp, err := p.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(image.ContentType, encoded),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return nil, classify("capability.extract", err)
	}
	p.tracker.Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var parsed struct {
		RawText          string   `json:"raw_text"`
		DetectedLanguage string   `json:"detected_language"`
		LayoutHints      []string `json:"layout_hints"`
	}
	if err := decodeJSON(textOf(resp), &parsed); err != nil {
		return nil, guruerr.Wrap(guruerr.KindFatal, "capability.extract", err)
	}
	if strings.TrimSpace(parsed.RawText) == "" {
		return nil, guruerr.New(guruerr.KindFatal, "capability.extract", "no text detected in image")
	}

	return &models.ExtractionResult{
		RawText:          parsed.RawText,
		DetectedLanguage: parsed.DetectedLanguage,
		LayoutHints:      parsed.LayoutHints,
	}, nil
}

// AnalyzeComplexity estimates complexity, subject and prerequisites for
// extracted text.
func (p *AnthropicProvider) AnalyzeComplexity(ctx context.Context, text string) (*models.ContentProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, guruerr.New(guruerr.KindInvalidInput, "capability.analyze", "empty text")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`Analyze this school textbook content. Respond with JSON only:
{"complexity": "very_simple|simple|moderate|complex|very_complex", "subject": "mathematics|science|social_studies|language|general", "prerequisites": ["..."], "key_concepts": ["..."]}

Content:
%s`, text)

	out, err := p.complete(ctx, prompt, 1024)
	if err != nil {
		return nil, classify("capability.analyze", err)
	}

	var parsed struct {
		Complexity    string   `json:"complexity"`
		Subject       string   `json:"subject"`
		Prerequisites []string `json:"prerequisites"`
		KeyConcepts   []string `json:"key_concepts"`
	}
	if err := decodeJSON(out, &parsed); err != nil {
		return nil, guruerr.Wrap(guruerr.KindFatal, "capability.analyze", err)
	}

	return &models.ContentProfile{
		EstimatedComplexity:  models.ParseComplexity(parsed.Complexity),
		SubjectGuess:         parsed.Subject,
		PrerequisiteConcepts: parsed.Prerequisites,
		KeyConcepts:          parsed.KeyConcepts,
	}, nil
}

// GenerateContent produces one worksheet body for the request's grade
// level, biased by the cultural profile when one is present.
func (p *AnthropicProvider) GenerateContent(ctx context.Context, req GenerationRequest) (*models.WorksheetBody, error) {
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.Instruction) == "" {
		return nil, guruerr.New(guruerr.KindInvalidInput, "capability.generate", "empty generation request")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.complete(ctx, generationPrompt(req), 4096)
	if err != nil {
		return nil, classify("capability.generate", err)
	}

	var body models.WorksheetBody
	if err := decodeJSON(out, &body); err != nil {
		return nil, guruerr.Wrap(guruerr.KindFatal, "capability.generate", err)
	}
	return &body, nil
}

// Translate translates text into the target language.
func (p *AnthropicProvider) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", guruerr.New(guruerr.KindInvalidInput, "capability.translate", "empty text")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Translate the following into %s. Reply with the translation only, no commentary.\n\n%s", targetLanguage, text)
	out, err := p.complete(ctx, prompt, 4096)
	if err != nil {
		return "", classify("capability.translate", err)
	}
	return strings.TrimSpace(out), nil
}

// complete runs a simple text-in/text-out message call.
func (p *AnthropicProvider) complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	resp, err := p.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	p.tracker.Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return textOf(resp), nil
}

// generationPrompt assembles the differentiation prompt from the source
// text, the content profile, and the localization bias.
func generationPrompt(req GenerationRequest) string {
	var b strings.Builder

	if req.Instruction != "" {
		b.WriteString(req.Instruction)
	} else {
		fmt.Fprintf(&b, "Create a %s worksheet for %s from the source content below.", req.Subject, req.Grade)
	}
	b.WriteString("\nRespond with JSON only, matching this shape:\n")
	b.WriteString(`{"title": "...", "summary": "...", "learning_objectives": ["..."], "sections": [{"title": "...", "type": "observation|matching|fill_in_blanks|comprehension|application|analysis|problem_solving|creative", "instructions": "...", "questions": ["..."], "time_estimate_minutes": 15}], "materials": ["..."], "estimated_minutes": 40}`)
	b.WriteString("\n")

	if req.Language != "" {
		fmt.Fprintf(&b, "Write all student-facing text in %s.\n", req.Language)
	}
	if req.Profile != nil {
		fmt.Fprintf(&b, "The source content is %s difficulty", req.Profile.EstimatedComplexity)
		if len(req.Profile.KeyConcepts) > 0 {
			fmt.Fprintf(&b, " and teaches: %s", strings.Join(req.Profile.KeyConcepts, ", "))
		}
		b.WriteString(".\n")
	}
	if bias := req.Bias; bias != nil && !bias.Empty() {
		b.WriteString("Use examples familiar in this region: ")
		var parts []string
		if len(bias.Crops) > 0 {
			parts = append(parts, "crops "+strings.Join(bias.Crops, ", "))
		}
		if len(bias.Festivals) > 0 {
			parts = append(parts, "festivals "+strings.Join(bias.Festivals, ", "))
		}
		if len(bias.Occupations) > 0 {
			parts = append(parts, "occupations "+strings.Join(bias.Occupations, ", "))
		}
		if len(bias.Animals) > 0 {
			parts = append(parts, "animals "+strings.Join(bias.Animals, ", "))
		}
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(".\n")
		if len(bias.Sensitivities) > 0 {
			fmt.Fprintf(&b, "Avoid these topics: %s.\n", strings.Join(bias.Sensitivities, ", "))
		}
	}
	if req.Text != "" {
		fmt.Fprintf(&b, "\nSource content:\n%s\n", req.Text)
	}

	return b.String()
}

// textOf concatenates the text blocks of a response.
func textOf(resp *anthropic.Message) string {
	var result strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result.WriteString(variant.Text)
		}
	}
	return result.String()
}

// decodeJSON parses a model response as JSON, tolerating markdown fences.
func decodeJSON(response string, target interface{}) error {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("parsing model response as JSON: %w", err)
	}
	return nil
}

// classify maps SDK and context errors onto the closed port error set.
func classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return guruerr.Wrap(guruerr.KindTransient, op, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == 408 || apierr.StatusCode == 429 || apierr.StatusCode >= 500:
			return guruerr.Wrap(guruerr.KindTransient, op, err)
		case apierr.StatusCode == 400 || apierr.StatusCode == 413:
			return guruerr.Wrap(guruerr.KindInvalidInput, op, err)
		default:
			return guruerr.Wrap(guruerr.KindFatal, op, err)
		}
	}

	// Network-level failures without a status are worth one more try.
	return guruerr.Wrap(guruerr.KindTransient, op, err)
}

// TokenTracker tracks token usage across API calls.
type TokenTracker struct {
	mu        sync.Mutex
	inputTok  int64
	outputTok int64
	calls     int
}

// NewTokenTracker creates a new token tracker.
func NewTokenTracker() *TokenTracker {
	return &TokenTracker{}
}

// Add records token usage from an API call.
func (t *TokenTracker) Add(input, output int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inputTok += input
	t.outputTok += output
	t.calls++
}

// Totals returns the accumulated input tokens, output tokens, and call count.
func (t *TokenTracker) Totals() (input, output int64, calls int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inputTok, t.outputTok, t.calls
}

// Compile-time verification that the provider implements every port.
var (
	_ Extractor  = (*AnthropicProvider)(nil)
	_ Analyzer   = (*AnthropicProvider)(nil)
	_ Generator  = (*AnthropicProvider)(nil)
	_ Translator = (*AnthropicProvider)(nil)
)

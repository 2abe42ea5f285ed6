package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/hwojcik/exagen/config"
	"github.com/hwojcik/exagen/internal/apperr"
	"github.com/hwojcik/exagen/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ErrMalformedOutput is returned when the model replies with something that
// does not match the expected JSON schema. It matches apperr.ErrUpstream.
var ErrMalformedOutput = fmt.Errorf("%w: malformed model output", apperr.ErrUpstream)

// Source is one piece of raw user input handed to the ingestion adapter.
// Exactly one of Text or Data is set, depending on Kind.
type Source struct {
	Kind     string // "text", "file" or "image"
	Text     string
	Filename string
	MIME     string
	Data     []byte
}

const (
	SourceText  = "text"
	SourceFile  = "file"
	SourceImage = "image"
)

// TopicExtraction is the strictly validated shape the model must produce for
// ingestion: one entry per subject found in the input.
type TopicExtraction struct {
	Subject string   `json:"subject"`
	Topics  []string `json:"topics"`
}

type topicExtractionEnvelope struct {
	Subjects []TopicExtraction `json:"subjects"`
}

// GeneratedQuestion is the strictly validated shape the model must produce
// for exam generation.
type GeneratedQuestion struct {
	Type     string   `json:"type"` // "open" or "closed"
	Topic    string   `json:"topic"`
	Answer   string   `json:"answer"`
	Points   int      `json:"points"`
	Options  []string `json:"options"`
	Solution string   `json:"solution"`
}

type generatedQuestionEnvelope struct {
	Questions []GeneratedQuestion `json:"questions"`
}

// IngestService is the single adapter between raw user input and structured
// topics/questions. One client, one prompt and one output schema per
// operation.
type IngestService interface {
	Enabled() bool
	Ingest(ctx context.Context, src Source) ([]TopicExtraction, error)
	GenerateQuestions(ctx context.Context, subject string, topics []string) ([]GeneratedQuestion, error)
}

type geminiIngestService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiIngestService(cfg *config.Config) (IngestService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Ingestion and question generation will be unavailable.")
		return &geminiIngestService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	gm := client.GenerativeModel("gemini-1.5-flash")
	gm.GenerationConfig.ResponseMIMEType = "application/json"
	return &geminiIngestService{client: gm, cfg: cfg}, nil
}

func (s *geminiIngestService) Enabled() bool {
	return s.client != nil
}

const extractionPromptHeader = `You are an experienced teacher preparing practice material.
Analyze the provided content and extract the subjects it covers and, for each
subject, the list of concrete topics a student should practice.

Respond with JSON only, exactly in this shape:
{"subjects":[{"subject":"mathematics","topics":["multiplication","fractions"]}]}

Do not include any other keys, commentary or markdown fences.`

func (s *geminiIngestService) Ingest(ctx context.Context, src Source) ([]TopicExtraction, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: ingestion is not configured", apperr.ErrUpstream)
	}

	var parts []genai.Part
	switch src.Kind {
	case SourceText:
		parts = append(parts, genai.Text(extractionPromptHeader+"\n\nCONTENT:\n"+src.Text))
	case SourceFile:
		parts = append(parts,
			genai.Text(fmt.Sprintf("%s\n\nCONTENT (from file %q):\n%s", extractionPromptHeader, src.Filename, string(src.Data))))
	case SourceImage:
		parts = append(parts,
			genai.ImageData(imageFormat(src.MIME), src.Data),
			genai.Text(extractionPromptHeader+"\n\nThe content is in the image above."))
	default:
		return nil, fmt.Errorf("%w: unknown source kind %q", apperr.ErrValidation, src.Kind)
	}

	raw, err := s.generate(ctx, parts)
	if err != nil {
		return nil, err
	}
	return parseTopicExtractions(raw)
}

func (s *geminiIngestService) GenerateQuestions(ctx context.Context, subject string, topics []string) ([]GeneratedQuestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: question generation is not configured", apperr.ErrUpstream)
	}

	prompt := fmt.Sprintf(`You are an experienced teacher writing an exam on %q.
Write exactly one exam question per topic in this list: %s.
Use type "closed" for multiple-choice questions (with 3-5 options, one of which
must equal the answer) and type "open" for free-form questions (empty options).
Assign points between 1 and 10 matching the difficulty of the question, and
write a short solution explaining the answer.

Respond with JSON only, exactly in this shape:
{"questions":[{"type":"closed","topic":"multiplication","answer":"12",
"points":2,"options":["8","12","14"],"solution":"3 times 4 is 12."}]}

Do not include any other keys, commentary or markdown fences.`,
		subject, strings.Join(topics, ", "))

	raw, err := s.generate(ctx, []genai.Part{genai.Text(prompt)})
	if err != nil {
		return nil, err
	}
	return parseGeneratedQuestions(raw)
}

func (s *geminiIngestService) generate(ctx context.Context, parts []genai.Part) (string, error) {
	resp, err := s.client.GenerateContent(ctx, parts...)
	if err != nil {
		log.Error().Err(err).Msg("Gemini API call failed")
		return "", fmt.Errorf("%w: %s", apperr.ErrUpstream, err.Error())
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrMalformedOutput)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no text content", ErrMalformedOutput)
	}
	return sb.String(), nil
}

// parseTopicExtractions validates the extraction schema: at least one subject,
// every subject named, every subject with at least one non-empty topic.
func parseTopicExtractions(raw string) ([]TopicExtraction, error) {
	var envelope topicExtractionEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, err.Error())
	}
	if len(envelope.Subjects) == 0 {
		return nil, fmt.Errorf("%w: no subjects extracted", ErrMalformedOutput)
	}
	for i, ext := range envelope.Subjects {
		if strings.TrimSpace(ext.Subject) == "" {
			return nil, fmt.Errorf("%w: subject %d has no name", ErrMalformedOutput, i)
		}
		if len(ext.Topics) == 0 {
			return nil, fmt.Errorf("%w: subject %q has no topics", ErrMalformedOutput, ext.Subject)
		}
		for _, topic := range ext.Topics {
			if strings.TrimSpace(topic) == "" {
				return nil, fmt.Errorf("%w: subject %q has an empty topic", ErrMalformedOutput, ext.Subject)
			}
		}
	}
	return envelope.Subjects, nil
}

// parseGeneratedQuestions validates the generation schema: known type,
// non-empty topic and answer, and for closed questions a plausible option set.
func parseGeneratedQuestions(raw string) ([]GeneratedQuestion, error) {
	var envelope generatedQuestionEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, err.Error())
	}
	if len(envelope.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions generated", ErrMalformedOutput)
	}
	for i, q := range envelope.Questions {
		if q.Type != model.QuestionTypeOpen && q.Type != model.QuestionTypeClosed {
			return nil, fmt.Errorf("%w: question %d has unknown type %q", ErrMalformedOutput, i, q.Type)
		}
		if strings.TrimSpace(q.Topic) == "" {
			return nil, fmt.Errorf("%w: question %d has no topic", ErrMalformedOutput, i)
		}
		if strings.TrimSpace(q.Answer) == "" {
			return nil, fmt.Errorf("%w: question %d has no answer", ErrMalformedOutput, i)
		}
		if q.Type == model.QuestionTypeClosed && len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: closed question %d needs at least two options", ErrMalformedOutput, i)
		}
	}
	return envelope.Questions, nil
}

func imageFormat(mimeType string) string {
	return strings.TrimPrefix(mimeType, "image/")
}

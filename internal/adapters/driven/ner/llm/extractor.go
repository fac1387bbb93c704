// Package llm tags named entities by prompting a chat model for JSON.
//
// The reply is validated against a JSON schema before use, and every
// entity span is re-located in the source text so offsets never point
// outside it. Labels are folded onto the closed domain set.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.EntityExtractor = (*Extractor)(nil)

// ErrMalformedReply is returned when the model reply is not usable JSON.
var ErrMalformedReply = errors.New("ner: malformed model reply")

// defaultConfidence is assigned when the model omits a confidence.
const defaultConfidence = 1.0

const schemaURL = "urn:documind:ner-reply"

const replySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["entities"],
  "properties": {
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text", "label"],
        "properties": {
          "text": {"type": "string", "minLength": 1},
          "label": {"type": "string", "minLength": 1},
          "start": {"type": "integer", "minimum": 0},
          "end": {"type": "integer", "minimum": 0},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    }
  }
}`

// reply is the decoded model output.
type reply struct {
	Entities []struct {
		Text       string   `json:"text"`
		Label      string   `json:"label"`
		Start      int      `json:"start"`
		End        int      `json:"end"`
		Confidence *float64 `json:"confidence"`
	} `json:"entities"`
}

// Extractor implements driven.EntityExtractor on top of an LLMService.
type Extractor struct {
	llm     driven.LLMService
	schema  *jsonschema.Schema
	prompts driven.PromptStore
	now     func() time.Time
}

// New creates an extractor that prompts svc.
func New(svc driven.LLMService) (*Extractor, error) {
	if svc == nil {
		return nil, domain.ErrLLMUnavailable
	}
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	return &Extractor{
		llm:    svc,
		schema: schema,
		now:    time.Now,
	}, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(replySchema))
	if err != nil {
		return nil, fmt.Errorf("ner: parse schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("ner: add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("ner: compile schema: %w", err)
	}
	return schema, nil
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (e *Extractor) SetPromptStore(store driven.PromptStore) {
	e.prompts = store
}

// ModelVersion identifies the model behind the extractor.
func (e *Extractor) ModelVersion() string {
	return "llm/" + e.llm.ModelName()
}

// Extract returns the entities the model finds in text.
func (e *Extractor) Extract(ctx context.Context, text string) (*domain.ExtractionResult, error) {
	result := &domain.ExtractionResult{
		Entities:     []domain.NamedEntity{},
		ModelVersion: e.ModelVersion(),
		ProcessedAt:  e.now().UTC(),
	}
	if strings.TrimSpace(text) == "" {
		return result, nil
	}

	out, err := e.llm.Chat(ctx, []driven.ChatMessage{
		{Role: driven.RoleUser, Content: fmt.Sprintf(e.template(), text)},
	}, driven.ChatOptions{Temperature: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailure, err)
	}

	parsed, err := e.parse(out)
	if err != nil {
		return nil, err
	}

	cursor := 0
	for _, ent := range parsed.Entities {
		start, end, ok := locate(text, ent.Text, ent.Start, cursor)
		if !ok {
			continue
		}
		cursor = end
		confidence := defaultConfidence
		if ent.Confidence != nil {
			confidence = *ent.Confidence
		}
		result.Entities = append(result.Entities, domain.NamedEntity{
			Text:       ent.Text,
			Label:      domain.ParseEntityType(strings.ToUpper(strings.TrimSpace(ent.Label))),
			StartChar:  utf8.RuneCountInString(text[:start]),
			EndChar:    utf8.RuneCountInString(text[:end]),
			Confidence: confidence,
		})
	}
	return result, nil
}

func (e *Extractor) template() string {
	if e.prompts != nil {
		if p, err := e.prompts.Load(driven.PromptNER); err == nil {
			return p
		}
	}
	return driven.DefaultPrompt(driven.PromptNER)
}

// parse validates and decodes the JSON object embedded in out.
func (e *Extractor) parse(out string) (*reply, error) {
	raw := jsonObject(out)
	if raw == "" {
		return nil, fmt.Errorf("%w: no JSON object", ErrMalformedReply)
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}
	if err := e.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}

	var r reply
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}
	return &r, nil
}

// jsonObject returns the outermost {...} in s, ignoring code fences and
// any chatter around it.
func jsonObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}

// locate finds span in text and returns byte offsets. The model's rune
// offset is tried first, then the first occurrence at or after cursor,
// then anywhere.
func locate(text, span string, hint, cursor int) (int, int, bool) {
	if b := runeToByte(text, hint); b >= 0 && strings.HasPrefix(text[b:], span) {
		return b, b + len(span), true
	}
	if i := strings.Index(text[cursor:], span); i >= 0 {
		return cursor + i, cursor + i + len(span), true
	}
	if i := strings.Index(text, span); i >= 0 {
		return i, i + len(span), true
	}
	return 0, 0, false
}

// runeToByte converts a rune offset into a byte offset, or -1 when out of range.
func runeToByte(text string, runeOffset int) int {
	if runeOffset < 0 {
		return -1
	}
	n := 0
	for i := range text {
		if n == runeOffset {
			return i
		}
		n++
	}
	if n == runeOffset {
		return len(text)
	}
	return -1
}

package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptQASystem constrains the model to answer from supplied context.
	// This prompt has no format placeholders.
	PromptQASystem = "qa_system"

	// PromptQAUser carries the context and the question.
	// The template expects %s (context) then %s (question).
	PromptQAUser = "qa_user"

	// PromptSummarySystem is the system message for summarisation calls.
	// This prompt has no format placeholders.
	PromptSummarySystem = "summary_system"

	// PromptSummaryIntermediate condenses one piece of a long text.
	// The template expects a single %s placeholder for the text.
	PromptSummaryIntermediate = "summary_intermediate"

	// PromptSummaryFinal produces the stored document summary.
	// The template expects a single %s placeholder for the text.
	PromptSummaryFinal = "summary_final"

	// PromptNER asks the model for entities as JSON.
	// The template expects a single %s placeholder for the text.
	PromptNER = "ner"
)

// defaultPrompts holds the built-in templates for every well-known prompt.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	PromptQASystem: `You are DocuMind, a professional business assistant. Answer the user's question using only the supplied document fragments.
If the fragments do not contain the answer, say so plainly. Do not invent facts.
Where it helps, refer to fragment numbers, pages or document names.`,

	PromptQAUser: `Use the following information to answer:
%s

Question: %s

Answer:`,

	PromptSummarySystem: `You are an assistant able to work with large texts.`,

	PromptSummaryIntermediate: `Briefly (in 2-3 sentences) restate the essence of this text fragment.
Leave out details and keep only the main ideas. Output only the restatement without any comments.

FRAGMENT:
%s

RESTATEMENT:`,

	PromptSummaryFinal: `You are a professional analyst. Write a summary of the text below.
Capture the main idea, the key facts and the conclusions. Output only the summary without any comments.

TEXT:
%s

SUMMARY:`,

	PromptNER: `Extract the named entities from the text below.
Return ONLY a JSON object of the form {"entities":[{"text":"...","label":"ORG|PER|LOC|DATE|MONEY|MISC","start":0,"end":0,"confidence":0.9}]}.
Copy each entity text exactly as it appears. Offsets are character positions in the text.
Return {"entities":[]} if there are none.

TEXT:
%s`,
}

// DefaultPrompt returns the built-in template for name, or "" if unknown.
func DefaultPrompt(name string) string {
	return defaultPrompts[name]
}

// PromptNames returns the names of all well-known prompts.
func PromptNames() []string {
	return []string{
		PromptQASystem,
		PromptQAUser,
		PromptSummarySystem,
		PromptSummaryIntermediate,
		PromptSummaryFinal,
		PromptNER,
	}
}

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Services implementing this interface can have their prompt templates customised
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}

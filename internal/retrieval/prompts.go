package retrieval

// Prompts holds the prompt templates used by the HyDE and answering
// services. It is constructed once at process startup and passed to every
// component that needs it.
type Prompts struct {
	// Hyde is the user prompt template for hypothesis generation. The
	// {{question}} placeholder is replaced with the query text.
	Hyde string

	// HydeSystem is the system instruction for hypothesis generation.
	HydeSystem string

	// RagSystem is the system instruction for grounded question answering.
	RagSystem string
}

// DefaultPrompts returns the built-in prompt set.
func DefaultPrompts() Prompts {
	return Prompts{
		HydeSystem: "You create concise, factual reference passages.",
		Hyde: "Write a short reference passage that would answer the question below. " +
			"State facts directly, as an encyclopedia would. Do not address the reader.\n\n" +
			"Question: {{question}}",
		RagSystem: "You answer questions using only the retrieved documents provided. " +
			"Cite the document title when you use it. " +
			"If the documents do not contain the answer, say so.",
	}
}

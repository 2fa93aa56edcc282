package qa

import (
	"fmt"

	"finqa/internal/corpus"
)

// systemPrompt frames the model as a financial analyst and pins the answer
// format the normalizer expects.
const systemPrompt = `You are a financial analyst expert at answering questions about financial documents.
Analyze the provided document carefully and answer the question with precision.
Show your reasoning step by step, explaining how you extracted the relevant information and performed any calculations.
Be especially precise with numerical answers and follow proper financial formatting conventions.
Always provide your final answer on a new line starting with "Final Answer:", making sure percentages have exactly one decimal place.`

// BuildPrompt assembles the user message for one question over one document.
func BuildPrompt(doc *corpus.Document, question string) string {
	return fmt.Sprintf(`Answer the following question about a financial document.

Question: %s

Document content:
%s
First, analyze the question to determine what information is needed and what calculations (if any) must be performed.
Then, extract the relevant data from the document.
Finally, provide a detailed answer with step-by-step reasoning.

For percentage calculations, ensure the final answer is formatted with one decimal place (e.g., "14.1%%").
For currency values, use appropriate formatting (e.g., "$1.2 million").

At the end, provide a clear and concise final answer in a single line, preceded by "Final Answer:".`,
		question, corpus.FormatContext(doc))
}

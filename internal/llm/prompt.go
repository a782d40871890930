package llm

import "fmt"

const systemPrompt = `You are a senior engineer documenting a codebase for new contributors.
Summarize the file below in 2-4 sentences: what it does, what it exports, and
how it fits its folder. Plain prose, no headings, no code fences.`

// BuildPrompt renders the full prompt text for one file. Kept as a function
// so both real clients and tests produce identical request payloads.
func BuildPrompt(req Request) string {
	return fmt.Sprintf("%s\n\nFile: %s\nCategory: %s\n\n---\n%s", systemPrompt, req.Path, req.Category, req.Content)
}

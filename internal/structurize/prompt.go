package structurize

import (
	"fmt"
	"strings"
)

const SystemPrompt = `You are a document structuring assistant. Your job is to:
1. Keep every piece of important information from the source text
2. Organize the document into a sensible hierarchy
3. Keep the content coherent across the chunks of one long document`

const firstChunkPrompt = `Reorganize the following text into a structured README-style markdown document.

Requirements:
1. Keep all important information; do not drop any substantive content
2. Choose heading levels that fit the content
3. Use markdown ATX headings ("#" to "######")
4. Prefer several heading levels to organize the content
5. Make sure the output is complete
6. Reply with the document only, no commentary`

const continuationPrompt = `This is a later part of a long text. The heading structure of the preceding part is:

%s

Process the following content, keeping it consistent with that structure.

Requirements:
1. Keep all important information; do not drop any substantive content
2. Organize the new content with reference to the preceding heading levels
3. Keep the structure consistent with the preceding part
4. Keep the content coherent
5. Reply with the document only, no commentary`

// BuildPrompt creates the user prompt for one chunk. The first chunk
// establishes the structure; later chunks carry the headings produced so far.
func BuildPrompt(req Request) string {
	var sb strings.Builder
	if req.IsFirst || strings.TrimSpace(req.PreviousStructure) == "" {
		sb.WriteString(firstChunkPrompt)
	} else {
		sb.WriteString(fmt.Sprintf(continuationPrompt, req.PreviousStructure))
	}
	sb.WriteString("\n\n---\n")
	sb.WriteString(req.Chunk)
	return sb.String()
}

package semrag

import (
	"fmt"
	"strings"

	"github.com/manabi-ai/semrag/expand"
	"github.com/manabi-ai/semrag/rerank"
)

// buildContext renders the reranked sources into the reference block handed
// to the completion backend: each document's text with its extracted
// concepts, followed by the full expanded concept list as a closing hint.
func buildContext(sources []rerank.Ranked, expansion *expand.Expansion) string {
	var b strings.Builder
	b.WriteString("参考文書:\n\n")

	for i, src := range sources {
		fmt.Fprintf(&b, "[文書%d]\n", i+1)
		b.WriteString(src.Document.Text)
		b.WriteString("\n")
		fmt.Fprintf(&b, "（関連概念: %s）\n\n", strings.Join(src.DocConcepts, ", "))
	}

	fmt.Fprintf(&b, "\n検索で使用された概念: %s", strings.Join(expansion.ExpandedConcepts, ", "))
	return b.String()
}

// buildPrompt assembles the final prompt, instructing the model to explain
// how the concepts relate to each other, not just answer.
func buildPrompt(question, context string) string {
	return fmt.Sprintf(`あなたは学習支援AIです。以下の文書と概念の関係を考慮して回答してください。

%s

質問: %s

回答の際は、関連する概念の繋がりも説明してください。
回答:`, context, question)
}

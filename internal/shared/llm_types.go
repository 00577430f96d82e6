package shared

import (
	"fmt"
	"time"
)

// TokenUsage tracks the tokens consumed by a backend call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// AgentMeta holds operational metadata for one generation or probe.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}

// String formats the metadata as a single log line.
func (m AgentMeta) String() string {
	return fmt.Sprintf("agent=%s model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d latency=%s",
		m.AgentName,
		m.Usage.Model,
		m.Usage.PromptTokens,
		m.Usage.CompletionTokens,
		m.Usage.TotalTokens,
		m.Latency.Round(time.Millisecond),
	)
}

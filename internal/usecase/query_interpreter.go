package usecase

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

// Compiled regex patterns for query interpretation
var (
	// Matches an embedded directive marker emitted by the upstream
	// conversational layer, e.g. "sure! [[SHOW: les paul]] here you go"
	directiveMarkerPattern = regexp.MustCompile(`(?is)\[\[\s*SHOW\s*:\s*(.*?)\s*\]\]`)

	// Strips punctuation except hyphen and apostrophe, which carry meaning
	// in product names ("explorer-80s", "player's pack")
	queryPunctuationPattern = regexp.MustCompile(`[^a-z0-9'\-\s]`)

	// Multiple spaces cleanup
	querySpacesPattern = regexp.MustCompile(`\s+`)
)

// queryStopWords are politeness and filler tokens that never narrow a
// catalog search ("please show me the ...").
var queryStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "me": true, "my": true,
	"i": true, "we": true, "us": true, "you": true, "your": true,
	"please": true, "show": true, "find": true, "search": true,
	"display": true, "give": true, "get": true, "see": true,
	"want": true, "wanna": true, "like": true, "looking": true,
	"for": true, "some": true, "any": true, "all": true,
	"can": true, "could": true, "would": true, "do": true,
	"to": true, "of": true, "in": true, "on": true, "at": true,
	"and": true, "or": true, "up": true, "out": true,
	"hey": true, "hi": true, "hello": true, "thanks": true, "thank": true,
	"okay": true, "ok": true, "yes": true, "yeah": true,
	"products": true, "product": true, "items": true, "item": true,
	"results": true, "result": true, "stuff": true, "things": true,
}

// structuredQuery is the payload shape an upstream transcription or
// completion layer may wrap the query in.
type structuredQuery struct {
	Query string `json:"query"`
}

// QueryInterpreter cleans raw user utterances (typed or transcribed) into
// focused search phrases.
type QueryInterpreter struct {
	brandStopWords     map[string]bool
	enableDebugLogging bool
}

// NewQueryInterpreter creates an interpreter. brandWords are store-specific
// tokens (the brand name itself) stripped in addition to the fixed filler set.
func NewQueryInterpreter(brandWords []string, enableDebugLogging bool) *QueryInterpreter {
	brand := make(map[string]bool, len(brandWords))
	for _, w := range brandWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			brand[w] = true
		}
	}
	return &QueryInterpreter{
		brandStopWords:     brand,
		enableDebugLogging: enableDebugLogging,
	}
}

// Clean turns a raw utterance into a search phrase. Structured JSON replies
// are unwrapped, embedded [[SHOW: ...]] directives are extracted, filler is
// stripped, and whitespace is collapsed. If stripping leaves nothing, the
// trimmed original is returned so meaningful stop-word-only input survives.
func (qi *QueryInterpreter) Clean(raw string) string {
	working := strings.TrimSpace(raw)
	if working == "" {
		return ""
	}

	if unwrapped, ok := unwrapStructuredReply(working); ok {
		working = unwrapped
	}

	if m := directiveMarkerPattern.FindStringSubmatch(working); m != nil {
		working = strings.TrimSpace(m[1])
	}

	lowered := strings.ToLower(working)
	lowered = queryPunctuationPattern.ReplaceAllString(lowered, " ")

	var kept []string
	for _, token := range strings.Fields(lowered) {
		if queryStopWords[token] || qi.brandStopWords[token] {
			continue
		}
		kept = append(kept, token)
	}

	cleaned := querySpacesPattern.ReplaceAllString(strings.Join(kept, " "), " ")
	cleaned = strings.TrimSpace(cleaned)

	// A query must never strip down to nothing: filler-only input still
	// searches for the typed text rather than silently browsing everything.
	if cleaned == "" {
		cleaned = working
	}

	if qi.enableDebugLogging {
		log.Printf("[QUERY] Input: %q -> Cleaned: %q", raw, cleaned)
	}

	return cleaned
}

// unwrapStructuredReply extracts the "query" field when the raw input is a
// JSON object from an upstream layer. Returns the original text otherwise.
func unwrapStructuredReply(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "{") {
		return raw, false
	}
	var payload structuredQuery
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return raw, false
	}
	if strings.TrimSpace(payload.Query) == "" {
		return raw, false
	}
	return strings.TrimSpace(payload.Query), true
}

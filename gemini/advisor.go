package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Advisor implements workbuddy.Advisor at compile time.
var _ workbuddy.Advisor = (*Advisor)(nil)

// Advisor implements workbuddy.Advisor using Google Gemini. Out-of-contract
// model output never becomes an error: it parses to CommandUnknown and the
// session controller treats it as a stop.
type Advisor struct {
	client  *genai.Client
	limiter *rate.Limiter
}

// NewAdvisor creates a new Advisor. Calls are rate limited to stay inside
// the free-tier request quota.
func NewAdvisor(client *genai.Client) *Advisor {
	return &Advisor{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(0.5), 2),
	}
}

// NextCommand asks the model for the next search command given the
// session snapshot.
func (a *Advisor) NextCommand(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
	if rc.UserQuery == "" {
		return workbuddy.Command{}, workbuddy.Errorf(workbuddy.EINVALID, "query required")
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return workbuddy.Command{}, err
	}

	prompt, err := BuildPrompt(rc)
	if err != nil {
		return workbuddy.Command{}, err
	}

	text, err := generateWithRetry(ctx, func(ctx context.Context) (string, error) {
		result, err := a.client.Models.GenerateContent(ctx, model,
			[]*genai.Content{{
				Parts: []*genai.Part{{Text: prompt}},
			}},
			BuildConfig(),
		)
		if err != nil {
			return "", err
		}
		if result == nil {
			return "", workbuddy.Errorf(workbuddy.EINTERNAL, "gemini returned nil result")
		}
		return result.Text(), nil
	}, DefaultRetryDelays())
	if err != nil {
		return workbuddy.Command{}, err
	}

	return workbuddy.ParseCommand(ExtractJSON(text)), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You direct a local file search, one round at a time. " +
					"Reply with exactly one JSON object and nothing else. " +
					"To search: {\"action\": \"file_search\", \"directory\": \"<dir>\", \"pattern\": \"<glob or keyword>\"}. " +
					"To list a directory's subfolders so they become searchable: add \"subfolders\": true. " +
					"To replace the candidate list with a subtree: {\"action\": \"candidate_directory_request\", \"parent_directory\": \"<dir>\", \"pattern\": \"*\", \"depth\": 1}. " +
					"To add directories without searching: {\"add_candidate_directories\": [\"<dir>\", ...]}. " +
					"To finish: {\"action\": \"stop\", \"ai_response\": \"<answer for the user>\"}. " +
					"Set \"extended_search\": true only when a quick search timed out or found nothing.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt renders the session snapshot for the model. The candidate
// list is the only set of directories a search may name.
func BuildPrompt(rc workbuddy.RoundContext) (string, error) {
	snapshot, err := json.Marshal(rc)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Round %d of a file search session.\n\n", rc.Round)
	fmt.Fprintf(&sb, "User query: %s\n\n", rc.UserQuery)
	sb.WriteString("Candidate directories (use ONLY these in a search command):\n")
	for _, dir := range rc.CandidateDirectories {
		fmt.Fprintf(&sb, "- %s\n", dir)
	}
	if len(rc.CandidateDirectories) == 0 {
		sb.WriteString("- (none left; enumerate, expand, add, or stop)\n")
	}
	fmt.Fprintf(&sb, "\nFull session state:\n%s\n", snapshot)
	sb.WriteString("\nReply with the next command as a single JSON object.")
	return sb.String(), nil
}

// ExtractJSON pulls the first JSON object out of a model reply. It tries
// a ```json fence, then any ``` fence, then the outermost brace pair.
// When no object is found the raw text is returned unchanged so the
// parser can surface it as an unknown command.
func ExtractJSON(text string) []byte {
	text = strings.TrimSpace(text)

	for _, fence := range []string{"```json", "```"} {
		start := strings.Index(text, fence)
		if start < 0 {
			continue
		}
		rest := text[start+len(fence):]
		if end := strings.Index(rest, "```"); end >= 0 {
			if body := strings.TrimSpace(rest[:end]); body != "" {
				return []byte(body)
			}
		}
	}

	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			return []byte(text[start : end+1])
		}
	}

	return []byte(text)
}

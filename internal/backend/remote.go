package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/forgefit-hq/wodforge/pkg/anthropic"
)

const systemPrompt = `You are a senior CrossFit coach writing athlete-facing workout content.
Be concise, specific, and practical. No hype, no emoji, no markdown.
Respond with strict JSON: a single object whose only key is the requested field name.`

// Remote generates field content through the Anthropic Messages API. Calls
// are rate limited and individually bounded by a timeout so one slow request
// cannot stall a whole batch.
type Remote struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
	timeout   time.Duration
}

// RemoteOptions configures the remote generator.
type RemoteOptions struct {
	Model          string
	MaxTokens      int64
	RequestsPerSec float64
	Timeout        time.Duration
}

func NewRemote(client anthropic.Client, opts RemoteOptions) *Remote {
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}
	return &Remote{
		client:    client,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		timeout:   opts.Timeout,
	}
}

func (r *Remote) Name() string { return "anthropic" }

func (r *Remote) Generate(ctx context.Context, req Request) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "backend: rate limit wait")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	temp := 0.4
	resp, err := r.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       r.model,
		MaxTokens:   r.maxTokens,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(req)},
		},
	})
	if err != nil {
		return "", eris.Wrapf(err, "backend: generate %s for %q", req.Field, req.Record.Name)
	}
	resp.Usage.LogCost(r.model, "enrich")

	value, err := extractField(resp.Text(), req.Field)
	if err != nil {
		return "", eris.Wrapf(err, "backend: parse response for %q", req.Record.Name)
	}
	return value, nil
}

func buildPrompt(req Request) string {
	w := req.Record
	var b strings.Builder
	fmt.Fprintf(&b, "Workout: %s\n", w.Name)
	if w.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", w.Category)
	}
	if w.FormatDuration != "" {
		fmt.Fprintf(&b, "Format: %s\n", w.FormatDuration)
	}
	if w.ScoreType != "" {
		fmt.Fprintf(&b, "Scored by: %s\n", w.ScoreType)
	}
	if w.InstructionsClean != "" {
		fmt.Fprintf(&b, "Movements: %s\n", w.InstructionsClean)
	} else if w.Instructions != "" {
		fmt.Fprintf(&b, "Movements: %s\n", w.Instructions)
	}
	fmt.Fprintf(&b, "\nWrite the %q field for this workout. Return JSON like {%q: \"...\"}.", req.Field, req.Field)
	return b.String()
}

// extractField pulls the requested field out of the model's JSON reply.
// Models occasionally wrap the object in prose, so parse from the first
// brace to the last.
func extractField(text, field string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", eris.Errorf("no JSON object in response")
	}

	var obj map[string]string
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return "", eris.Wrap(err, "unmarshal response object")
	}

	value := strings.TrimSpace(obj[field])
	if value == "" {
		return "", eris.Errorf("response missing field %s", field)
	}
	return value, nil
}

// Package batch fans independent prompts out to concurrently running
// agents. Each prompt gets a fresh Agent seeded with the shared system
// prompt and that prompt alone, so conversations cannot contaminate each
// other: the only data crossing task boundaries is the immutable config and
// the read-only tool catalog.
package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/parley-ai/parley/core/agent"
	"github.com/parley-ai/parley/core/config"
	"github.com/parley-ai/parley/providers/ai"
	"github.com/parley-ai/parley/providers/observability"
	"github.com/parley-ai/parley/providers/tool"
)

// Result is the reply produced for one prompt.
type Result struct {
	TaskID string     // correlation id, also attached to log events
	Prompt string     // the prompt that produced this reply
	Reply  ai.Message // the provider's reply turn
}

// Dispatcher runs batches of single-turn conversations. The zero
// MaxConcurrent means unbounded fan-out (one goroutine per prompt); a
// positive value caps the number of in-flight agents.
type Dispatcher struct {
	cfg      config.Config
	catalog  *tool.Catalog
	buildOpt []agent.Option
}

// Option customizes the Dispatcher.
type Option func(*Dispatcher)

// WithAgentOptions forwards options (such as agent.WithProvider) to every
// agent the dispatcher constructs. Primarily for tests.
func WithAgentOptions(opts ...agent.Option) Option {
	return func(d *Dispatcher) {
		d.buildOpt = opts
	}
}

// New creates a Dispatcher sharing the given immutable config and read-only
// catalog across all future tasks.
func New(cfg config.Config, catalog *tool.Catalog, opts ...Option) *Dispatcher {
	d := &Dispatcher{cfg: cfg, catalog: catalog}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes one single-turn conversation per prompt, concurrently, and
// returns the successful replies in submission order. A failed task (agent
// construction, retries exhausted, malformed response) contributes no entry:
// the policy is lossy but resilient, and a batch never fails because one of
// its prompts did. Failures are reported through the Observer in ctx.
//
// Tasks are not cancelled individually: once launched, each runs to
// completion before its slot is collected.
func (d *Dispatcher) Run(ctx context.Context, prompts []string) []Result {
	observer := observability.FromContext(ctx)

	// One slot per prompt, claimed before launch, so completion order
	// cannot reorder results.
	slots := make([]*Result, len(prompts))

	var semaphore chan struct{}
	if d.cfg.MaxConcurrent > 0 {
		semaphore = make(chan struct{}, d.cfg.MaxConcurrent)
	}

	var wg sync.WaitGroup
	for i, prompt := range prompts {
		wg.Add(1)
		go func(index int, prompt string) {
			defer wg.Done()

			if semaphore != nil {
				semaphore <- struct{}{}
				defer func() { <-semaphore }()
			}

			taskID := uuid.NewString()
			reply, err := d.runTask(ctx, prompt)
			if err != nil {
				observer.Warn(ctx, "batch task failed",
					observability.String(observability.AttrTaskID, taskID),
					observability.Int(observability.AttrPromptIndex, index),
					observability.Error(err),
				)
				return
			}

			slots[index] = &Result{TaskID: taskID, Prompt: prompt, Reply: reply}
		}(i, prompt)
	}
	wg.Wait()

	results := make([]Result, 0, len(prompts))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	return results
}

// runTask builds an isolated agent for one prompt and performs a single
// request. The fresh agent owns its own history: the shared system prompt is
// copied in by construction, never aliased.
func (d *Dispatcher) runTask(ctx context.Context, prompt string) (ai.Message, error) {
	taskAgent, err := agent.New(d.cfg, d.catalog, d.buildOpt...)
	if err != nil {
		return ai.Message{}, err
	}

	taskAgent.AddUserMessage(prompt)
	return taskAgent.SendRequest(ctx, "")
}

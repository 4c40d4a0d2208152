package runner

import (
	"context"
	"log/slog"
	"sync"

	ai "github.com/zootherapy/menagerie"
	"github.com/zootherapy/menagerie/capability"
	"github.com/zootherapy/menagerie/persona"
)

// Runner drives tool-calling conversations for one persona.
type Runner struct {
	chat    ai.ChatProvider
	persona *persona.Definition
	env     capability.Environment
	options *Options
}

// New creates a runner. The environment supplies configuration to every
// capability invocation; nil behaves as an empty environment.
func New(chat ai.ChatProvider, def *persona.Definition, env capability.Environment, opts ...Option) *Runner {
	if env == nil {
		env = capability.MapEnv{}
	}
	return &Runner{
		chat:    chat,
		persona: def,
		env:     env,
		options: ApplyOptions(opts...),
	}
}

// Persona returns the persona this runner speaks as.
func (r *Runner) Persona() *persona.Definition {
	return r.persona
}

// Turn sends input to the model and keeps executing the tool calls it
// requests until it answers without tools.
//
// Tool failures are reported back to the model and never end the turn. On
// success the user input, every intermediate message and the final answer
// are appended to the session. If the step limit is hit, the exchange so far
// is kept and the last response is returned with ErrMaxStepsReached. Provider
// errors leave the session unchanged.
func (r *Runner) Turn(ctx context.Context, session *Session, input string) (*ai.Response, error) {
	logger := r.options.Logger.With("persona", r.persona.Name(), "session", session.ID())

	pending := []ai.Message{ai.NewUserMessage(input)}
	chatOpts := r.chatOptions()

	var usage ai.Usage
	var last *ai.Response
	for step := 1; r.options.MaxSteps <= 0 || step <= r.options.MaxSteps; step++ {
		messages := append(r.prefix(session), pending...)

		resp, err := r.chat.Chat(ctx, messages, chatOpts...)
		if err != nil {
			logger.Error("chat request failed", "step", step, "error", err)
			return nil, err
		}
		usage = usage.Add(resp.Usage)
		last = resp

		if len(resp.ToolCalls) == 0 {
			pending = append(pending, ai.Message{
				ID:      ai.GenerateMessageID(),
				Role:    ai.RoleAssistant,
				Content: resp.Content,
			})
			session.commit(pending, usage)
			logger.Debug("turn complete", "steps", step, "input_tokens", usage.InputTokens, "output_tokens", usage.OutputTokens)
			return resp, nil
		}

		pending = append(pending, ai.Message{
			Role:      ai.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		results := r.executeToolCalls(ctx, logger, session.ID(), resp.ToolCalls)
		pending = append(pending, ai.NewToolResultMessage(results...))
	}

	session.commit(pending, usage)
	logger.Warn("turn stopped at step limit", "max_steps", r.options.MaxSteps)
	return last, ErrMaxStepsReached
}

func (r *Runner) prefix(session *Session) []ai.Message {
	history := session.Messages()
	msgs := make([]ai.Message, 0, len(history)+1)
	msgs = append(msgs, ai.NewSystemMessage(r.persona.Instructions()))
	return append(msgs, history...)
}

func (r *Runner) chatOptions() []ai.Option {
	opts := []ai.Option{ai.WithModel(r.persona.Model().Name)}
	if tools := r.persona.Tools(); len(tools) > 0 {
		opts = append(opts, ai.WithTools(tools))
	}
	return append(opts, r.options.ChatOptions...)
}

func (r *Runner) executeToolCalls(ctx context.Context, logger *slog.Logger, sessionID string, calls []ai.ToolCall) []ai.ToolResult {
	results := make([]ai.ToolResult, len(calls))

	if !r.options.ParallelToolCalls || len(calls) == 1 {
		for i, tc := range calls {
			results[i] = r.executeToolCall(ctx, logger, sessionID, tc)
		}
		return results
	}

	var wg sync.WaitGroup
	for i, tc := range calls {
		wg.Add(1)
		go func(idx int, call ai.ToolCall) {
			defer wg.Done()
			results[idx] = r.executeToolCall(ctx, logger, sessionID, call)
		}(i, tc)
	}
	wg.Wait()
	return results
}

// executeToolCall runs one call with a fresh invocation. A call that outlives
// the handler timeout is reported as failed even if the handler ignores its
// context.
func (r *Runner) executeToolCall(ctx context.Context, logger *slog.Logger, sessionID string, tc ai.ToolCall) ai.ToolResult {
	inv := capability.NewInvocation(sessionID, r.env)
	logger = logger.With("tool", tc.Name, "run", inv.RunID())

	execCtx := ctx
	if r.options.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, r.options.HandlerTimeout)
		defer cancel()
	}

	done := make(chan ai.ToolResult, 1)
	go func() {
		done <- r.persona.Execute(execCtx, inv, tc)
	}()

	var result ai.ToolResult
	select {
	case result = <-done:
	case <-execCtx.Done():
		result = tc.Failed("%s", persona.DescribeError(&capability.OperationError{
			Operation: tc.Name,
			Cause:     execCtx.Err(),
		}))
	}

	if result.IsError {
		logger.Warn("tool call failed", "reason", result.Content)
	} else {
		logger.Debug("tool call succeeded")
	}
	return result
}

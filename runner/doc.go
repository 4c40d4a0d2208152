// Package runner drives conversations for a persona.
//
// A Runner pairs a chat provider with a persona definition. Each Turn sends
// the persona's instructions, the session history and the new input to the
// model, executes any tool calls through the persona's capabilities and loops
// until the model answers in plain text:
//
//	r := runner.New(chat, def, capability.OSEnv{},
//	    runner.WithMaxSteps(5),
//	    runner.WithHandlerTimeout(20*time.Second),
//	)
//	session := runner.NewSession()
//	resp, err := r.Turn(ctx, session, "I can't sleep before exams")
//
// Every tool call gets its own capability.Invocation carrying the session ID
// and a fresh run ID. Tool failures are returned to the model as error
// results, so a missing API key or an upstream outage degrades the answer
// rather than ending the conversation.
//
// REPL wraps Turn in a line-oriented read/eval/print loop on a new session.
// Sessions live in memory only.
package runner

// Package client creates chat providers for persona model selectors.
//
// A persona names its model as "provider/model". ForSelector resolves the
// provider's API key from an environment and returns a ready client:
//
//	sel := ai.MustParseModel("openai/gpt-4o-mini")
//	c, err := client.ForSelector(ctx, sel, capability.OSEnv{})
//	if err != nil {
//	    return err
//	}
//	resp, err := c.Chat(ctx, []ai.Message{ai.NewUserMessage("Hello!")})
//
// API keys are read from OPENAI_API_KEY, ANTHROPIC_API_KEY or GOOGLE_API_KEY.
// OPENAI_BASE_URL redirects OpenAI traffic to a compatible endpoint.
package client

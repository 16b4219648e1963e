// Package game holds the typed payloads the Tang poetry game asks the model
// for, and the session bookkeeping that folds them into a save.
//
// Each payload kind has an embedded JSON Schema. [Generate] runs a prompt
// through a [client.Generator], extracts the JSON document from the reply,
// validates it against the kind's schema and decodes it:
//
//	poets, err := game.GeneratePoets(ctx, c, prompt, system)
//	if errors.Is(err, client.ErrRetryPrompt) {
//		// show "please retry"
//	}
//	session.AddPoets(poets)
//	err = session.Save(ctx, st)
//
// Prompts are supplied by the caller.
package game

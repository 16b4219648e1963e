package client

import "errors"

var (
	// ErrNilProvider is returned by New when no provider is supplied.
	ErrNilProvider = errors.New("client: provider is nil")

	// ErrNilMiddleware is returned by New when a middleware entry is nil.
	ErrNilMiddleware = errors.New("client: middleware is nil")

	// ErrEmptyPrompt is returned by Generate when the user prompt is blank.
	ErrEmptyPrompt = errors.New("client: prompt is empty")

	// ErrRetryPrompt wraps every extraction failure from GenerateJSON. The
	// model answered, but nothing usable could be recovered from the answer;
	// asking again is the only remedy. errors.Is still matches the
	// underlying extract error kind.
	ErrRetryPrompt = errors.New("client: model output could not be used, please retry")
)

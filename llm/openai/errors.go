package openai

import "errors"

// ErrNoChoices is returned when the provider answered without any choice,
// which happens with some compatible gateways on filtered content.
var ErrNoChoices = errors.New("openai: response contains no choices")

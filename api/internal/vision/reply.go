package vision

import (
	"errors"

	"plant-id/api/internal/util"
	"plant-id/api/internal/vision/types"
)

var errNoJSON = errors.New("could not parse JSON from response")

// ExtractJSON returns the span from the first '{' to the last '}' of reply.
func ExtractJSON(reply string) (string, bool) {
	return util.BraceSpan(reply)
}

// ParseReply turns the model's free text into a validated Identification.
// The candidate document is the span from the first '{' to the last '}'.
// Every failure is a *ParseError.
func ParseReply(reply string) (*types.Identification, error) {
	doc, ok := ExtractJSON(reply)
	if !ok {
		return nil, NewParseError(errNoJSON)
	}
	out, err := types.DecodeIdentification([]byte(doc))
	if err != nil {
		return nil, NewParseError(err)
	}
	return out, nil
}

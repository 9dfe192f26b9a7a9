package pipeline

import (
	"github.com/pkoukk/tiktoken-go"
)

// TokenEstimator estimates the token cost of a prompt for logging and
// event payloads. Estimation is advisory only.
type TokenEstimator interface {
	EstimateTokens(text string) int
}

type TiktokenEstimator struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenEstimator resolves the tokenizer for the configured model,
// falling back to cl100k_base for models tiktoken does not know.
func NewTiktokenEstimator(model string) (*TiktokenEstimator, error) {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}
	return &TiktokenEstimator{encoding: encoding}, nil
}

func (e *TiktokenEstimator) EstimateTokens(text string) int {
	return len(e.encoding.Encode(text, nil, nil))
}

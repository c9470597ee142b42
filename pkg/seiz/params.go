package seiz

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// Params holds the base SEIZ model parameters. All values are per-step
// probabilities in [0,1]. Dt is the wall-clock duration one step represents;
// it does not alter the transition rules and is carried through to the
// exported record for downstream time-axis scaling.
type Params struct {
	Beta float64 `json:"beta" validate:"gte=0,lte=1"` // S-I contact probability
	B    float64 `json:"b" validate:"gte=0,lte=1"`    // S-Z contact probability
	Rho  float64 `json:"rho" validate:"gte=0,lte=1"`  // E -> I incubation probability
	Eps  float64 `json:"eps" validate:"gte=0,lte=1"`  // I -> E relapse probability
	P    float64 `json:"p" validate:"gte=0,lte=1"`    // P(S -> I | contact with I)
	L    float64 `json:"l" validate:"gte=0,lte=1"`    // P(S -> Z | contact with Z)
	Dt   float64 `json:"dt" validate:"gt=0"`          // time-step scale
}

// Validate checks all base parameters against their declared bounds.
func (p Params) Validate() error {
	return validateStruct("Params", p)
}

// BasicModeratorParams extends the base parameters with a probabilistic
// moderator acting on infected nodes.
type BasicModeratorParams struct {
	Params `yaml:",inline"`
	Mu     float64 `json:"mu" validate:"gte=0,lte=1"` // intervention probability per I node per step
	M      float64 `json:"m" validate:"gte=0,lte=1"`  // P(intervention succeeds)
}

// Validate checks all basic-moderator parameters against their declared bounds.
func (p BasicModeratorParams) Validate() error {
	return validateStruct("BasicModeratorParams", p)
}

// SmartModeratorParams extends the base parameters with a moderator that
// scores simulated messages against per-node toxicity profiles. The base
// Eps is unused in this variant; moderation supersedes the I -> E pathway.
type SmartModeratorParams struct {
	Params `yaml:",inline"`
	N      int     `json:"n" validate:"gte=1"`          // messages sampled per infected node per step
	Theta  int     `json:"theta" validate:"gte=1"`      // toxic-message-count threshold
	T      float64 `json:"T" validate:"gte=0,lte=1"`    // per-message toxicity threshold
	Eta    float64 `json:"eta" validate:"gte=0,lte=1"`  // P(I -> E | moderated)
	Lambda float64 `json:"lambda" validate:"gte=0,lte=1"` // P(E -> Z) per step
}

// Validate checks all smart-moderator parameters against their declared bounds.
func (p SmartModeratorParams) Validate() error {
	return validateStruct("SmartModeratorParams", p)
}

func validateStruct(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return &ModelError{
			Op:      op,
			Field:   fe.Field(),
			Cause:   ErrInvalidParameter,
			Context: fmt.Sprintf("value %v violates %q", fe.Value(), fe.Tag()),
		}
	}
	return &ModelError{Op: op, Cause: err}
}

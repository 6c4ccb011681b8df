package extensions

import (
	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeName identifies the sanitize extension.
const SanitizeName = "sanitize"

// Sanitize contributes HTML sanitising filters backed by bluemonday:
//
//	{{ comment|sanitize }}        user generated content policy
//	{{ comment|sanitize_strict }} strips every tag
type Sanitize struct {
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewSanitize returns the extension. A nil policy falls back to
// bluemonday.UGCPolicy.
func NewSanitize(policy *bluemonday.Policy) *Sanitize {
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}
	return &Sanitize{
		ugc:    policy,
		strict: bluemonday.StrictPolicy(),
	}
}

func (s *Sanitize) Name() string {
	return SanitizeName
}

func (s *Sanitize) Filters() map[string]pongo2.FilterFunction {
	return map[string]pongo2.FilterFunction{
		"sanitize":        policyFilter(s.ugc),
		"sanitize_strict": policyFilter(s.strict),
	}
}

func policyFilter(policy *bluemonday.Policy) pongo2.FilterFunction {
	return func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsSafeValue(policy.Sanitize(in.String())), nil
	}
}

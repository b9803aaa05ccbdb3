// Package advisor asks an OpenAI-compatible model for action
// suggestions on resource types the catalog and naming inference
// handle poorly, caching responses by content fingerprint so repeated
// runs stay offline.
package advisor

import "context"

// Suggestion is one advisor answer for a resource type.
type Suggestion struct {
	ResourceType string   `json:"resource_type"`
	Actions      []string `json:"actions"`
	Rationale    string   `json:"rationale,omitempty"`
}

// Advisor proposes IAM actions for a resource type. Implementations
// must return suggestions safe to union with catalog output.
type Advisor interface {
	Suggest(ctx context.Context, resourceType string, attributes []string) (*Suggestion, error)
}

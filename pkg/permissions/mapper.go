package permissions

import (
	"sort"
	"strings"
)

// inferenceVerbs is the canonical lifecycle verb set applied to types
// missing from the Catalog. Deliberately broad: the inferred set is an
// over-approximation, never a minimal one.
var inferenceVerbs = []string{
	"Create",
	"Delete",
	"Describe",
	"Get",
	"List",
	"Modify",
	"Put",
	"Tag",
	"Untag",
	"Update",
}

// Mapper resolves resource types to action sets. The static Catalog is
// shared and read-only; inferred entries are cached per Mapper so one
// analysis run hands identical permissions to repeated unknown types.
// Create a fresh Mapper per analysis; the cache must not leak across
// independent runs in a long-lived process.
type Mapper struct {
	catalog  map[string][]string
	inferred map[string][]string
}

// NewMapper returns a Mapper over the static Catalog with an empty
// inference cache.
func NewMapper() *Mapper {
	return &Mapper{
		catalog:  Catalog,
		inferred: make(map[string][]string),
	}
}

// Actions returns the required action set for a resource type. Known
// types come straight from the knowledge base; unknown types trigger
// the inference fallback. The returned slice is a copy.
func (m *Mapper) Actions(resourceType string) ([]string, error) {
	if resourceType == "" || !strings.HasPrefix(resourceType, "aws_") {
		return nil, &MappingError{ResourceType: resourceType}
	}

	if actions, ok := m.catalog[resourceType]; ok {
		return append([]string(nil), actions...), nil
	}
	if actions, ok := m.inferred[resourceType]; ok {
		return append([]string(nil), actions...), nil
	}

	service, family, err := Split(resourceType)
	if err != nil {
		return nil, err
	}
	actions := inferActions(service, family)
	m.inferred[resourceType] = actions
	return append([]string(nil), actions...), nil
}

// Inferred reports how many types were resolved through the fallback.
func (m *Mapper) Inferred() int {
	return len(m.inferred)
}

// inferActions builds the heuristic action set for an unknown type:
// verb+noun lifecycle actions plus service-wide read wildcards.
func inferActions(service, family string) []string {
	noun := Title(family)

	actions := make([]string, 0, len(inferenceVerbs)+4)
	for _, verb := range inferenceVerbs {
		actions = append(actions, service+":"+verb+noun)
	}
	actions = append(actions,
		service+":ListTagsFor"+noun,
		service+":Describe*",
		service+":Get*",
		service+":List*",
	)

	sort.Strings(actions)
	return actions
}

// Package statement groups per-resource permission grants into the
// minimal set of policy statements, one per service (or per service
// family when specific and wildcard scoping cannot share a statement).
package statement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DrSkyle/tfgrant/pkg/arnbuild"
	"github.com/DrSkyle/tfgrant/pkg/permissions"
)

// Grant is the per-declaration output of the mapping and ARN stages:
// everything one resource block contributes to the final policy.
type Grant struct {
	Address string // resource address, e.g. aws_s3_bucket.logs
	Service string
	Family  string
	Actions []string
	ARNs    []string
}

// Statement is one entry of an IAM policy document.
type Statement struct {
	Sid      string   `json:"Sid"`
	Effect   string   `json:"Effect"`
	Action   []string `json:"Action"`
	Resource []string `json:"Resource"`

	// Sources lists the resource addresses that contributed to this
	// statement. Provenance only, never serialized.
	Sources []string `json:"-"`
}

// Merge folds grants into statements. Grants for the same service merge
// into one statement unless the service mixes specifically-scoped and
// wildcard-scoped families, in which case it splits per family so a
// wildcard resource never widens a specifically-scoped action set.
// Output ordering, and every list inside each statement, is sorted;
// merging the same grants twice yields the same statements.
func Merge(grants []Grant) []Statement {
	byService := make(map[string][]Grant)
	for _, g := range grants {
		byService[g.Service] = append(byService[g.Service], g)
	}

	var out []Statement
	for _, members := range byService {
		for _, bucket := range partition(members) {
			out = append(out, fold(bucket))
		}
	}

	disambiguateSids(out)
	sort.Slice(out, func(i, j int) bool { return out[i].Sid < out[j].Sid })
	return out
}

// partition decides whether one service's grants share a statement.
// They split per family exactly when the service carries both a
// specifically-scoped family and a wildcard-scoped one.
func partition(members []Grant) [][]Grant {
	specific := false
	wildcard := false
	families := make(map[string]bool)
	for _, g := range members {
		families[g.Family] = true
		for _, a := range g.ARNs {
			if arnbuild.IsWildcard(a) {
				wildcard = true
			} else {
				specific = true
			}
		}
	}
	if !(specific && wildcard) || len(families) == 1 {
		return [][]Grant{members}
	}

	byFamily := make(map[string][]Grant)
	for _, g := range members {
		byFamily[g.Family] = append(byFamily[g.Family], g)
	}
	buckets := make([][]Grant, 0, len(byFamily))
	for _, b := range byFamily {
		buckets = append(buckets, b)
	}
	return buckets
}

// fold merges one bucket of same-service grants into a statement.
func fold(members []Grant) Statement {
	actions := make(map[string]bool)
	arns := make(map[string]bool)
	sources := make(map[string]bool)
	families := make(map[string]bool)
	service := members[0].Service
	for _, g := range members {
		families[g.Family] = true
		sources[g.Address] = true
		for _, a := range g.Actions {
			actions[a] = true
		}
		for _, r := range g.ARNs {
			arns[r] = true
		}
	}

	sid := permissions.Title(service)
	if len(families) == 1 {
		sid += permissions.Title(members[0].Family)
	} else {
		sid += "Resources"
	}

	return Statement{
		Sid:      sid,
		Effect:   "Allow",
		Action:   sortedKeys(actions),
		Resource: sortedKeys(arns),
		Sources:  sortedKeys(sources),
	}
}

// disambiguateSids appends numeric suffixes to colliding Sids. Policy
// documents reject duplicate Sids, and deterministic output needs the
// suffix assignment stable, so collisions are resolved in sorted
// content order.
func disambiguateSids(stmts []Statement) {
	byName := make(map[string][]int)
	taken := make(map[string]bool, len(stmts))
	for i, s := range stmts {
		byName[s.Sid] = append(byName[s.Sid], i)
		taken[s.Sid] = true
	}
	names := sortedKeys(taken)
	for _, name := range names {
		idxs := byName[name]
		if len(idxs) < 2 {
			continue
		}
		sort.Slice(idxs, func(a, b int) bool {
			return statementKey(stmts[idxs[a]]) < statementKey(stmts[idxs[b]])
		})
		for _, i := range idxs[1:] {
			// A suffixed Sid must not land on a name another statement
			// already holds, suffixed or natural.
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s%d", name, n)
				if !taken[candidate] {
					stmts[i].Sid = candidate
					taken[candidate] = true
					break
				}
			}
		}
	}
}

func statementKey(s Statement) string {
	return strings.Join(s.Resource, ",") + "|" + strings.Join(s.Action, ",")
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

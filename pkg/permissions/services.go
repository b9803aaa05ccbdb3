// Package permissions maps Terraform resource types to the IAM actions
// required to manage them, using a static knowledge base with a
// heuristic inference fallback for unknown types.
package permissions

import (
	"fmt"
	"strings"
)

// MappingError reports a resource type the mapper cannot work with.
// This is a defensive invariant: the extractor should never hand over
// an empty or non-AWS type.
type MappingError struct {
	ResourceType string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("cannot derive permissions for resource type %q", e.ResourceType)
}

// serviceAliases maps the first type segment to the IAM service token
// when they differ. Most EC2-adjacent resources never say "ec2" in
// their type name.
var serviceAliases = map[string]string{
	// EC2 and networking.
	"vpc":       "ec2",
	"subnet":    "ec2",
	"instance":  "ec2",
	"security":  "ec2",
	"internet":  "ec2",
	"network":   "ec2",
	"volume":    "ec2",
	"launch":    "ec2",
	"transit":   "ec2",
	"nat":       "ec2",
	"route":     "ec2",
	"eip":       "ec2",
	"ami":       "ec2",
	"key":       "ec2",
	"ebs":       "ec2",
	"flow":      "ec2",
	"default":   "ec2",
	"placement": "ec2",
	"dhcp":      "ec2",
	"egress":    "ec2",
	"image":     "ec2",
	"prefix":    "ec2",

	// Everything else keyed off its first segment.
	"db":             "rds",
	"rds":            "rds",
	"log":            "logs",
	"logs":           "logs",
	"waf":            "wafv2",
	"wafv2":          "wafv2",
	"api":            "apigateway",
	"apigateway":     "apigateway",
	"sfn":            "states",
	"lb":             "elasticloadbalancing",
	"alb":            "elasticloadbalancing",
	"elb":            "elasticloadbalancing",
	"appautoscaling": "application-autoscaling",
	"cognito":        "cognito-idp",
	"efs":            "elasticfilesystem",
	"msk":            "kafka",
	"mwaa":           "airflow",
}

// typeOverrides pins (service, family) for types whose segments do not
// decompose cleanly, e.g. aws_db_instance belongs to rds/instance, not
// rds/db_instance.
var typeOverrides = map[string][2]string{
	"aws_db_instance":             {"rds", "instance"},
	"aws_db_subnet_group":         {"rds", "subnet_group"},
	"aws_db_parameter_group":      {"rds", "parameter_group"},
	"aws_rds_cluster":             {"rds", "cluster"},
	"aws_rds_cluster_instance":    {"rds", "cluster_instance"},
	"aws_cloudwatch_log_group":    {"logs", "log_group"},
	"aws_cloudwatch_log_stream":   {"logs", "log_stream"},
	"aws_cloudwatch_event_rule":   {"events", "rule"},
	"aws_cloudwatch_event_target": {"events", "target"},
	"aws_lb":                      {"elasticloadbalancing", "load_balancer"},
	"aws_alb":                     {"elasticloadbalancing", "load_balancer"},
	"aws_lb_listener":             {"elasticloadbalancing", "listener"},
	"aws_lb_target_group":         {"elasticloadbalancing", "target_group"},
	"aws_ecs_task_definition":     {"ecs", "task_definition"},
	"aws_sfn_state_machine":       {"states", "state_machine"},
	"aws_api_gateway_rest_api":    {"apigateway", "rest_api"},
	"aws_api_gateway_resource":    {"apigateway", "resource"},
	"aws_api_gateway_method":      {"apigateway", "method"},
	"aws_api_gateway_deployment":  {"apigateway", "deployment"},
	"aws_api_gateway_stage":       {"apigateway", "stage"},
	"aws_eip":                     {"ec2", "eip"},
	"aws_key_pair":                {"ec2", "key_pair"},
}

// Split derives the service token and the resource family from a
// resource type. The service token doubles as the action namespace
// prefix and the ARN service segment; the family is the noun part used
// for grouping, Sid synthesis, and inference.
func Split(resourceType string) (service, family string, err error) {
	if sf, ok := typeOverrides[resourceType]; ok {
		return sf[0], sf[1], nil
	}

	trimmed := strings.TrimPrefix(resourceType, "aws_")
	if trimmed == "" || trimmed == resourceType {
		return "", "", &MappingError{ResourceType: resourceType}
	}

	segs := strings.Split(trimmed, "_")
	first := segs[0]
	if first == "" {
		return "", "", &MappingError{ResourceType: resourceType}
	}

	if alias, ok := serviceAliases[first]; ok && alias != first {
		// The service name is implicit (aws_security_group -> ec2), so
		// every segment belongs to the noun.
		return alias, trimmed, nil
	}
	if alias, ok := serviceAliases[first]; ok {
		service = alias
	} else {
		service = first
	}
	if len(segs) > 1 {
		family = strings.Join(segs[1:], "_")
	} else {
		family = first
	}
	return service, family, nil
}

// Title converts a snake_case or kebab-case token to UpperCamelCase,
// the shape IAM action names and Sids use.
func Title(token string) string {
	var b strings.Builder
	upper := true
	for _, r := range token {
		if r == '_' || r == '-' {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			b.WriteRune(r - 32)
		} else {
			b.WriteRune(r)
		}
		upper = false
	}
	return b.String()
}

// Package arnbuild constructs scoped resource identifiers (ARNs) for
// resource declarations. When a concrete name is unknown it falls back
// to a wildcard resource segment while keeping partition, service,
// region, and account fixed.
package arnbuild

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// Placeholder tokens. Substituting real values is the caller's job;
// the engine itself never knows the target account.
const (
	RegionPlaceholder  = "${aws_region}"
	AccountPlaceholder = "${aws_account}"
)

// namingAttributes maps resource types to the attribute conventionally
// carrying the resource's public identifier. There is no universal
// rule; this table is the rule.
var namingAttributes = map[string]string{
	"aws_s3_bucket":               "bucket",
	"aws_s3_bucket_policy":        "bucket",
	"aws_s3_bucket_versioning":    "bucket",
	"aws_s3_object":               "key",
	"aws_lambda_function":         "function_name",
	"aws_lambda_permission":       "function_name",
	"aws_db_instance":             "identifier",
	"aws_rds_cluster":             "cluster_identifier",
	"aws_cloudwatch_metric_alarm": "alarm_name",
	"aws_instance":                "", // instances have no caller-chosen identifier
	"aws_eip":                     "",
	"aws_route":                   "",
	"aws_security_group_rule":     "",
}

// NamingAttribute returns the attribute name holding the resource's
// identifier, or "" when the type has none. Unlisted types default to
// "name", the dominant provider convention.
func NamingAttribute(resourceType string) string {
	if attr, ok := namingAttributes[resourceType]; ok {
		return attr
	}
	return "name"
}

// template is one per-(service, family) ARN construction rule.
type template struct {
	region  bool   // region segment populated
	account bool   // account segment populated
	format  string // resource segment, %s replaced by the name
	// suffixStar appends "*" after a concrete name (log groups match
	// their stream children that way).
	suffixStar bool
	// wildcardOnly forces the wildcard form even when the name resolved:
	// the ARN wants a service-generated id we can never know statically.
	wildcardOnly bool
}

var templates = map[string]template{
	"iam/role":                 {region: false, account: true, format: "role/%s"},
	"iam/policy":               {region: false, account: true, format: "policy/%s"},
	"iam/user":                 {region: false, account: true, format: "user/%s"},
	"iam/instance_profile":     {region: false, account: true, format: "instance-profile/%s"},
	"iam/role_policy":          {region: false, account: true, format: "role/%s"},
	"s3/bucket":                {format: "%s"},
	"s3/bucket_policy":         {format: "%s"},
	"s3/bucket_versioning":     {format: "%s"},
	"lambda/function":          {region: true, account: true, format: "function:%s"},
	"rds/instance":             {region: true, account: true, format: "db:%s"},
	"rds/cluster":              {region: true, account: true, format: "cluster:%s"},
	"rds/subnet_group":         {region: true, account: true, format: "subgrp:%s"},
	"rds/parameter_group":      {region: true, account: true, format: "pg:%s"},
	"logs/log_group":           {region: true, account: true, format: "log-group:%s", suffixStar: true},
	"cloudwatch/metric_alarm":  {region: true, account: true, format: "alarm:%s"},
	"cloudwatch/dashboard":     {region: true, account: true, format: "dashboard/%s"},
	"dynamodb/table":           {region: true, account: true, format: "table/%s"},
	"sns/topic":                {region: true, account: true, format: "%s"},
	"sqs/queue":                {region: true, account: true, format: "%s"},
	"ec2/instance":             {region: true, account: true, format: "instance/%s", wildcardOnly: true},
	"ec2/vpc":                  {region: true, account: true, format: "vpc/%s", wildcardOnly: true},
	"ec2/subnet":               {region: true, account: true, format: "subnet/%s", wildcardOnly: true},
	"ec2/security_group":       {region: true, account: true, format: "security-group/%s", wildcardOnly: true},
	"ec2/ebs_volume":           {region: true, account: true, format: "volume/%s", wildcardOnly: true},
	"ec2/nat_gateway":          {region: true, account: true, format: "natgateway/%s", wildcardOnly: true},
	"ec2/internet_gateway":     {region: true, account: true, format: "internet-gateway/%s", wildcardOnly: true},
	"ec2/route_table":          {region: true, account: true, format: "route-table/%s", wildcardOnly: true},
	"ec2/key_pair":             {region: true, account: true, format: "key-pair/%s"},
	"ecr/repository":           {region: true, account: true, format: "repository/%s"},
	"ecs/cluster":              {region: true, account: true, format: "cluster/%s"},
	"ecs/service":              {region: true, account: true, format: "service/%s"},
	"ecs/task_definition":      {region: true, account: true, format: "task-definition/%s", wildcardOnly: true},
	"eks/cluster":              {region: true, account: true, format: "cluster/%s"},
	"eks/node_group":           {region: true, account: true, format: "nodegroup/%s"},
	"states/state_machine":     {region: true, account: true, format: "stateMachine:%s"},
	"kms/key":                  {region: true, account: true, format: "key/%s", wildcardOnly: true},
	"secretsmanager/secret":    {region: true, account: true, format: "secret:%s", suffixStar: true},
	"ssm/parameter":            {region: true, account: true, format: "parameter/%s"},
	"route53/zone":             {format: "hostedzone/%s", wildcardOnly: true},
	"route53/record":           {format: "hostedzone/%s", wildcardOnly: true},
	"elasticloadbalancing/load_balancer": {region: true, account: true, format: "loadbalancer/%s"},
	"elasticloadbalancing/target_group":  {region: true, account: true, format: "targetgroup/%s", wildcardOnly: true},
	"elasticloadbalancing/listener":      {region: true, account: true, format: "listener/%s", wildcardOnly: true},
}

// Builder assembles ARNs with fixed partition "aws" and configurable
// region/account segments, placeholder tokens by default.
type Builder struct {
	Region  string
	Account string
}

// NewBuilder returns a Builder emitting placeholder region/account
// tokens, the form the engine always produces.
func NewBuilder() *Builder {
	return &Builder{Region: RegionPlaceholder, Account: AccountPlaceholder}
}

// ARNs builds the resource identifiers for one declaration. name is the
// resolved naming-attribute value; resolved=false (or a wildcardOnly
// template) yields the scoped wildcard form. Partition, service,
// region, and account are present in every output; only the resource
// path wildcards.
func (b *Builder) ARNs(service, family, name string, resolved bool) []string {
	// API Gateway identifiers compound under a service-generated REST
	// API id, so both the API node and its subtree are scoped.
	if service == "apigateway" {
		return []string{
			b.compose(template{region: true}, service, "/restapis"),
			b.compose(template{region: true}, service, "/restapis/*"),
		}
	}

	t, known := templates[service+"/"+family]
	if !known {
		// Generic rule for types without a template.
		t = template{region: true, account: true, format: family + "/%s"}
		if !resolved {
			// The most specific wildcard we can claim is the whole
			// service scope.
			t.format = "%s"
		}
	}

	if !resolved || t.wildcardOnly {
		name = "*"
	}

	resource := fmt.Sprintf(t.format, name)
	if t.suffixStar && name != "*" {
		resource += "*"
	}
	return []string{b.compose(t, service, resource)}
}

// IsWildcard reports whether an ARN's resource path contains a
// wildcard. ARNs with wildcards never count as specific scoping.
func IsWildcard(arnStr string) bool {
	return strings.Contains(arnStr, "*")
}

func (b *Builder) compose(t template, service, resource string) string {
	a := arn.ARN{
		Partition: "aws",
		Service:   service,
		Resource:  resource,
	}
	if t.region {
		a.Region = b.Region
	}
	if t.account {
		a.AccountID = b.Account
	}
	return a.String()
}

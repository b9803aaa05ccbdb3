package permissions

// Catalog is the static knowledge base: full lifecycle action sets for
// the resource types we know, keyed by Terraform type. It is read-only
// for the lifetime of the process; inferred entries for unknown types
// live in the per-run Mapper cache, never here.
var Catalog = map[string][]string{
	// ---- S3 ----
	"aws_s3_bucket": {
		"s3:CreateBucket",
		"s3:DeleteBucket",
		"s3:ListBucket",
		"s3:GetBucketLocation",
		"s3:GetBucketPolicy",
		"s3:PutBucketPolicy",
		"s3:GetBucketTagging",
		"s3:PutBucketTagging",
		"s3:GetBucketVersioning",
		"s3:PutBucketVersioning",
		"s3:GetEncryptionConfiguration",
		"s3:PutEncryptionConfiguration",
	},
	"aws_s3_bucket_policy": {
		"s3:GetBucketPolicy",
		"s3:PutBucketPolicy",
		"s3:DeleteBucketPolicy",
	},
	"aws_s3_bucket_versioning": {
		"s3:GetBucketVersioning",
		"s3:PutBucketVersioning",
	},
	"aws_s3_object": {
		"s3:GetObject",
		"s3:PutObject",
		"s3:DeleteObject",
		"s3:GetObjectTagging",
		"s3:PutObjectTagging",
	},

	// ---- IAM ----
	"aws_iam_role": {
		"iam:CreateRole",
		"iam:DeleteRole",
		"iam:GetRole",
		"iam:UpdateRole",
		"iam:UpdateAssumeRolePolicy",
		"iam:ListRolePolicies",
		"iam:ListAttachedRolePolicies",
		"iam:TagRole",
		"iam:UntagRole",
	},
	"aws_iam_policy": {
		"iam:CreatePolicy",
		"iam:DeletePolicy",
		"iam:GetPolicy",
		"iam:GetPolicyVersion",
		"iam:CreatePolicyVersion",
		"iam:DeletePolicyVersion",
		"iam:ListPolicyVersions",
		"iam:TagPolicy",
		"iam:UntagPolicy",
	},
	"aws_iam_user": {
		"iam:CreateUser",
		"iam:DeleteUser",
		"iam:GetUser",
		"iam:UpdateUser",
		"iam:ListUserPolicies",
		"iam:TagUser",
		"iam:UntagUser",
	},
	"aws_iam_role_policy": {
		"iam:PutRolePolicy",
		"iam:GetRolePolicy",
		"iam:DeleteRolePolicy",
	},
	"aws_iam_role_policy_attachment": {
		"iam:AttachRolePolicy",
		"iam:DetachRolePolicy",
		"iam:ListAttachedRolePolicies",
	},
	"aws_iam_instance_profile": {
		"iam:CreateInstanceProfile",
		"iam:DeleteInstanceProfile",
		"iam:GetInstanceProfile",
		"iam:AddRoleToInstanceProfile",
		"iam:RemoveRoleFromInstanceProfile",
	},

	// ---- Lambda ----
	"aws_lambda_function": {
		"lambda:CreateFunction",
		"lambda:DeleteFunction",
		"lambda:GetFunction",
		"lambda:GetFunctionConfiguration",
		"lambda:UpdateFunctionCode",
		"lambda:UpdateFunctionConfiguration",
		"lambda:ListVersionsByFunction",
		"lambda:TagResource",
		"lambda:UntagResource",
	},
	"aws_lambda_permission": {
		"lambda:AddPermission",
		"lambda:RemovePermission",
		"lambda:GetPolicy",
	},
	"aws_lambda_event_source_mapping": {
		"lambda:CreateEventSourceMapping",
		"lambda:DeleteEventSourceMapping",
		"lambda:GetEventSourceMapping",
		"lambda:UpdateEventSourceMapping",
	},

	// ---- EC2 / networking ----
	"aws_instance": {
		"ec2:RunInstances",
		"ec2:TerminateInstances",
		"ec2:DescribeInstances",
		"ec2:DescribeInstanceAttribute",
		"ec2:ModifyInstanceAttribute",
		"ec2:StartInstances",
		"ec2:StopInstances",
		"ec2:CreateTags",
		"ec2:DeleteTags",
	},
	"aws_vpc": {
		"ec2:CreateVpc",
		"ec2:DeleteVpc",
		"ec2:DescribeVpcs",
		"ec2:ModifyVpcAttribute",
		"ec2:CreateTags",
		"ec2:DeleteTags",
	},
	"aws_subnet": {
		"ec2:CreateSubnet",
		"ec2:DeleteSubnet",
		"ec2:DescribeSubnets",
		"ec2:ModifySubnetAttribute",
		"ec2:CreateTags",
	},
	"aws_security_group": {
		"ec2:CreateSecurityGroup",
		"ec2:DeleteSecurityGroup",
		"ec2:DescribeSecurityGroups",
		"ec2:AuthorizeSecurityGroupIngress",
		"ec2:AuthorizeSecurityGroupEgress",
		"ec2:RevokeSecurityGroupIngress",
		"ec2:RevokeSecurityGroupEgress",
		"ec2:CreateTags",
	},
	"aws_security_group_rule": {
		"ec2:AuthorizeSecurityGroupIngress",
		"ec2:AuthorizeSecurityGroupEgress",
		"ec2:RevokeSecurityGroupIngress",
		"ec2:RevokeSecurityGroupEgress",
		"ec2:DescribeSecurityGroupRules",
	},
	"aws_internet_gateway": {
		"ec2:CreateInternetGateway",
		"ec2:DeleteInternetGateway",
		"ec2:AttachInternetGateway",
		"ec2:DetachInternetGateway",
		"ec2:DescribeInternetGateways",
	},
	"aws_nat_gateway": {
		"ec2:CreateNatGateway",
		"ec2:DeleteNatGateway",
		"ec2:DescribeNatGateways",
	},
	"aws_route_table": {
		"ec2:CreateRouteTable",
		"ec2:DeleteRouteTable",
		"ec2:DescribeRouteTables",
		"ec2:AssociateRouteTable",
		"ec2:DisassociateRouteTable",
	},
	"aws_route": {
		"ec2:CreateRoute",
		"ec2:DeleteRoute",
		"ec2:ReplaceRoute",
		"ec2:DescribeRouteTables",
	},
	"aws_eip": {
		"ec2:AllocateAddress",
		"ec2:ReleaseAddress",
		"ec2:DescribeAddresses",
		"ec2:AssociateAddress",
		"ec2:DisassociateAddress",
	},
	"aws_ebs_volume": {
		"ec2:CreateVolume",
		"ec2:DeleteVolume",
		"ec2:DescribeVolumes",
		"ec2:ModifyVolume",
		"ec2:CreateTags",
	},
	"aws_key_pair": {
		"ec2:CreateKeyPair",
		"ec2:ImportKeyPair",
		"ec2:DeleteKeyPair",
		"ec2:DescribeKeyPairs",
	},

	// ---- RDS ----
	"aws_db_instance": {
		"rds:CreateDBInstance",
		"rds:DeleteDBInstance",
		"rds:DescribeDBInstances",
		"rds:ModifyDBInstance",
		"rds:AddTagsToResource",
		"rds:RemoveTagsFromResource",
		"rds:ListTagsForResource",
	},
	"aws_db_subnet_group": {
		"rds:CreateDBSubnetGroup",
		"rds:DeleteDBSubnetGroup",
		"rds:DescribeDBSubnetGroups",
		"rds:ModifyDBSubnetGroup",
	},
	"aws_db_parameter_group": {
		"rds:CreateDBParameterGroup",
		"rds:DeleteDBParameterGroup",
		"rds:DescribeDBParameterGroups",
		"rds:ModifyDBParameterGroup",
	},
	"aws_rds_cluster": {
		"rds:CreateDBCluster",
		"rds:DeleteDBCluster",
		"rds:DescribeDBClusters",
		"rds:ModifyDBCluster",
		"rds:ListTagsForResource",
	},

	// ---- CloudWatch / Logs ----
	"aws_cloudwatch_log_group": {
		"logs:CreateLogGroup",
		"logs:DeleteLogGroup",
		"logs:DescribeLogGroups",
		"logs:PutRetentionPolicy",
		"logs:TagResource",
		"logs:UntagResource",
	},
	"aws_cloudwatch_metric_alarm": {
		"cloudwatch:PutMetricAlarm",
		"cloudwatch:DeleteAlarms",
		"cloudwatch:DescribeAlarms",
		"cloudwatch:TagResource",
		"cloudwatch:UntagResource",
	},
	"aws_cloudwatch_dashboard": {
		"cloudwatch:PutDashboard",
		"cloudwatch:DeleteDashboards",
		"cloudwatch:GetDashboard",
		"cloudwatch:ListDashboards",
	},
	"aws_cloudwatch_event_rule": {
		"events:PutRule",
		"events:DeleteRule",
		"events:DescribeRule",
		"events:ListRules",
		"events:TagResource",
	},
	"aws_cloudwatch_event_target": {
		"events:PutTargets",
		"events:RemoveTargets",
		"events:ListTargetsByRule",
	},

	// ---- DynamoDB ----
	"aws_dynamodb_table": {
		"dynamodb:CreateTable",
		"dynamodb:DeleteTable",
		"dynamodb:DescribeTable",
		"dynamodb:UpdateTable",
		"dynamodb:DescribeContinuousBackups",
		"dynamodb:DescribeTimeToLive",
		"dynamodb:TagResource",
		"dynamodb:UntagResource",
		"dynamodb:ListTagsOfResource",
	},

	// ---- SNS / SQS ----
	"aws_sns_topic": {
		"sns:CreateTopic",
		"sns:DeleteTopic",
		"sns:GetTopicAttributes",
		"sns:SetTopicAttributes",
		"sns:TagResource",
		"sns:UntagResource",
		"sns:ListTagsForResource",
	},
	"aws_sns_topic_subscription": {
		"sns:Subscribe",
		"sns:Unsubscribe",
		"sns:GetSubscriptionAttributes",
		"sns:SetSubscriptionAttributes",
	},
	"aws_sqs_queue": {
		"sqs:CreateQueue",
		"sqs:DeleteQueue",
		"sqs:GetQueueAttributes",
		"sqs:SetQueueAttributes",
		"sqs:TagQueue",
		"sqs:UntagQueue",
		"sqs:ListQueueTags",
	},

	// ---- Route53 ----
	"aws_route53_zone": {
		"route53:CreateHostedZone",
		"route53:DeleteHostedZone",
		"route53:GetHostedZone",
		"route53:ListHostedZones",
		"route53:ChangeTagsForResource",
	},
	"aws_route53_record": {
		"route53:ChangeResourceRecordSets",
		"route53:GetHostedZone",
		"route53:ListResourceRecordSets",
	},

	// ---- ECS / ECR / EKS ----
	"aws_ecs_cluster": {
		"ecs:CreateCluster",
		"ecs:DeleteCluster",
		"ecs:DescribeClusters",
		"ecs:TagResource",
		"ecs:UntagResource",
	},
	"aws_ecs_service": {
		"ecs:CreateService",
		"ecs:DeleteService",
		"ecs:DescribeServices",
		"ecs:UpdateService",
		"ecs:TagResource",
	},
	"aws_ecs_task_definition": {
		"ecs:RegisterTaskDefinition",
		"ecs:DeregisterTaskDefinition",
		"ecs:DescribeTaskDefinition",
		"ecs:ListTaskDefinitions",
	},
	"aws_ecr_repository": {
		"ecr:CreateRepository",
		"ecr:DeleteRepository",
		"ecr:DescribeRepositories",
		"ecr:SetRepositoryPolicy",
		"ecr:GetRepositoryPolicy",
		"ecr:TagResource",
		"ecr:UntagResource",
		"ecr:ListTagsForResource",
	},
	"aws_eks_cluster": {
		"eks:CreateCluster",
		"eks:DeleteCluster",
		"eks:DescribeCluster",
		"eks:UpdateClusterConfig",
		"eks:UpdateClusterVersion",
		"eks:TagResource",
		"eks:UntagResource",
	},
	"aws_eks_node_group": {
		"eks:CreateNodegroup",
		"eks:DeleteNodegroup",
		"eks:DescribeNodegroup",
		"eks:UpdateNodegroupConfig",
		"eks:UpdateNodegroupVersion",
	},

	// ---- Load balancing ----
	"aws_lb": {
		"elasticloadbalancing:CreateLoadBalancer",
		"elasticloadbalancing:DeleteLoadBalancer",
		"elasticloadbalancing:DescribeLoadBalancers",
		"elasticloadbalancing:ModifyLoadBalancerAttributes",
		"elasticloadbalancing:AddTags",
		"elasticloadbalancing:RemoveTags",
	},
	"aws_lb_target_group": {
		"elasticloadbalancing:CreateTargetGroup",
		"elasticloadbalancing:DeleteTargetGroup",
		"elasticloadbalancing:DescribeTargetGroups",
		"elasticloadbalancing:ModifyTargetGroupAttributes",
	},
	"aws_lb_listener": {
		"elasticloadbalancing:CreateListener",
		"elasticloadbalancing:DeleteListener",
		"elasticloadbalancing:DescribeListeners",
		"elasticloadbalancing:ModifyListener",
	},

	// ---- KMS / Secrets / SSM ----
	"aws_kms_key": {
		"kms:CreateKey",
		"kms:DescribeKey",
		"kms:ScheduleKeyDeletion",
		"kms:EnableKeyRotation",
		"kms:GetKeyPolicy",
		"kms:PutKeyPolicy",
		"kms:TagResource",
		"kms:UntagResource",
	},
	"aws_secretsmanager_secret": {
		"secretsmanager:CreateSecret",
		"secretsmanager:DeleteSecret",
		"secretsmanager:DescribeSecret",
		"secretsmanager:UpdateSecret",
		"secretsmanager:GetResourcePolicy",
		"secretsmanager:TagResource",
		"secretsmanager:UntagResource",
	},
	"aws_ssm_parameter": {
		"ssm:PutParameter",
		"ssm:DeleteParameter",
		"ssm:GetParameter",
		"ssm:GetParameters",
		"ssm:DescribeParameters",
		"ssm:AddTagsToResource",
		"ssm:RemoveTagsFromResource",
	},

	// ---- Step Functions ----
	"aws_sfn_state_machine": {
		"states:CreateStateMachine",
		"states:DeleteStateMachine",
		"states:DescribeStateMachine",
		"states:UpdateStateMachine",
		"states:TagResource",
		"states:UntagResource",
		"states:ListTagsForResource",
	},
}

package awsx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"

	"github.com/DrSkyle/tfgrant/pkg/arnbuild"
)

// Substitute replaces the placeholder tokens in a rendered policy with
// the caller's real region and account.
func Substitute(doc string, id *Identity) string {
	doc = strings.ReplaceAll(doc, arnbuild.RegionPlaceholder, id.Region)
	return strings.ReplaceAll(doc, arnbuild.AccountPlaceholder, id.Account)
}

// Applier pushes generated policies into IAM.
type Applier struct {
	IAM    *iam.Client
	Logger *slog.Logger
}

func NewApplier(c *Client, logger *slog.Logger) *Applier {
	return &Applier{IAM: iam.NewFromConfig(c.Config), Logger: logger}
}

// Apply creates the named managed policy, or publishes a new default
// version when it already exists. The returned string is the policy ARN.
func (a *Applier) Apply(ctx context.Context, name, document string, id *Identity) (string, error) {
	out, err := a.IAM.CreatePolicy(ctx, &iam.CreatePolicyInput{
		PolicyName:     aws.String(name),
		PolicyDocument: aws.String(document),
		Description:    aws.String("Managed by tfgrant, derived from Terraform sources"),
	})
	if err == nil {
		a.Logger.Info("created policy", "name", name, "arn", aws.ToString(out.Policy.Arn))
		return aws.ToString(out.Policy.Arn), nil
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) || apiErr.ErrorCode() != "EntityAlreadyExists" {
		return "", fmt.Errorf("failed to create policy %s: %w", name, err)
	}

	policyArn := fmt.Sprintf("arn:aws:iam::%s:policy/%s", id.Account, name)
	if err := a.pruneOldVersions(ctx, policyArn); err != nil {
		return "", err
	}

	_, err = a.IAM.CreatePolicyVersion(ctx, &iam.CreatePolicyVersionInput{
		PolicyArn:      aws.String(policyArn),
		PolicyDocument: aws.String(document),
		SetAsDefault:   true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish policy version for %s: %w", name, err)
	}
	a.Logger.Info("published new policy version", "name", name, "arn", policyArn)
	return policyArn, nil
}

// AttachToRole attaches the policy to an IAM role.
func (a *Applier) AttachToRole(ctx context.Context, policyArn, role string) error {
	_, err := a.IAM.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		PolicyArn: aws.String(policyArn),
		RoleName:  aws.String(role),
	})
	if err != nil {
		return fmt.Errorf("failed to attach policy to role %s: %w", role, err)
	}
	return nil
}

// pruneOldVersions deletes the oldest non-default version when the
// five-version limit would block publishing.
func (a *Applier) pruneOldVersions(ctx context.Context, policyArn string) error {
	versions, err := a.IAM.ListPolicyVersions(ctx, &iam.ListPolicyVersionsInput{
		PolicyArn: aws.String(policyArn),
	})
	if err != nil {
		return fmt.Errorf("failed to list policy versions: %w", err)
	}
	if len(versions.Versions) < 5 {
		return nil
	}

	var oldest *types.PolicyVersion
	for i, v := range versions.Versions {
		if v.IsDefaultVersion || v.CreateDate == nil {
			continue
		}
		if oldest == nil || v.CreateDate.Before(*oldest.CreateDate) {
			oldest = &versions.Versions[i]
		}
	}
	if oldest == nil {
		return nil
	}

	_, err = a.IAM.DeletePolicyVersion(ctx, &iam.DeletePolicyVersionInput{
		PolicyArn: aws.String(policyArn),
		VersionId: oldest.VersionId,
	})
	if err != nil {
		return fmt.Errorf("failed to prune policy version: %w", err)
	}
	a.Logger.Debug("pruned policy version", "arn", policyArn, "version", aws.ToString(oldest.VersionId))
	return nil
}

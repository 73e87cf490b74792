package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterLister is the slice of the SSM client used to read a parameter tree.
type ParameterLister interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadSSMParameters reads every parameter below prefix and returns them keyed by
// the last path segment, upper-cased, so "/site/prod/upload_bucket" becomes UPLOAD_BUCKET.
func LoadSSMParameters(ctx context.Context, client ParameterLister, prefix string) (map[string]string, error) {
	out := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading ssm parameters under %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			name := aws.ToString(p.Name)
			if name == "" {
				continue
			}
			out[strings.ToUpper(path.Base(name))] = aws.ToString(p.Value)
		}
	}
	return out, nil
}

// WithSSMOverlay merges parameters from SSM_PARAMETER_PATH into c when the variable is set.
// Values already present in the environment win.
func WithSSMOverlay(ctx context.Context, c map[string]string) (map[string]string, error) {
	prefix := GetString(c, "SSM_PARAMETER_PATH", "")
	if prefix == "" {
		return c, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return c, fmt.Errorf("loading aws config: %w", err)
	}

	params, err := LoadSSMParameters(ctx, ssm.NewFromConfig(awsCfg), prefix)
	if err != nil {
		return c, err
	}
	return Merge(c, params), nil
}

package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// ssmAPI is the minimal AWS SSM interface required by SSMSource.
// *ssm.Client from aws-sdk-go-v2 satisfies this interface.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSMSource reads credentials from AWS Systems Manager Parameter Store.
//
// The parameter name is Prefix joined with the key, so with prefix
// "/relay/prod" the key OPENAI_API_KEY is read from
// "/relay/prod/OPENAI_API_KEY". SecureString values are decrypted.
type SSMSource struct {
	Prefix string

	api ssmAPI
}

// NewSSMSource wraps an SSM API implementation.
func NewSSMSource(api ssmAPI, prefix string) (*SSMSource, error) {
	if api == nil {
		return nil, errors.New("secrets: ssm api must not be nil")
	}
	return &SSMSource{Prefix: prefix, api: api}, nil
}

// NewSSMSourceFromEnvironment builds an SSM client from the default AWS
// configuration chain (environment, shared config, instance role).
func NewSSMSourceFromEnvironment(ctx context.Context, prefix string) (*SSMSource, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("secrets: load aws config: %w", err)
	}
	return NewSSMSource(ssm.NewFromConfig(cfg), prefix)
}

// parameterName joins the prefix and key with a single slash.
func (s *SSMSource) parameterName(key string) string {
	if s.Prefix == "" {
		return key
	}
	return strings.TrimRight(s.Prefix, "/") + "/" + key
}

// Lookup fetches the parameter on every call. A missing parameter is an
// absent credential.
func (s *SSMSource) Lookup(ctx context.Context, key string) (string, error) {
	if s.api == nil {
		return "", errors.New("secrets: ssm source not initialized")
	}

	name := s.parameterName(key)
	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("secrets: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", nil
	}
	return *out.Parameter.Value, nil
}

// Name returns the source name.
func (s *SSMSource) Name() string {
	return "ssm"
}

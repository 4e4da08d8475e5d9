package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/codeartifact"
	"github.com/go-logr/logr"
)

// CodeArtifactUser is the fixed user name CodeArtifact expects for Maven.
const CodeArtifactUser = "aws"

var ErrNoToken = errors.New("codeartifact: empty authorization token")

type CodeArtifactConfig struct {
	Domain      string
	DomainOwner string
	Region      string
	// DurationSeconds of the token, 0 keeps the service default.
	DurationSeconds int64
}

type tokenClient interface {
	GetAuthorizationToken(ctx context.Context, in *codeartifact.GetAuthorizationTokenInput, optFns ...func(*codeartifact.Options)) (*codeartifact.GetAuthorizationTokenOutput, error)
}

// CodeArtifactCredentials exchanges AWS credentials for a CodeArtifact token.
type CodeArtifactCredentials struct {
	cfg    CodeArtifactConfig
	client tokenClient
}

func NewCodeArtifact(ctx context.Context, cfg CodeArtifactConfig) (*CodeArtifactCredentials, error) {
	if cfg.Domain == "" {
		return nil, fmt.Errorf("codeartifact domain is required")
	}
	opts := []func(*awscfg.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awscfg.WithRegion(cfg.Region))
	}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &CodeArtifactCredentials{cfg: cfg, client: codeartifact.NewFromConfig(awsCfg)}, nil
}

func (c *CodeArtifactCredentials) BasicAuth(ctx context.Context) (string, string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("domain", c.cfg.Domain)

	in := &codeartifact.GetAuthorizationTokenInput{Domain: aws.String(c.cfg.Domain)}
	if c.cfg.DomainOwner != "" {
		in.DomainOwner = aws.String(c.cfg.DomainOwner)
	}
	if c.cfg.DurationSeconds > 0 {
		in.DurationSeconds = aws.Int64(c.cfg.DurationSeconds)
	}
	out, err := c.client.GetAuthorizationToken(ctx, in)
	if err != nil {
		log.Error(err, "failed to get authorization token")
		return "", "", err
	}
	if out == nil || aws.ToString(out.AuthorizationToken) == "" {
		log.Error(ErrNoToken, "received empty authorization token")
		return "", "", ErrNoToken
	}
	if out.Expiration != nil {
		log.V(1).Info("obtained authorization token", "expires", out.Expiration.String())
	}
	return CodeArtifactUser, aws.ToString(out.AuthorizationToken), nil
}

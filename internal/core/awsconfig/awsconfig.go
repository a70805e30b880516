package awsconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/rs/zerolog/log"

	cfg "github.com/markdave123-py/Lectio/internal/config"
)

// Load builds the aws.Config shared by the Textract and Bedrock clients.
// Static keys win when both are set; otherwise the default credential chain
// (env, shared profile, instance role) is used.
func Load(ctx context.Context, c *cfg.Config) (aws.Config, error) {
	if c.AwsRegion == "" {
		return aws.Config{}, fmt.Errorf("AWS_REGION not set")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(c.AwsRegion)}
	if c.AwsAccessKey != "" && c.AwsSecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AwsAccessKey, c.AwsSecretKey, ""),
		))
	} else {
		log.Debug().Msg("AWS static keys not set, using default credential chain")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

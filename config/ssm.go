package config

import (
	"context"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/rs/zerolog/log"
)

// LoadSSM fills config with the parameters stored under SSM_PARAMETER_PATH.
// It is a no-op when the path is not configured.
func LoadSSM(ctx context.Context, config map[string]string) error {
	parameterPath := GetString(config, "SSM_PARAMETER_PATH", "")
	if parameterPath == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return errs.NewConfigError("SSM_PARAMETER_PATH", err)
	}

	loaded, err := MergeParameters(ctx, ssm.NewFromConfig(awsCfg), parameterPath, config)
	if err != nil {
		return errs.NewConfigError("SSM_PARAMETER_PATH", err)
	}

	log.Info().Str("path", parameterPath).Int("parameters", loaded).Msg("loaded configuration from SSM")
	return nil
}

// MergeParameters copies every parameter under parameterPath into config, keyed by the
// last path segment. Keys already present in config are left alone so the process
// environment can override stored values. It returns the number of keys written.
func MergeParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, parameterPath string, config map[string]string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	written := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return written, err
		}

		for _, parameter := range page.Parameters {
			key := path.Base(strings.TrimSuffix(aws.ToString(parameter.Name), "/"))
			if key == "" || key == "." || key == "/" {
				continue
			}
			if existing, ok := config[key]; ok && existing != "" {
				continue
			}
			config[key] = aws.ToString(parameter.Value)
			written++
		}
	}

	return written, nil
}

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsOverlay is the JSON document stored in AWS Secrets Manager. Fields
// left empty in the secret keep whatever the file or environment supplied.
type SecretsOverlay struct {
	DatabasePassword string `json:"database_password"`
	OddsAPIKey       string `json:"odds_api_key"`
}

// LoadSecretsFromAWS fetches the named secret and overlays its non-empty
// fields on cfg.
func LoadSecretsFromAWS(cfg *Config, region string, secretName string) error {
	secrets, err := fetchSecretsFromAWS(context.Background(), region, secretName)
	if err != nil {
		return err
	}
	secrets.apply(cfg)
	return nil
}

func fetchSecretsFromAWS(ctx context.Context, region string, secretName string) (*SecretsOverlay, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret from AWS Secrets Manager: %w", err)
	}

	payload, err := secretPayload(result)
	if err != nil {
		return nil, err
	}

	secrets := &SecretsOverlay{}
	if err := json.Unmarshal(payload, secrets); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}
	return secrets, nil
}

func secretPayload(result *secretsmanager.GetSecretValueOutput) ([]byte, error) {
	switch {
	case result.SecretString != nil:
		return []byte(*result.SecretString), nil
	case result.SecretBinary != nil:
		return result.SecretBinary, nil
	default:
		return nil, errors.New("no secret data found in AWS Secrets Manager")
	}
}

func (s *SecretsOverlay) apply(cfg *Config) {
	if s.DatabasePassword != "" {
		cfg.Database.Password = s.DatabasePassword
	}
	if s.OddsAPIKey != "" {
		cfg.OddsAPI.APIKey = s.OddsAPIKey
	}
}

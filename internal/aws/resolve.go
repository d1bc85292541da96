package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
)

// Setting is one resolved key of a profile.
type Setting struct {
	Key   string
	Value string
}

// Resolve loads a single profile the way the AWS SDK sees it, following
// sso-session sections. Only the config file at path is read; credentials
// files are never opened and nothing goes over the network.
func Resolve(ctx context.Context, path, name string) ([]Setting, error) {
	shared, err := config.LoadSharedConfigProfile(ctx, name, func(o *config.LoadSharedConfigOptions) {
		o.ConfigFiles = []string{path}
		o.CredentialsFiles = []string{}
	})
	if err != nil {
		var notExist config.SharedConfigProfileNotExistError
		if errors.As(err, &notExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrProfileNotFound, name)
		}
		return nil, fmt.Errorf("failed to resolve profile '%s': %w", name, err)
	}

	startURL, ssoRegion := shared.SSOStartURL, shared.SSORegion
	if shared.SSOSession != nil {
		if startURL == "" {
			startURL = shared.SSOSession.SSOStartURL
		}
		if ssoRegion == "" {
			ssoRegion = shared.SSOSession.SSORegion
		}
	}

	all := []Setting{
		{"profile", shared.Profile},
		{"region", shared.Region},
		{"sso_session", shared.SSOSessionName},
		{"sso_start_url", startURL},
		{"sso_region", ssoRegion},
		{"sso_account_id", shared.SSOAccountID},
		{"sso_role_name", shared.SSORoleName},
		{"role_arn", shared.RoleARN},
		{"source_profile", shared.SourceProfileName},
		{"credential_source", shared.CredentialSource},
		{"mfa_serial", shared.MFASerial},
		{"role_session_name", shared.RoleSessionName},
	}

	settings := make([]Setting, 0, len(all))
	for _, s := range all {
		if s.Value != "" {
			settings = append(settings, s)
		}
	}
	return settings, nil
}

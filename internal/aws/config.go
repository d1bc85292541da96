package aws

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/ini.v1"
)

var ErrProfileNotFound = errors.New("profile not found in AWS config")

// ConfigPath returns the path to the AWS config file. An explicit override
// wins over AWS_CONFIG_FILE, which wins over ~/.aws/config.
func ConfigPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if configPath := os.Getenv("AWS_CONFIG_FILE"); configPath != "" {
		return configPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, ".aws", "config"), nil
}

// ProfileType represents the type of AWS profile
type ProfileType string

const (
	ProfileTypeSSO ProfileType = "SSO"
	ProfileTypeIAM ProfileType = "IAM"
	ProfileTypeKey ProfileType = "Key"
)

// Profile is one profile section of the AWS config file.
type Profile struct {
	Name          string
	Type          ProfileType
	AccountID     string
	RoleName      string
	Region        string
	RoleARN       string
	SourceProfile string
	SSOSession    string
	SSOStartURL   string
	SSORegion     string
}

// Display renders the profile as "name (account) [region] {role}", leaving
// out whatever is not configured.
func (p Profile) Display() string {
	parts := []string{p.Name}
	if p.AccountID != "" {
		parts = append(parts, "("+p.AccountID+")")
	}
	if p.Region != "" {
		parts = append(parts, "["+p.Region+"]")
	}
	if p.RoleName != "" {
		parts = append(parts, "{"+p.RoleName+"}")
	}
	return strings.Join(parts, " ")
}

// getProfileType determines the type of AWS profile based on its configuration
func getProfileType(section *ini.Section) ProfileType {
	if section.HasKey("sso_session") || section.HasKey("sso_start_url") {
		return ProfileTypeSSO
	}
	if section.HasKey("role_arn") {
		return ProfileTypeIAM
	}
	return ProfileTypeKey
}

// profileName maps a section name to a profile name. "profile x" is the
// usual form; "default" is the only bare section the CLI treats as a profile.
func profileName(section string) (string, bool) {
	if name, ok := strings.CutPrefix(section, "profile "); ok {
		name = strings.TrimSpace(name)
		return name, name != ""
	}
	if section == "default" {
		return section, true
	}
	return "", false
}

// LoadProfiles parses the AWS config file at path and returns its profiles
// sorted by name. A missing file yields an empty list.
func LoadProfiles(path string) ([]Profile, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true}, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Profile{}, nil
		}
		return nil, fmt.Errorf("failed to read AWS config file at %s: %w", path, err)
	}
	return parseProfiles(cfg), nil
}

func parseProfiles(cfg *ini.File) []Profile {
	sessions := make(map[string]*ini.Section)
	for _, section := range cfg.Sections() {
		if name, ok := strings.CutPrefix(section.Name(), "sso-session "); ok {
			sessions[strings.TrimSpace(name)] = section
		}
	}

	seen := make(map[string]int)
	var profiles []Profile
	for _, section := range cfg.Sections() {
		name, ok := profileName(section.Name())
		if !ok {
			continue
		}

		profile := Profile{
			Name:          name,
			Type:          getProfileType(section),
			AccountID:     section.Key("sso_account_id").String(),
			RoleName:      section.Key("sso_role_name").String(),
			Region:        section.Key("region").String(),
			RoleARN:       section.Key("role_arn").String(),
			SourceProfile: section.Key("source_profile").String(),
			SSOSession:    section.Key("sso_session").String(),
			SSOStartURL:   section.Key("sso_start_url").String(),
			SSORegion:     section.Key("sso_region").String(),
		}

		if profile.RoleARN != "" {
			account, role := parseRoleARN(profile.RoleARN)
			if profile.AccountID == "" {
				profile.AccountID = account
			}
			if profile.RoleName == "" {
				profile.RoleName = role
			}
		}

		if session, ok := sessions[profile.SSOSession]; ok {
			if profile.SSOStartURL == "" {
				profile.SSOStartURL = session.Key("sso_start_url").String()
			}
			if profile.SSORegion == "" {
				profile.SSORegion = session.Key("sso_region").String()
			}
		}

		// "[default]" and "[profile default]" can both exist; the later one wins.
		if i, dup := seen[name]; dup {
			profiles[i] = profile
			continue
		}
		seen[name] = len(profiles)
		profiles = append(profiles, profile)
	}

	slices.SortFunc(profiles, func(a, b Profile) int {
		return strings.Compare(a.Name, b.Name)
	})
	return profiles
}

// parseRoleARN extracts the account id and role name from
// arn:aws:iam::123456789012:role/path/Name.
func parseRoleARN(arn string) (account, role string) {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) != 6 || parts[0] != "arn" {
		return "", ""
	}
	account = parts[4]
	resource := parts[5]
	if rest, ok := strings.CutPrefix(resource, "role/"); ok {
		role = rest[strings.LastIndex(rest, "/")+1:]
	}
	return account, role
}

// Find returns the profile called name.
func Find(profiles []Profile, name string) (Profile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: '%s'", ErrProfileNotFound, name)
}

// Names returns the profile names in order.
func Names(profiles []Profile) []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

package aws

import (
	"sync"

	"awsps/internal/fuzzy"

	"github.com/spf13/cobra"
)

// profileCache caches the profile names per config path so repeated
// completion requests do not re-parse the file.
var (
	profileCache      = make(map[string][]string)
	profileCacheMutex sync.RWMutex
)

// getCachedProfiles returns cached profile names or loads them from path.
func getCachedProfiles(path string) ([]string, error) {
	profileCacheMutex.RLock()
	names, ok := profileCache[path]
	profileCacheMutex.RUnlock()
	if ok {
		return names, nil
	}

	profileCacheMutex.Lock()
	defer profileCacheMutex.Unlock()

	// Double-check in case another goroutine updated the cache
	if names, ok := profileCache[path]; ok {
		return names, nil
	}

	profiles, err := LoadProfiles(path)
	if err != nil {
		return nil, err
	}

	names = Names(profiles)
	profileCache[path] = names
	return names, nil
}

func InvalidateProfileCache() {
	profileCacheMutex.Lock()
	defer profileCacheMutex.Unlock()
	clear(profileCache)
}

// CompleteProfiles returns a cobra completion function offering profile
// names ranked by the same fuzzy scorer as the selector. pathFn is called
// lazily so flags are parsed by the time it runs.
func CompleteProfiles(pathFn func() (string, error)) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		path, err := pathFn()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		profiles, err := getCachedProfiles(path)
		if err != nil {
			// If we can't list profiles, return no completions but don't error
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		// Keep the ranked order instead of the shell's alphabetical one.
		return fuzzy.Filter(profiles, toComplete), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveKeepOrder
	}
}

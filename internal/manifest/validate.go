package manifest

import "sort"

// checkDuplicateNames verifies that the top-level name and every explicit
// environment name are pairwise distinct. It runs once at load time,
// before any query is answered.
func checkDuplicateNames(m *Manifest) error {
	seen := map[string]struct{}{m.Name: {}}
	duplicates := map[string]struct{}{}

	for _, environment := range m.Env {
		if environment.Name == "" {
			continue
		}
		if _, ok := seen[environment.Name]; ok {
			duplicates[environment.Name] = struct{}{}
			continue
		}
		seen[environment.Name] = struct{}{}
	}

	if len(duplicates) == 0 {
		return nil
	}

	names := make([]string, 0, len(duplicates))
	for name := range duplicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return &NameConflictError{Duplicates: names}
}

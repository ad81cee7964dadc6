package mapper

import (
	"strings"

	"guild-tracker/internal/domain"
)

// ResolveRosterImport parses newline-delimited `Name` or `Name-Realm` lines
// and resolves each against the known characters. Resolution order: exact
// name+realm, then unique name, then the "main" among same-named characters.
// Unresolved or ambiguous lines with no main are dropped.
func ResolveRosterImport(input string, known []domain.Character) []domain.Character {
	byName := make(map[string][]domain.Character)
	for _, c := range known {
		key := strings.ToLower(c.Name)
		byName[key] = append(byName[key], c)
	}

	var roster []domain.Character
	seen := make(map[string]bool)

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, realm := splitImportLine(line)
		resolved := resolveLine(byName[strings.ToLower(name)], realm)
		if resolved == nil || seen[resolved.ID] {
			continue
		}

		seen[resolved.ID] = true
		roster = append(roster, *resolved)
	}

	return roster
}

func splitImportLine(line string) (name, realm string) {
	if idx := strings.Index(line, "-"); idx > 0 {
		return line[:idx], line[idx+1:]
	}
	return line, ""
}

func resolveLine(candidates []domain.Character, realm string) *domain.Character {
	if len(candidates) == 0 {
		return nil
	}

	if realm != "" {
		for i := range candidates {
			if strings.EqualFold(candidates[i].Realm, realm) {
				return &candidates[i]
			}
		}
		return nil
	}

	if len(candidates) == 1 {
		return &candidates[0]
	}

	for i := range candidates {
		if candidates[i].Main {
			return &candidates[i]
		}
	}
	return nil
}

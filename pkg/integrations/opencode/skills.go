package opencodeintegration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillManifestName is the manifest file that marks a directory as a skill.
const SkillManifestName = "SKILL.md"

// Skill is a locally defined prompt package: a SKILL.md manifest with YAML
// front matter (name, description) followed by markdown instructions.
type Skill struct {
	Name         string
	Description  string
	Instructions string
	Path         string
}

type skillFrontMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// scanSkills collects skills from the given directories. Each immediate
// subdirectory containing a SKILL.md is a skill; unreadable entries are
// skipped. Directories are injected by the host so scanning never depends on
// ambient process state.
func scanSkills(directories []string) ([]Skill, error) {
	skills := []Skill{}

	for _, directory := range directories {
		entries, err := os.ReadDir(directory)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return nil, fmt.Errorf("failed to read skill directory %s: %w", directory, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			manifestPath := filepath.Join(directory, entry.Name(), SkillManifestName)

			skill, err := parseSkillManifest(manifestPath)
			if err != nil {
				continue
			}

			if skill.Name == "" {
				skill.Name = entry.Name()
			}

			skills = append(skills, skill)
		}
	}

	return skills, nil
}

// loadSkill finds a skill by name across the configured directories.
func loadSkill(directories []string, name string) (Skill, error) {
	skills, err := scanSkills(directories)
	if err != nil {
		return Skill{}, err
	}

	for _, skill := range skills {
		if skill.Name == name {
			return skill, nil
		}
	}

	return Skill{}, fmt.Errorf("skill %s not found", name)
}

func parseSkillManifest(path string) (Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Skill{}, err
	}

	skill := Skill{Path: path}

	body := string(content)

	if strings.HasPrefix(body, "---") {
		rest := body[3:]

		if end := strings.Index(rest, "\n---"); end >= 0 {
			frontMatter := rest[:end]
			body = strings.TrimPrefix(rest[end+len("\n---"):], "\n")

			var meta skillFrontMatter
			if err := yaml.Unmarshal([]byte(frontMatter), &meta); err == nil {
				skill.Name = meta.Name
				skill.Description = meta.Description
			}
		}
	}

	skill.Instructions = strings.TrimSpace(body)

	return skill, nil
}

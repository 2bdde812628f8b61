// Package personas manages the persona and role presets offered when
// asking questions and requesting summaries. Builtin presets match what
// the backend understands out of the box; users can add or override
// presets with a personas.yaml file.
package personas

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Persona is a preset sent with questions to shape the answer style
type Persona struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Role is a preset for role-oriented repository summaries
type Role struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// presetsFile is the on-disk YAML shape
type presetsFile struct {
	Personas []Persona `yaml:"personas"`
	Roles    []Role    `yaml:"roles"`
}

// Registry holds the merged set of builtin and user presets
type Registry struct {
	mu       sync.RWMutex
	personas map[string]Persona
	roles    map[string]Role
}

// NewRegistry creates a registry seeded with the builtin presets
func NewRegistry() *Registry {
	r := &Registry{
		personas: make(map[string]Persona),
		roles:    make(map[string]Role),
	}

	for _, p := range builtinPersonas {
		r.personas[p.Name] = p
	}
	for _, role := range builtinRoles {
		r.roles[role.Name] = role
	}

	return r
}

var builtinPersonas = []Persona{
	{Name: "student (beginner)", Description: "Simple explanations with analogies, no jargon"},
	{Name: "student (intermediate)", Description: "Step-by-step explanations with code snippets"},
	{Name: "student (advanced)", Description: "In-depth technical answers with trade-offs"},
}

var builtinRoles = []Role{
	{Name: "developer", Description: "Modules, dependencies, flow, and improvements"},
	{Name: "beginner", Description: "Plain-language summary with analogies"},
	{Name: "project_manager", Description: "Purpose, features, tech stack, risks, complexity"},
}

// Discover merges user presets from .repotutor/personas.yaml in the
// current directory, then the home directory. Missing files are skipped;
// a malformed file is an error.
func (r *Registry) Discover() error {
	paths := []string{filepath.Join(".repotutor", "personas.yaml")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".repotutor", "personas.yaml"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := r.LoadFile(path); err != nil {
			return err
		}
	}

	return nil
}

// LoadFile merges presets from a YAML file. Entries with a name matching
// an existing preset replace it.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read presets file: %w", err)
	}

	var file presetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse presets file %s: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range file.Personas {
		if p.Name == "" {
			return fmt.Errorf("persona without a name in %s", path)
		}
		r.personas[p.Name] = p
	}
	for _, role := range file.Roles {
		if role.Name == "" {
			return fmt.Errorf("role without a name in %s", path)
		}
		r.roles[role.Name] = role
	}

	return nil
}

// Persona looks up a persona by name
func (r *Registry) Persona(name string) (Persona, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.personas[name]
	return p, ok
}

// Role looks up a role by name
func (r *Registry) Role(name string) (Role, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.roles[name]
	return role, ok
}

// Personas returns all personas sorted by name
func (r *Registry) Personas() []Persona {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Persona, 0, len(r.personas))
	for _, p := range r.personas {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Roles returns all roles sorted by name
func (r *Registry) Roles() []Role {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		list = append(list, role)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

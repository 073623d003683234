package mcpserver

import (
	"encoding/json"
)

const manifestSchema = "https://static.modelcontextprotocol.io/schemas/2025-10-17/server.schema.json"

// Manifest is the registry server.json document.
type Manifest struct {
	Schema      string      `json:"$schema"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Version     string      `json:"version"`
	Repository  *Repository `json:"repository,omitempty"`
	Packages    []Package   `json:"packages,omitempty"`
}

type Repository struct {
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Package is one way to launch the server. Runtime arguments go to the
// container engine, package arguments to sprintlens itself.
type Package struct {
	RegistryType         string     `json:"registryType"`
	Identifier           string     `json:"identifier"`
	RuntimeArguments     []Argument `json:"runtimeArguments,omitempty"`
	PackageArguments     []Argument `json:"packageArguments,omitempty"`
	EnvironmentVariables []EnvVar   `json:"environmentVariables,omitempty"`
	Transport            Transport  `json:"transport"`
}

type Argument struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
	IsRequired  bool   `json:"isRequired,omitempty"`
}

type EnvVar struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsRequired  bool   `json:"isRequired,omitempty"`
	IsSecret    bool   `json:"isSecret,omitempty"`
}

type Transport struct {
	Type string `json:"type"`
}

// GenerateManifest renders server.json for version (0.0.0 when empty). The
// OCI package mounts the caller's working directory at /work so relative
// snapshot paths resolve; the binary package runs in place.
func GenerateManifest(version string) ([]byte, error) {
	if version == "" {
		version = "0.0.0"
	}

	env := []EnvVar{
		{Name: "SPRINTLENS_SNAPSHOT", Description: "Default snapshot file for tool calls that name none"},
		{Name: "SPRINTLENS_CONFIG", Description: "Path to a sprintlens.toml/.yaml/.json config file"},
	}
	mcpArgs := []Argument{
		{Type: "positional", Value: "mcp"},
	}

	return json.MarshalIndent(Manifest{
		Schema:      manifestSchema,
		Name:        "io.github.panbanda/sprintlens",
		Description: "Sprint analytics over tracker snapshots: burndown, utilization, health, velocity and subtask progress",
		Version:     version,
		Repository:  &Repository{URL: "https://github.com/panbanda/sprintlens", Source: "github"},
		Packages: []Package{
			{
				RegistryType: "oci",
				Identifier:   "ghcr.io/panbanda/sprintlens:" + version,
				RuntimeArguments: []Argument{
					{Type: "named", Name: "--volume", Value: "${PWD}:/work", Description: "Directory holding the snapshot"},
					{Type: "named", Name: "--workdir", Value: "/work"},
				},
				PackageArguments:     mcpArgs,
				EnvironmentVariables: env,
				Transport:            Transport{Type: "stdio"},
			},
			{
				RegistryType:         "mcpb",
				Identifier:           "https://github.com/panbanda/sprintlens/releases/download/v" + version + "/sprintlens.mcpb",
				PackageArguments:     mcpArgs,
				EnvironmentVariables: env,
				Transport:            Transport{Type: "stdio"},
			},
		},
	}, "", "  ")
}

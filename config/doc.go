// Package config loads the snippetd runtime configuration.
//
// Configuration comes from an optional YAML file plus the environment
// variables the serverless host used. Values referencing unset environment
// variables expand empty and surface as warnings: a missing backend setting
// must degrade to a failing probe or a failed module load, never to a
// startup abort.
package config

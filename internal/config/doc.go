// Package config loads the release configuration for a release root.
//
// Every constant the publishing workflow needs (product name, project
// identifier, relative paths, version markers, per-artifact naming, titles,
// descriptions and tags, and the upload transport) is a configuration
// value passed into the components rather than package-level state.
//
// A release root may carry one of these optional files:
//
//	.release-publisher.jsonc   JSON with comments (github.com/tidwall/jsonc)
//	.release-publisher.json
//	.release-publisher.yaml    YAML (gopkg.in/yaml.v3)
//	.release-publisher.yml
//
// Fields absent from the file keep their defaults, so an empty file (or no
// file at all) describes the stock layout:
//
//	<root>/src/marla/ide/gui/Domain.java
//	<root>/store/The maRla Project Setup <version><pre>.exe
//	<root>/store/The maRla Project <version><pre>.zip
//
// Upload credentials are read from the environment or from <root>/.env
// (github.com/joho/godotenv) and are held in memory only.
package config

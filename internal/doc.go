// Package internal holds the implementation packages of the reelsmith CLI.
//
// # Package Organization
//
//   - scene: scene trees, slot rules and the composition timeline
//   - registry: the component catalog and per-type config schemas
//   - tokens, theme: design tokens and the theme catalog built on them
//   - renderer: per-type component source generation
//   - composition: the composition and root files of a project
//   - build: the render pool, its result cache and build metrics
//   - scaffolding: project directory layout and metadata files
//   - project: the workspace manager tying the above together
//   - mcp: the MCP tool server
//   - watcher, websocket, middleware, preview: the live storyboard
//   - config, logging, errors, validation, version: ambient plumbing
//
// Scene documents flow one way: decode, validate against the registry,
// flatten into a composition, render each component type on the pool and
// assemble the project files. Every stage reports failures as
// *errors.ReelError values so the CLI and the MCP server can classify them.
package internal

// Package component manages the registry of FactoryAI sub-projects: the
// built-in defaults, the schema-validated components.yaml override, per
// component availability status, and subprocess execution of a component's
// entry script.
package component

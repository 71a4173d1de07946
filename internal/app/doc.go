// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle: load the
// report definitions, run the structural pass, optionally run the render
// pass, and write the result. It is decoupled from any specific entrypoint
// like a CLI.
package app

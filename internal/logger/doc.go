// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a sane console encoder on stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// All services accept a context and extract the logger from it, enabling
// scoped, structured logging throughout the codebase. Logs go to stderr
// because stdout belongs to the interactive menu.
package logger

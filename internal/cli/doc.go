// Package cli parses command-line arguments and runs the non-GUI modes:
// batch conversion, context-menu setup and removal, directory watching and
// history listing. Context-menu invocations arrive here as
// `file-converter -f <format> <file>`.
package cli

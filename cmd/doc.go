// Package cmd implements the gpt command line.
//
// # Architecture
//
//   - root.go: App struct, cobra command setup, flags and the request flow
//   - postprocess.go: routing of the answer to confirm/run, copy or print
//
// # Flow
//
// The task words are joined into one prompt and sent with the system prompt
// through an api.Completer. The first choice's text is then handled by the
// postprocess policy:
//   - confirm: show the command with a risk note, run it on yes
//   - copy: write it to the clipboard and verify the write
//   - out: print it, optionally rendered as highlighted shell code
//
// Collaborators (completion client, confirmer, clipboard and process
// runner) are fields on App so tests can replace them.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd

// Package pipeline post-processes engine output for the command line tool.
//
// The engine turns Markdown into HTML or PDF on its own. The CLI adds a few
// stages around it:
//   - title extraction from the Markdown source (PDF metadata default)
//   - syntax highlighting of fenced code blocks in the engine's HTML
//   - style sheet injection into standalone HTML
//   - rewriting of relative asset paths before HTML is printed from a
//     temporary file by the browser engine
//
// Every stage is a pure string transformation and safe for concurrent use.
package pipeline

// Package output renders server replies for memkv-cli.
//
// Three formats are supported:
//
//   - text: redis-cli style, e.g. "OK", "\"bar\"", "(nil)", "(error) ERR ..."
//   - raw: payload bytes only, for scripting
//   - json: one JSON object per reply with its type and value
package output

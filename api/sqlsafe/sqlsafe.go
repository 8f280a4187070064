// Package sqlsafe gates language-model-generated SQL before execution.
package sqlsafe

import "regexp"

// Mutation and DDL keywords, matched as whole words, case-insensitively.
// A SELECT touching a column like "created_at" must not trip the gate.
var unsafePattern = regexp.MustCompile(
	`(?i)\b(INSERT|UPDATE|DELETE|DROP|ALTER|TRUNCATE|CREATE|GRANT|REVOKE|COPY|EXECUTE)\b`)

// Validate reports whether the statement is free of mutation/DDL keywords.
// It is a pure predicate: no parsing, no errors, just a boolean. Every
// execution of generated SQL passes through it, including retries.
func Validate(sql string) bool {
	return !unsafePattern.MatchString(sql)
}

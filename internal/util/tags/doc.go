// Package tags provides consistent tagging for provisioned sandboxes.
//
// Sandbox tags are plain strings. One of them, the identity tag, doubles as
// the idempotency key the provisioning service is queried with, so every
// tag list is built here: ordered, deduplicated, with the identity tag first.
package tags

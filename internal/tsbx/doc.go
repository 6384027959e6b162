// Package tsbx is a client for the TSBX sandbox provisioning service.
//
// # Overview
//
// The service exposes a sandboxes collection at /api/v0/sandboxes. This
// package covers the two calls needed to provision idempotently:
//
//   - [Client.ExistsWithTag] / [Client.FindByTag]: GET the collection filtered
//     by one tag with limit=1.
//   - [Client.Create]: POST a [SandboxPayload].
//
// Each call is exactly one HTTP round trip. Nothing is retried; failures are
// returned as one of [*TransportError], [*RemoteError] or [*DecodeError] so the
// caller can decide. [IsRetryable] encodes the usual policy.
//
// # Idempotency
//
// Check-then-create is not atomic. [Provisioner.Ensure] serializes the pair
// per tag inside one process and treats a 409 from the service as a lost
// race. Across processes duplicates are still possible unless the service
// enforces tag uniqueness.
//
// # Payloads
//
// [SandboxPayload] is a value type. Its setters return modified copies and
// unset optional fields never reach the wire:
//
//	payload := tsbx.NewSandboxPayload(map[string]string{"mention_id": "12345"}).
//		WithTags([]string{"mention-12345"}).
//		WithIdleTimeout(900)
package tsbx

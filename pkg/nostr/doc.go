// Package nostr models NIP-01 events and signs them with a noscrypt Context.
//
// An event id is the SHA-256 of the canonical serialization
//
//	[0, pubkey, created_at, kind, tags, content]
//
// and the signature is BIP-340 over that id. Because noscrypt hashes the
// data it signs with SHA-256, signing the serialization with
// Context.SignData produces exactly that signature.
//
// Validation uses go-playground/validator struct tags. Validate checks a
// complete event, ValidateUnsigned skips the id and signature, and the
// ValidateChatMessage and ValidateThreadedResponse helpers add the kind
// rules for NIP-7D chat threads.
package nostr

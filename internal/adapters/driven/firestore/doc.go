// Package firestore implements driven.DocumentStore against the Cloud
// Firestore v1 API through the generated google.golang.org/api client.
//
// The usual credential sources work: an API key, a static OAuth2 access
// token, or Application Default Credentials. Pointing Endpoint at the
// Firestore emulator disables authentication.
//
// List responses are read a second time from the raw body so that zero
// scalars keep their kind; see wireValue.
package firestore

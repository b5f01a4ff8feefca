// Package security holds the relay's credential and transport security
// packages.
//
//   - secrets: provider API key lookup from the environment, a key
//     directory or AWS SSM Parameter Store
//   - tls: HTTPS termination with certificate hot reload
package security

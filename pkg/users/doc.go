// Package users is the credential store: it persists accounts with bcrypt
// password hashes and checks login credentials.
package users

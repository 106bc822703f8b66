// Package gmail wraps the Gmail API with simplified mail operations:
// searching and hydrating messages, label mutations, sending, replying,
// forwarding, and attachment handling.
package gmail

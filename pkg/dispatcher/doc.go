/*
Package dispatcher executes compiled commands against a ports.Gateway.

Commands run strictly one at a time, in order. Each command gets up to
MaxAttempts tries; after failed attempt n the dispatcher waits
BaseDelay * 2^(n-1) before trying again. A command that exhausts its
attempts, or fails with an invalid attribute, aborts the whole queue: one
aborted Outcome is recorded and no further command is attempted.
*/
package dispatcher

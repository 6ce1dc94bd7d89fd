// Package action describes ACI actions as ordered sets of named parameters.
//
// ACI parameter names are case-insensitive, so a Parameters value holds at most
// one parameter per name regardless of case. Every action should carry an
// Action parameter naming the remote command; New sets it for you.
package action

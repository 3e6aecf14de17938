// Package auth is the credential store: it keeps the authorised-user token
// file, decides what to do with the stored token, and hands out an
// oauth2.TokenSource for the Google API clients.
//
// The stored token is classified with domain.ClassifyToken and handled per state:
//
//	valid                    use as is
//	expired_refreshable      refresh at the token endpoint, rewrite the token file
//	none                     run the consent flow (needs the client secrets file)
//	expired_non_refreshable  same as none
//
// Without a usable token and without a client secrets file the provider
// returns domain.ErrAuthRequired and touches nothing.
package auth

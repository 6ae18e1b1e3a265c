// Package services contains the application services of the FinKeeper
// client: authentication, profile editing, credit cards and the dashboard.
//
// Services validate input, pick the token from the session, call the
// repositories and keep the session in sync with what the backend accepted.
package services

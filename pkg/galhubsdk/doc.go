// Package galhubsdk is a Go client for the GalHub HTTP API.
//
// The package doubles as the wire-type catalogue for the server: handlers
// encode the same request and response structs the client decodes, so the
// two sides cannot drift apart.
//
// Typical usage:
//
//	client := galhubsdk.NewClient("http://localhost:8080")
//
//	challenge, err := client.GenerateCaptcha(ctx)
//	// render challenge.CaptchaText to the user ...
//
//	session, err := client.Login(ctx, galhubsdk.LoginRequest{
//		Username:    "alice",
//		Password:    "secret",
//		CaptchaID:   challenge.CaptchaID,
//		CaptchaText: answer,
//	})
//
//	me, err := session.Me(ctx)
package galhubsdk

package main

import "givestream/internal/app"

// @title           GiveStream API
// @version         1.0
// @description     Donation platform backend: onboarding wizard drafts, email verification, password reset, donation ledger and overlay feeds.
// @BasePath        /
func main() {
	app.Run()
}

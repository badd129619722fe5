package main

// @title Exchange Rates API
// @version 1.0
// @description Stores exchange rates synced from ECB and IEX and resolves any currency pair.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	NewRootCommand().Execute()
}

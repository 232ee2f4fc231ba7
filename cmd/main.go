package main

import "github.com/adanyl0v/notebook-todo/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectStore()
	defer app.DisconnectStore()

	app.MustInitTokenVerifier()
	app.MustListenAndServeHTTP()
}

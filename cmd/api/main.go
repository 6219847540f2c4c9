package main

import (
	"os"
)

//	@title			Credential Service API
//	@version		1.0
//	@description	Account registration and credential verification backed by PostgreSQL.

//	@host		localhost:8080
//	@BasePath	/

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

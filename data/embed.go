package data

import (
	_ "embed"
)

//go:embed initdb/mariadb/001-database.sql
var InitdbMariaDBDatabase string

//go:embed initdb/mariadb/002-privileges.sql
var InitdbMariaDBPrivileges string
